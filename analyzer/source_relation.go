package analyzer

import (
	"strings"

	"github.com/flowscope/flowscope/ir"
)

// SourceRelationRule resolves every memory source against the table
// catalog: the table must exist, the selected columns must be a subset of
// it, and the source gets resolved column references plus its relation.
// Table-function sources carry their relation from their declared spec and
// are left alone here.
type SourceRelationRule struct {
	state *ir.CompilerState
}

func (SourceRelationRule) Name() string { return "resolve_source_relation" }

func (r *SourceRelationRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		src, ok := n.(*ir.MemorySource)
		if !ok || src.RelationSet() {
			return false, nil
		}
		tableRel, ok := r.state.Table(src.TableName)
		if !ok {
			return false, ir.NodeError(src, ir.ErrTableNotFound.New(src.TableName))
		}
		names := src.ColumnNames
		if src.SelectAll() {
			names = tableRel.ColumnNames()
		}

		var missing []string
		sel := make(ir.Relation, 0, len(names))
		cols := make([]*ir.ColumnRef, 0, len(names))
		for _, name := range names {
			idx := tableRel.ColumnIndex(name)
			if idx < 0 {
				missing = append(missing, name)
				continue
			}
			col := g.CreateColumn(src.Ast(), name, 0)
			col.Resolve(idx, tableRel[idx].Type)
			cols = append(cols, col)
			sel = append(sel, tableRel[idx])
		}
		if len(missing) > 0 {
			return false, ir.NodeError(src, ir.ErrColumnsNotFound.New(strings.Join(missing, ", ")))
		}

		src.Columns = cols
		if err := src.SetRelation(sel); err != nil {
			return false, ir.NodeError(src, err)
		}
		return true, nil
	})
}
