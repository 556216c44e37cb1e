package analyzer

import (
	"strings"

	"github.com/flowscope/flowscope/ir"
)

// ResolveMetadataPropertyRule looks up every metadata reference in the
// metadata property catalog and attaches the property, which fixes the
// reference's type and semantic annotation.
type ResolveMetadataPropertyRule struct {
	state *ir.CompilerState
}

func (ResolveMetadataPropertyRule) Name() string { return "resolve_metadata_property" }

func (r *ResolveMetadataPropertyRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		md, ok := n.(*ir.MetadataRef)
		if !ok || md.PropertyResolved() {
			return false, nil
		}
		p, ok := r.state.MetadataHandler().Property(md.Name)
		if !ok {
			return false, ir.NodeError(md, ir.ErrMetadataNotFound.New(md.Name))
		}
		md.ResolveProperty(p)
		return true, nil
	})
}

// ConvertMetadataRule lowers resolved metadata references into executable
// expressions. When the parent relation already carries the materialized
// metadata column, the reference becomes a plain column; otherwise it
// becomes a conversion function over one of the property's key columns.
type ConvertMetadataRule struct {
	state *ir.CompilerState
}

func (ConvertMetadataRule) Name() string { return "convert_metadata" }

func (r *ConvertMetadataRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		md, ok := n.(*ir.MetadataRef)
		if !ok || !md.PropertyResolved() {
			return false, nil
		}
		op, ok := g.ContainingOp(md)
		if !ok {
			return false, nil
		}
		parents := op.Parents()
		if md.ParentOpIdx >= len(parents) {
			return false, ir.NodeError(md, ir.ErrNoParent.New(op.DebugString(), op.ID(), md.Name))
		}
		parent := parents[md.ParentOpIdx]
		if !parent.RelationSet() {
			return false, nil
		}
		rel := parent.Relation()
		p := md.Property()

		var repl ir.Expression
		if idx := rel.ColumnIndex(md.ColumnName()); idx >= 0 {
			col := g.CreateColumn(md.Ast(), md.ColumnName(), md.ParentOpIdx)
			col.Resolve(idx, rel[idx].Type)
			col.SetAnnotations(md.Annotations())
			repl = col
		} else {
			keyIdx := -1
			keyName := ""
			for _, k := range p.KeyColumns {
				if i := rel.ColumnIndex(k); i >= 0 {
					keyName, keyIdx = k, i
					break
				}
			}
			if keyIdx < 0 {
				return false, ir.NodeError(md, ir.ErrMetadataKeyColumn.New(
					md.Name,
					strings.Join(p.KeyColumns, ", "),
					strings.Join(rel.ColumnNames(), ", "),
				))
			}
			keyCol := g.CreateColumn(md.Ast(), keyName, md.ParentOpIdx)
			keyCol.Resolve(keyIdx, rel[keyIdx].Type)

			fnName := p.UDFName(keyName)
			ret, err := r.state.Registry().GetUDF(fnName, []ir.DataType{rel[keyIdx].Type})
			if err != nil {
				return false, ir.NodeError(md, err)
			}
			fn := g.CreateFunc(md.Ast(), fnName, []ir.Expression{keyCol})
			fn.ResolveFunc(ret, []ir.DataType{rel[keyIdx].Type})
			fn.SetAnnotations(ir.Annotations{MetadataType: p.SemanticType})
			repl = fn
		}

		if !g.ReplaceExpr(op, md, repl) {
			return false, nil
		}
		g.DeleteNode(md.ID())
		return true, nil
	})
}
