// Package ir is the intermediate representation of a compiled query: an
// arena of operator and expression nodes keyed by integer id, with operator
// dependency structure tracked in a DAG. Rules in the analyzer package
// resolve types and relations and rewrite the graph in place.
package ir

import (
	"fmt"
	"sort"

	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/flowscope/flowscope/dag"
)

// ErrMalformedNode is returned for construction-time validation failures.
var ErrMalformedNode = errors.NewKind("malformed %s: %s")

// IR owns all nodes of one compilation. Ids are never reused within one
// compilation.
type IR struct {
	nodes  map[int64]Node
	dag    *dag.DAG
	nextID int64
}

// NewIR returns an empty graph.
func NewIR() *IR {
	return &IR{nodes: make(map[int64]Node), dag: dag.New()}
}

// DAG exposes the operator dependency structure.
func (g *IR) DAG() *dag.DAG { return g.dag }

// Get returns the node with the given id, or nil.
func (g *IR) Get(id int64) Node { return g.nodes[id] }

// HasNode reports whether id is registered.
func (g *IR) HasNode(id int64) bool {
	_, ok := g.nodes[id]
	return ok
}

// register assigns a fresh id and stores the node. Operators additionally get
// a DAG vertex.
func (g *IR) register(n Node) {
	n.setID(g.nextID)
	n.setGraph(g)
	g.nodes[g.nextID] = n
	if _, ok := n.(Operator); ok {
		g.dag.AddNode(g.nextID)
	}
	g.nextID++
}

// AddParent wires parent as an additional ordered parent of child.
func (g *IR) AddParent(child, parent Operator) {
	child.addParentID(parent.ID())
	g.dag.AddEdge(parent.ID(), child.ID())
}

// RemoveParent unwires parent from child.
func (g *IR) RemoveParent(child, parent Operator) {
	child.removeParentID(parent.ID())
	g.dag.DeleteEdge(parent.ID(), child.ID())
}

// ReplaceParent swaps old for new in child's parent list, preserving the
// operand position.
func (g *IR) ReplaceParent(child, old, new Operator) {
	child.replaceParentID(old.ID(), new.ID())
	g.dag.ReplaceParentEdge(child.ID(), old.ID(), new.ID())
}

// Children returns the operators that depend on op, in edge order.
func (g *IR) Children(op Operator) []Operator {
	ids := g.dag.Children(op.ID())
	out := make([]Operator, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[id].(Operator))
	}
	return out
}

// DeleteNode removes a node and, for operators, its DAG vertex with all
// incident edges. Child operators keep running parent lists, so their
// references to the node are removed as well.
func (g *IR) DeleteNode(id int64) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	if op, isOp := n.(Operator); isOp {
		for _, child := range g.Children(op) {
			child.removeParentID(id)
		}
		g.dag.DeleteNode(id)
	}
	delete(g.nodes, id)
}

// DeleteOrphansInSubtree deletes the operator rooted at id if nothing depends
// on it from above, then recursively deletes any children left parentless.
// Children that still have another live parent (the far side of a join or
// union) survive.
func (g *IR) DeleteOrphansInSubtree(id int64) {
	n, ok := g.nodes[id]
	if !ok {
		return
	}
	op, isOp := n.(Operator)
	if !isOp {
		return
	}
	if len(g.dag.Parents(id)) > 0 {
		return
	}
	children := g.dag.Children(id)
	g.DeleteNode(op.ID())
	for _, c := range children {
		g.DeleteOrphansInSubtree(c)
	}
}

// FindNodesThatMatch returns every node matching m, in ascending id order.
func (g *IR) FindNodesThatMatch(m Matcher) []Node {
	var ids []int64
	for id := range g.nodes {
		if m(g.nodes[id]) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[id])
	}
	return out
}

// Operators returns all operators in ascending id order.
func (g *IR) Operators() []Operator {
	nodes := g.FindNodesThatMatch(MatchOperator())
	out := make([]Operator, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.(Operator))
	}
	return out
}

// TopoOperators returns the operators in topological (source to sink) order.
func (g *IR) TopoOperators() []Operator {
	ids := g.dag.TopologicalSort()
	out := make([]Operator, 0, len(ids))
	for _, id := range ids {
		out = append(out, g.nodes[id].(Operator))
	}
	return out
}

// NodesInRuleOrder returns the visit order for one rule pass: operators
// topologically, each preceded by its expression trees in post-order, so
// bottom-up resolution sees leaves first.
func (g *IR) NodesInRuleOrder() []Node {
	var out []Node
	seen := make(map[int64]bool)
	var visitExpr func(e Expression)
	visitExpr = func(e Expression) {
		if e == nil || seen[e.ID()] {
			return
		}
		for _, arg := range e.Args() {
			visitExpr(arg)
		}
		seen[e.ID()] = true
		out = append(out, e)
	}
	for _, op := range g.TopoOperators() {
		for _, e := range op.Expressions() {
			visitExpr(e)
		}
		out = append(out, op)
	}
	return out
}

// ReachableExpressions returns the ids of every expression reachable from a
// live operator.
func (g *IR) ReachableExpressions() map[int64]bool {
	live := make(map[int64]bool)
	var visit func(e Expression)
	visit = func(e Expression) {
		if e == nil || live[e.ID()] {
			return
		}
		live[e.ID()] = true
		for _, arg := range e.Args() {
			visit(arg)
		}
	}
	for _, op := range g.Operators() {
		for _, e := range op.Expressions() {
			visit(e)
		}
	}
	return live
}

func (g *IR) registerOperator(op Operator, parents []Operator) {
	g.register(op)
	for _, p := range parents {
		g.AddParent(op, p)
	}
}

// CreateMemorySource builds a source over table with the selected columns
// (nil selects all) and optional start/stop time expressions.
func (g *IR) CreateMemorySource(ast Ast, table string, columns []string, start, stop Expression) (*MemorySource, error) {
	if table == "" {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("MemorySource", "table name must not be empty")}
	}
	src := &MemorySource{TableName: table, ColumnNames: columns, StartTimeExpr: start, StopTimeExpr: stop}
	src.ast = ast
	g.registerOperator(src, nil)
	return src, nil
}

// CreateMemorySink builds a sink named name under parent.
func (g *IR) CreateMemorySink(ast Ast, parent Operator, name string, outCols []string) (*MemorySink, error) {
	sink := &MemorySink{SinkName: name, OutColumnNames: outCols}
	sink.ast = ast
	g.registerOperator(sink, []Operator{parent})
	return sink, nil
}

// CreateMap builds a projection under parent.
func (g *IR) CreateMap(ast Ast, parent Operator, exprs []ColumnExpression, keepInput bool) (*Map, error) {
	if len(exprs) == 0 {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("Map", "expression list must not be empty")}
	}
	m := &Map{ColExprs: exprs, KeepInputColumns: keepInput}
	m.ast = ast
	g.registerOperator(m, []Operator{parent})
	return m, nil
}

// CreateFilter builds a filter under parent.
func (g *IR) CreateFilter(ast Ast, parent Operator, expr Expression) (*Filter, error) {
	if expr == nil {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("Filter", "predicate must not be nil")}
	}
	f := &Filter{Expr: expr}
	f.ast = ast
	g.registerOperator(f, []Operator{parent})
	return f, nil
}

// CreateLimit builds a row cap under parent.
func (g *IR) CreateLimit(ast Ast, parent Operator, n int64) (*Limit, error) {
	if n < 0 {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("Limit", fmt.Sprintf("limit must be non-negative, got %d", n))}
	}
	l := &Limit{LimitValue: n}
	l.ast = ast
	g.registerOperator(l, []Operator{parent})
	return l, nil
}

// CreateBlockingAgg builds an aggregate under parent.
func (g *IR) CreateBlockingAgg(ast Ast, parent Operator, groups []*ColumnRef, aggs []ColumnExpression) (*BlockingAgg, error) {
	if len(aggs) == 0 {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("BlockingAgg", "aggregate list must not be empty")}
	}
	a := &BlockingAgg{Groups: groups, Aggregates: aggs}
	a.ast = ast
	g.registerOperator(a, []Operator{parent})
	return a, nil
}

// CreateGroupBy builds a groupby under parent.
func (g *IR) CreateGroupBy(ast Ast, parent Operator, groups []*ColumnRef) (*GroupBy, error) {
	if len(groups) == 0 {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("GroupBy", "group list must not be empty")}
	}
	gb := &GroupBy{Groups: groups}
	gb.ast = ast
	g.registerOperator(gb, []Operator{parent})
	return gb, nil
}

// CreateJoin builds a join of left and right.
func (g *IR) CreateJoin(ast Ast, left, right Operator, typ JoinType, leftOn, rightOn []*ColumnRef, suffixes [2]string) (*Join, error) {
	if len(leftOn) != len(rightOn) {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("Join", fmt.Sprintf("left_on and right_on must be the same length, got %d and %d", len(leftOn), len(rightOn)))}
	}
	j := &Join{Type: typ, SpecifiedType: typ, LeftOn: leftOn, RightOn: rightOn, Suffixes: suffixes}
	j.ast = ast
	g.registerOperator(j, []Operator{left, right})
	return j, nil
}

// CreateUnion builds a union of the given parents.
func (g *IR) CreateUnion(ast Ast, parents []Operator) (*Union, error) {
	if len(parents) < 2 {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("Union", "union requires at least two inputs")}
	}
	u := &Union{}
	u.ast = ast
	g.registerOperator(u, parents)
	return u, nil
}

// CreateRolling builds a rolling window under parent.
func (g *IR) CreateRolling(ast Ast, parent Operator, windowCol *ColumnRef, windowSize Expression) (*Rolling, error) {
	if windowCol == nil {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("Rolling", "window column must not be nil")}
	}
	r := &Rolling{WindowCol: windowCol, WindowSizeExpr: windowSize}
	r.ast = ast
	g.registerOperator(r, []Operator{parent})
	return r, nil
}

// CreateDrop builds a column drop under parent.
func (g *IR) CreateDrop(ast Ast, parent Operator, cols []string) (*Drop, error) {
	if len(cols) == 0 {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("Drop", "column list must not be empty")}
	}
	d := &Drop{ColNames: cols}
	d.ast = ast
	g.registerOperator(d, []Operator{parent})
	return d, nil
}

// CreateUDTFSource builds a table-function source from its declared spec and
// bound argument values.
func (g *IR) CreateUDTFSource(ast Ast, spec *UDTFSpec, args []*Literal) (*UDTFSource, error) {
	if len(args) != len(spec.Proto.Args) {
		return nil, &CompileError{Line: ast.Line, Col: ast.Col, Err: ErrMalformedNode.New("UDTFSource", fmt.Sprintf("'%s' expects %d args, got %d", spec.Proto.Name, len(spec.Proto.Args), len(args)))}
	}
	u := &UDTFSource{FuncName: spec.Proto.Name, Spec: spec.Proto, ArgValues: args}
	u.ast = ast
	g.registerOperator(u, nil)
	if err := u.SetRelation(spec.Relation()); err != nil {
		return nil, NodeError(u, err)
	}
	return u, nil
}

// CreateColumn builds a column reference against the parentOpIdx-th parent
// of whatever operator ends up holding it.
func (g *IR) CreateColumn(ast Ast, name string, parentOpIdx int) *ColumnRef {
	c := &ColumnRef{Name: name, ParentOpIdx: parentOpIdx, colIdx: -1}
	c.ast = ast
	g.register(c)
	return c
}

// CreateLiteral builds a typed constant.
func (g *IR) CreateLiteral(ast Ast, t DataType, value interface{}) *Literal {
	l := &Literal{Value: value}
	l.ast = ast
	l.resolveType(t)
	g.register(l)
	return l
}

// CreateIntLiteral builds an Int64 constant.
func (g *IR) CreateIntLiteral(ast Ast, v int64) *Literal {
	return g.CreateLiteral(ast, Int64, v)
}

// CreateStringLiteral builds a String constant.
func (g *IR) CreateStringLiteral(ast Ast, v string) *Literal {
	return g.CreateLiteral(ast, String, v)
}

// CreateFunc builds a function call.
func (g *IR) CreateFunc(ast Ast, name string, args []Expression) *Func {
	f := &Func{Name: name, FuncArgs: args}
	f.ast = ast
	g.register(f)
	return f
}

// CreateMetadata builds a metadata reference.
func (g *IR) CreateMetadata(ast Ast, name string, parentOpIdx int) *MetadataRef {
	m := &MetadataRef{Name: name, ParentOpIdx: parentOpIdx}
	m.ast = ast
	g.register(m)
	return m
}

// CreateTuple groups expressions.
func (g *IR) CreateTuple(ast Ast, exprs []Expression) *Tuple {
	t := &Tuple{Exprs: exprs}
	t.ast = ast
	g.register(t)
	return t
}
