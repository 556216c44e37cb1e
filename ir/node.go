package ir

// Node is any vertex of the IR graph, operator or expression. Nodes are owned
// by exactly one IR; rules borrow them for the duration of one Apply call.
type Node interface {
	ID() int64
	Ast() Ast
	Graph() *IR
	// DebugString names the node kind for error messages.
	DebugString() string

	setID(int64)
	setGraph(*IR)
}

// Operator is a relational node. Its Relation starts unset and is resolved
// exactly once by the relation rules.
type Operator interface {
	Node
	IsSource() bool
	RelationSet() bool
	Relation() Relation
	SetRelation(Relation) error
	UpdateRelation(Relation)
	ParentIDs() []int64
	Parents() []Operator
	// Expressions returns the operator's directly referenced expressions,
	// outermost level only.
	Expressions() []Expression

	addParentID(int64)
	removeParentID(int64)
	replaceParentID(old, new int64)
}

// Expression is a scalar node. Its data type starts unresolved and is filled
// in bottom-up by the type rule.
type Expression interface {
	Node
	TypeResolved() bool
	DataType() DataType
	Annotations() Annotations
	SetAnnotations(Annotations)
	// Args returns child expressions, in argument order.
	Args() []Expression
}

type baseNode struct {
	id    int64
	ast   Ast
	graph *IR
}

func (n *baseNode) ID() int64      { return n.id }
func (n *baseNode) Ast() Ast       { return n.ast }
func (n *baseNode) Graph() *IR     { return n.graph }
func (n *baseNode) setID(id int64) { n.id = id }
func (n *baseNode) setGraph(g *IR) { n.graph = g }

type baseOperator struct {
	baseNode
	parents     []int64
	relation    Relation
	relationSet bool
}

func (o *baseOperator) IsSource() bool     { return false }
func (o *baseOperator) RelationSet() bool  { return o.relationSet }
func (o *baseOperator) Relation() Relation { return o.relation }

func (o *baseOperator) SetRelation(r Relation) error {
	if o.relationSet {
		return ErrRelationAlreadySet.New("operator", o.id)
	}
	o.relation = r
	o.relationSet = true
	return nil
}

// UpdateRelation overwrites an already resolved relation. Column pruning
// narrows relations after the one-time SetRelation.
func (o *baseOperator) UpdateRelation(r Relation) {
	o.relation = r
	o.relationSet = true
}

func (o *baseOperator) ParentIDs() []int64 {
	return append([]int64(nil), o.parents...)
}

func (o *baseOperator) Parents() []Operator {
	out := make([]Operator, 0, len(o.parents))
	for _, id := range o.parents {
		out = append(out, o.graph.Get(id).(Operator))
	}
	return out
}

func (o *baseOperator) Expressions() []Expression { return nil }

func (o *baseOperator) addParentID(id int64) {
	o.parents = append(o.parents, id)
}

func (o *baseOperator) removeParentID(id int64) {
	for i, p := range o.parents {
		if p == id {
			o.parents = append(o.parents[:i], o.parents[i+1:]...)
			return
		}
	}
}

func (o *baseOperator) replaceParentID(old, new int64) {
	for i, p := range o.parents {
		if p == old {
			o.parents[i] = new
			return
		}
	}
}

type baseExpression struct {
	baseNode
	dataType    DataType
	typeSet     bool
	annotations Annotations
}

func (e *baseExpression) TypeResolved() bool           { return e.typeSet }
func (e *baseExpression) DataType() DataType           { return e.dataType }
func (e *baseExpression) Annotations() Annotations     { return e.annotations }
func (e *baseExpression) SetAnnotations(a Annotations) { e.annotations = a }
func (e *baseExpression) Args() []Expression           { return nil }

func (e *baseExpression) resolveType(t DataType) {
	e.dataType = t
	e.typeSet = true
}
