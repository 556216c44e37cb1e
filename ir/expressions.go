package ir

import (
	"fmt"
	"strings"
	"time"
)

// ColumnRef references a column of one of the containing operator's parents
// by name. ParentOpIdx selects which parent operand the name resolves
// against; the index and type are filled in once that parent's relation is
// known.
type ColumnRef struct {
	baseExpression
	Name        string
	ParentOpIdx int

	colIdx int
}

func (c *ColumnRef) DebugString() string { return fmt.Sprintf("Column(%s)", c.Name) }

// Resolved reports whether the reference points at a concrete column index.
func (c *ColumnRef) Resolved() bool { return c.typeSet }

// ColumnIndex returns the resolved index into the parent relation.
func (c *ColumnRef) ColumnIndex() int { return c.colIdx }

// Resolve records the concrete index and type for this reference.
func (c *ColumnRef) Resolve(idx int, t DataType) {
	c.colIdx = idx
	c.resolveType(t)
}

// Literal is a compile-time constant of any supported data type.
type Literal struct {
	baseExpression
	Value interface{}
}

func (l *Literal) DebugString() string { return fmt.Sprintf("Literal(%v)", l.Value) }

// IntValue returns the literal's value as int64; only valid for Int64 and
// Time64NS literals.
func (l *Literal) IntValue() int64 {
	switch v := l.Value.(type) {
	case int64:
		return v
	case time.Time:
		return v.UnixNano()
	default:
		panic(fmt.Sprintf("ir: literal %v is not an integer", l.Value))
	}
}

// StringValue returns the literal's value as a string; only valid for String
// literals.
func (l *Literal) StringValue() string {
	return l.Value.(string)
}

// Func is a scalar or aggregate function call. An empty name marks a
// compiler-internal placeholder that the type rule skips.
type Func struct {
	baseExpression
	Name     string
	FuncArgs []Expression

	argTypes    []DataType
	argTypesSet bool
}

func (f *Func) DebugString() string { return fmt.Sprintf("Func(%s)", f.Name) }

func (f *Func) Args() []Expression { return f.FuncArgs }

// UpdateArg replaces the idx-th argument.
func (f *Func) UpdateArg(idx int, e Expression) {
	f.FuncArgs[idx] = e
}

// ResolveFunc records the looked-up signature.
func (f *Func) ResolveFunc(ret DataType, argTypes []DataType) {
	f.argTypes = argTypes
	f.argTypesSet = true
	f.resolveType(ret)
}

// ArgTypes returns the resolved argument types.
func (f *Func) ArgTypes() []DataType { return f.argTypes }

// MetadataRef is a reference to a well-known semantic column (e.g. pod name)
// that is later lowered into a conversion function over a real column.
type MetadataRef struct {
	baseExpression
	Name        string
	ParentOpIdx int

	property *MetadataProperty
}

func (m *MetadataRef) DebugString() string { return fmt.Sprintf("Metadata(%s)", m.Name) }

// PropertyResolved reports whether the semantic property has been looked up.
func (m *MetadataRef) PropertyResolved() bool { return m.property != nil }

// Property returns the resolved metadata property.
func (m *MetadataRef) Property() *MetadataProperty { return m.property }

// ResolveProperty records the property and the resulting column type.
func (m *MetadataRef) ResolveProperty(p *MetadataProperty) {
	m.property = p
	m.resolveType(p.Type)
	m.annotations = Annotations{MetadataType: p.SemanticType}
}

// ColumnName is the concrete column name the reference lowers to.
func (m *MetadataRef) ColumnName() string {
	return metadataColumnPrefix + m.Name
}

// Tuple groups expressions; it only exists transiently during construction.
type Tuple struct {
	baseExpression
	Exprs []Expression
}

func (t *Tuple) DebugString() string { return fmt.Sprintf("Tuple(%d)", len(t.Exprs)) }

func (t *Tuple) Args() []Expression { return t.Exprs }

// ColumnExpression is a named expression, the building block of Map and
// aggregate output lists.
type ColumnExpression struct {
	Name string
	Expr Expression
}

func debugExprList(exprs []ColumnExpression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.Name
	}
	return strings.Join(parts, ",")
}
