package ir

import (
	"fmt"
	"strings"

	"github.com/flowscope/flowscope/planpb"
)

// Column is a named, typed column of a Relation.
type Column struct {
	Name         string
	Type         DataType
	SemanticType SemanticType
}

// Relation is an ordered, name-unique column list describing an operator's
// output schema.
type Relation []Column

// NewRelation builds a relation from parallel name/type slices.
func NewRelation(names []string, types []DataType) Relation {
	rel := make(Relation, 0, len(names))
	for i, n := range names {
		rel = append(rel, Column{Name: n, Type: types[i]})
	}
	return rel
}

// HasColumn reports whether a column with the given name exists.
func (r Relation) HasColumn(name string) bool {
	return r.ColumnIndex(name) >= 0
}

// ColumnIndex returns the position of name, or -1.
func (r Relation) ColumnIndex(name string) int {
	for i, c := range r {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnType returns the type of the named column, or UnknownType.
func (r Relation) ColumnType(name string) DataType {
	if i := r.ColumnIndex(name); i >= 0 {
		return r[i].Type
	}
	return UnknownType
}

// ColumnNames returns the names in relation order.
func (r Relation) ColumnNames() []string {
	names := make([]string, len(r))
	for i, c := range r {
		names[i] = c.Name
	}
	return names
}

// Equals is the order-sensitive comparison on names and types.
func (r Relation) Equals(other Relation) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if r[i].Name != other[i].Name || r[i].Type != other[i].Type {
			return false
		}
	}
	return true
}

// Copy returns a deep copy.
func (r Relation) Copy() Relation {
	return append(Relation(nil), r...)
}

func (r Relation) String() string {
	parts := make([]string, len(r))
	for i, c := range r {
		parts[i] = fmt.Sprintf("%s:%s", c.Name, c.Type)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ToProto converts the relation to its wire form.
func (r Relation) ToProto() *planpb.Relation {
	pb := &planpb.Relation{}
	for _, c := range r {
		pb.Columns = append(pb.Columns, &planpb.Column{
			ColumnName:         c.Name,
			ColumnType:         c.Type,
			ColumnSemanticType: c.SemanticType,
		})
	}
	return pb
}

// RelationFromProto converts the wire form back to a Relation.
func RelationFromProto(pb *planpb.Relation) Relation {
	if pb == nil {
		return nil
	}
	rel := make(Relation, 0, len(pb.Columns))
	for _, c := range pb.Columns {
		rel = append(rel, Column{Name: c.ColumnName, Type: c.ColumnType, SemanticType: c.ColumnSemanticType})
	}
	return rel
}
