package ir

import (
	"github.com/flowscope/flowscope/planpb"
)

// DataType and SemanticType alias the wire enums; the compiler and the
// execution engine share one type vocabulary.
type DataType = planpb.DataType

const (
	UnknownType = planpb.DATA_TYPE_UNKNOWN
	Boolean     = planpb.BOOLEAN
	Int64       = planpb.INT64
	UInt128     = planpb.UINT128
	Float64     = planpb.FLOAT64
	String      = planpb.STRING
	Time64NS    = planpb.TIME64NS
)

type SemanticType = planpb.SemanticType

const (
	STNone        = planpb.ST_NONE
	STUPID        = planpb.ST_UPID
	STAgentUID    = planpb.ST_AGENT_UID
	STPodName     = planpb.ST_POD_NAME
	STServiceName = planpb.ST_SERVICE_NAME
)

// Ast is the source position a node was built from. The zero value means the
// position is unknown.
type Ast struct {
	Line int
	Col  int
}

// Annotations are semantic tags attached to an expression that survive pure
// renames, e.g. "this column is a pod name".
type Annotations struct {
	MetadataType SemanticType
}

// Equal reports whether two annotation sets agree.
func (a Annotations) Equal(other Annotations) bool {
	return a.MetadataType == other.MetadataType
}

// IsSet reports whether any annotation is present.
func (a Annotations) IsSet() bool {
	return a.MetadataType != STNone
}
