// Package planpb holds the wire messages exchanged with the execution engine:
// serialized plan fragments, the coordination DAG, the UDF registry listing,
// execution-node descriptors and structured compile errors.
//
// The messages are hand-maintained gogo/protobuf structs marshalled through
// the reflection codec, so the package stays free of generated code.
package planpb

import (
	proto "github.com/gogo/protobuf/proto"
)

// DataType mirrors the engine's column type enum.
type DataType int32

const (
	DATA_TYPE_UNKNOWN DataType = 0
	BOOLEAN           DataType = 1
	INT64             DataType = 2
	UINT128           DataType = 3
	FLOAT64           DataType = 4
	STRING            DataType = 5
	TIME64NS          DataType = 6
)

var dataTypeName = map[DataType]string{
	DATA_TYPE_UNKNOWN: "DATA_TYPE_UNKNOWN",
	BOOLEAN:           "BOOLEAN",
	INT64:             "INT64",
	UINT128:           "UINT128",
	FLOAT64:           "FLOAT64",
	STRING:            "STRING",
	TIME64NS:          "TIME64NS",
}

func (t DataType) String() string {
	if s, ok := dataTypeName[t]; ok {
		return s
	}
	return "DATA_TYPE_UNKNOWN"
}

// SemanticType tags a column with engine-level meaning beyond its data type.
type SemanticType int32

const (
	ST_NONE         SemanticType = 0
	ST_UPID         SemanticType = 1
	ST_AGENT_UID    SemanticType = 2
	ST_POD_NAME     SemanticType = 3
	ST_SERVICE_NAME SemanticType = 4
)

// UDTFExecutor is the placement policy for a UDTF source.
type UDTFExecutor int32

const (
	UDTF_ALL_AGENTS       UDTFExecutor = 0
	UDTF_ALL_DATA_NODES   UDTFExecutor = 1
	UDTF_ALL_COORDINATORS UDTFExecutor = 2
	UDTF_SUBSET           UDTFExecutor = 3
)

// DAGNode is one node of a serialized DAG with deterministic, sorted edge
// lists.
type DAGNode struct {
	Id             int64   `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	SortedChildren []int64 `protobuf:"varint,2,rep,packed,name=sorted_children,json=sortedChildren,proto3" json:"sorted_children,omitempty"`
	SortedParents  []int64 `protobuf:"varint,3,rep,packed,name=sorted_parents,json=sortedParents,proto3" json:"sorted_parents,omitempty"`
}

func (m *DAGNode) Reset()         { *m = DAGNode{} }
func (m *DAGNode) String() string { return proto.CompactTextString(m) }
func (*DAGNode) ProtoMessage()    {}

type DAG struct {
	Nodes []*DAGNode `protobuf:"bytes,1,rep,name=nodes,proto3" json:"nodes,omitempty"`
}

func (m *DAG) Reset()         { *m = DAG{} }
func (m *DAG) String() string { return proto.CompactTextString(m) }
func (*DAG) ProtoMessage()    {}

// Relation describes an operator's output schema.
type Relation struct {
	Columns []*Column `protobuf:"bytes,1,rep,name=columns,proto3" json:"columns,omitempty"`
}

func (m *Relation) Reset()         { *m = Relation{} }
func (m *Relation) String() string { return proto.CompactTextString(m) }
func (*Relation) ProtoMessage()    {}

type Column struct {
	ColumnName         string       `protobuf:"bytes,1,opt,name=column_name,json=columnName,proto3" json:"column_name,omitempty"`
	ColumnType         DataType     `protobuf:"varint,2,opt,name=column_type,json=columnType,proto3,enum=planpb.DataType" json:"column_type,omitempty"`
	ColumnSemanticType SemanticType `protobuf:"varint,3,opt,name=column_semantic_type,json=columnSemanticType,proto3,enum=planpb.SemanticType" json:"column_semantic_type,omitempty"`
}

func (m *Column) Reset()         { *m = Column{} }
func (m *Column) String() string { return proto.CompactTextString(m) }
func (*Column) ProtoMessage()    {}

// UInt128 carries a 128-bit value split into two 64-bit halves.
type UInt128 struct {
	Low  uint64 `protobuf:"varint,1,opt,name=low,proto3" json:"low,omitempty"`
	High uint64 `protobuf:"varint,2,opt,name=high,proto3" json:"high,omitempty"`
}

func (m *UInt128) Reset()         { *m = UInt128{} }
func (m *UInt128) String() string { return proto.CompactTextString(m) }
func (*UInt128) ProtoMessage()    {}

// ScalarValue is a compile-time constant.
type ScalarValue struct {
	DataType      DataType `protobuf:"varint,1,opt,name=data_type,json=dataType,proto3,enum=planpb.DataType" json:"data_type,omitempty"`
	BoolValue     bool     `protobuf:"varint,2,opt,name=bool_value,json=boolValue,proto3" json:"bool_value,omitempty"`
	Int64Value    int64    `protobuf:"varint,3,opt,name=int64_value,json=int64Value,proto3" json:"int64_value,omitempty"`
	Float64Value  float64  `protobuf:"fixed64,4,opt,name=float64_value,json=float64Value,proto3" json:"float64_value,omitempty"`
	StringValue   string   `protobuf:"bytes,5,opt,name=string_value,json=stringValue,proto3" json:"string_value,omitempty"`
	Time64NsValue int64    `protobuf:"varint,6,opt,name=time64ns_value,json=time64nsValue,proto3" json:"time64ns_value,omitempty"`
	Uint128Value  *UInt128 `protobuf:"bytes,7,opt,name=uint128_value,json=uint128Value,proto3" json:"uint128_value,omitempty"`
}

func (m *ScalarValue) Reset()         { *m = ScalarValue{} }
func (m *ScalarValue) String() string { return proto.CompactTextString(m) }
func (*ScalarValue) ProtoMessage()    {}

// ColumnReference addresses a column of one of the containing operator's
// parents by operand index and column index.
type ColumnReference struct {
	ParentIndex int64 `protobuf:"varint,1,opt,name=parent_index,json=parentIndex,proto3" json:"parent_index,omitempty"`
	ColumnIndex int64 `protobuf:"varint,2,opt,name=column_index,json=columnIndex,proto3" json:"column_index,omitempty"`
}

func (m *ColumnReference) Reset()         { *m = ColumnReference{} }
func (m *ColumnReference) String() string { return proto.CompactTextString(m) }
func (*ColumnReference) ProtoMessage()    {}

type ScalarFunc struct {
	Name     string              `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Args     []*ScalarExpression `protobuf:"bytes,2,rep,name=args,proto3" json:"args,omitempty"`
	ArgTypes []DataType          `protobuf:"varint,3,rep,packed,name=arg_types,json=argTypes,proto3,enum=planpb.DataType" json:"arg_types,omitempty"`
}

func (m *ScalarFunc) Reset()         { *m = ScalarFunc{} }
func (m *ScalarFunc) String() string { return proto.CompactTextString(m) }
func (*ScalarFunc) ProtoMessage()    {}

// ScalarExpression is a union of the expression forms; exactly one field is
// set.
type ScalarExpression struct {
	Constant *ScalarValue     `protobuf:"bytes,1,opt,name=constant,proto3" json:"constant,omitempty"`
	Func     *ScalarFunc      `protobuf:"bytes,2,opt,name=func,proto3" json:"func,omitempty"`
	Column   *ColumnReference `protobuf:"bytes,3,opt,name=column,proto3" json:"column,omitempty"`
}

func (m *ScalarExpression) Reset()         { *m = ScalarExpression{} }
func (m *ScalarExpression) String() string { return proto.CompactTextString(m) }
func (*ScalarExpression) ProtoMessage()    {}

// Operator type tags.
type OperatorType int32

const (
	OPERATOR_TYPE_UNKNOWN  OperatorType = 0
	MEMORY_SOURCE_OPERATOR OperatorType = 1
	MEMORY_SINK_OPERATOR   OperatorType = 2
	MAP_OPERATOR           OperatorType = 3
	FILTER_OPERATOR        OperatorType = 4
	LIMIT_OPERATOR         OperatorType = 5
	AGGREGATE_OPERATOR     OperatorType = 6
	JOIN_OPERATOR          OperatorType = 7
	UNION_OPERATOR         OperatorType = 8
	UDTF_SOURCE_OPERATOR   OperatorType = 9
)

type MemorySourceOperator struct {
	Name        string     `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	ColumnIdxs  []int64    `protobuf:"varint,2,rep,packed,name=column_idxs,json=columnIdxs,proto3" json:"column_idxs,omitempty"`
	ColumnNames []string   `protobuf:"bytes,3,rep,name=column_names,json=columnNames,proto3" json:"column_names,omitempty"`
	ColumnTypes []DataType `protobuf:"varint,4,rep,packed,name=column_types,json=columnTypes,proto3,enum=planpb.DataType" json:"column_types,omitempty"`
	StartTime   int64      `protobuf:"varint,5,opt,name=start_time,json=startTime,proto3" json:"start_time,omitempty"`
	StopTime    int64      `protobuf:"varint,6,opt,name=stop_time,json=stopTime,proto3" json:"stop_time,omitempty"`
}

func (m *MemorySourceOperator) Reset()         { *m = MemorySourceOperator{} }
func (m *MemorySourceOperator) String() string { return proto.CompactTextString(m) }
func (*MemorySourceOperator) ProtoMessage()    {}

type MemorySinkOperator struct {
	Name        string     `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	ColumnNames []string   `protobuf:"bytes,2,rep,name=column_names,json=columnNames,proto3" json:"column_names,omitempty"`
	ColumnTypes []DataType `protobuf:"varint,3,rep,packed,name=column_types,json=columnTypes,proto3,enum=planpb.DataType" json:"column_types,omitempty"`
}

func (m *MemorySinkOperator) Reset()         { *m = MemorySinkOperator{} }
func (m *MemorySinkOperator) String() string { return proto.CompactTextString(m) }
func (*MemorySinkOperator) ProtoMessage()    {}

type MapOperator struct {
	Expressions []*ScalarExpression `protobuf:"bytes,1,rep,name=expressions,proto3" json:"expressions,omitempty"`
	ColumnNames []string            `protobuf:"bytes,2,rep,name=column_names,json=columnNames,proto3" json:"column_names,omitempty"`
}

func (m *MapOperator) Reset()         { *m = MapOperator{} }
func (m *MapOperator) String() string { return proto.CompactTextString(m) }
func (*MapOperator) ProtoMessage()    {}

type FilterOperator struct {
	Expression *ScalarExpression `protobuf:"bytes,1,opt,name=expression,proto3" json:"expression,omitempty"`
}

func (m *FilterOperator) Reset()         { *m = FilterOperator{} }
func (m *FilterOperator) String() string { return proto.CompactTextString(m) }
func (*FilterOperator) ProtoMessage()    {}

type LimitOperator struct {
	Limit int64 `protobuf:"varint,1,opt,name=limit,proto3" json:"limit,omitempty"`
}

func (m *LimitOperator) Reset()         { *m = LimitOperator{} }
func (m *LimitOperator) String() string { return proto.CompactTextString(m) }
func (*LimitOperator) ProtoMessage()    {}

type AggregateOperator struct {
	Values       []*ScalarExpression `protobuf:"bytes,1,rep,name=values,proto3" json:"values,omitempty"`
	Groups       []*ScalarExpression `protobuf:"bytes,2,rep,name=groups,proto3" json:"groups,omitempty"`
	ValueNames   []string            `protobuf:"bytes,3,rep,name=value_names,json=valueNames,proto3" json:"value_names,omitempty"`
	GroupNames   []string            `protobuf:"bytes,4,rep,name=group_names,json=groupNames,proto3" json:"group_names,omitempty"`
	Windowed     bool                `protobuf:"varint,5,opt,name=windowed,proto3" json:"windowed,omitempty"`
	WindowSizeNs int64               `protobuf:"varint,6,opt,name=window_size_ns,json=windowSizeNs,proto3" json:"window_size_ns,omitempty"`
}

func (m *AggregateOperator) Reset()         { *m = AggregateOperator{} }
func (m *AggregateOperator) String() string { return proto.CompactTextString(m) }
func (*AggregateOperator) ProtoMessage()    {}

type JoinEqualityCondition struct {
	LeftColumnIndex  int64 `protobuf:"varint,1,opt,name=left_column_index,json=leftColumnIndex,proto3" json:"left_column_index,omitempty"`
	RightColumnIndex int64 `protobuf:"varint,2,opt,name=right_column_index,json=rightColumnIndex,proto3" json:"right_column_index,omitempty"`
}

func (m *JoinEqualityCondition) Reset()         { *m = JoinEqualityCondition{} }
func (m *JoinEqualityCondition) String() string { return proto.CompactTextString(m) }
func (*JoinEqualityCondition) ProtoMessage()    {}

type JoinOperator struct {
	Type               int32                    `protobuf:"varint,1,opt,name=type,proto3" json:"type,omitempty"`
	EqualityConditions []*JoinEqualityCondition `protobuf:"bytes,2,rep,name=equality_conditions,json=equalityConditions,proto3" json:"equality_conditions,omitempty"`
	OutputColumns      []*ColumnReference       `protobuf:"bytes,3,rep,name=output_columns,json=outputColumns,proto3" json:"output_columns,omitempty"`
	ColumnNames        []string                 `protobuf:"bytes,4,rep,name=column_names,json=columnNames,proto3" json:"column_names,omitempty"`
}

func (m *JoinOperator) Reset()         { *m = JoinOperator{} }
func (m *JoinOperator) String() string { return proto.CompactTextString(m) }
func (*JoinOperator) ProtoMessage()    {}

type ColumnMapping struct {
	ColumnIndexes []int64 `protobuf:"varint,1,rep,packed,name=column_indexes,json=columnIndexes,proto3" json:"column_indexes,omitempty"`
}

func (m *ColumnMapping) Reset()         { *m = ColumnMapping{} }
func (m *ColumnMapping) String() string { return proto.CompactTextString(m) }
func (*ColumnMapping) ProtoMessage()    {}

type UnionOperator struct {
	ColumnNames    []string         `protobuf:"bytes,1,rep,name=column_names,json=columnNames,proto3" json:"column_names,omitempty"`
	ColumnMappings []*ColumnMapping `protobuf:"bytes,2,rep,name=column_mappings,json=columnMappings,proto3" json:"column_mappings,omitempty"`
}

func (m *UnionOperator) Reset()         { *m = UnionOperator{} }
func (m *UnionOperator) String() string { return proto.CompactTextString(m) }
func (*UnionOperator) ProtoMessage()    {}

type UDTFSourceOperator struct {
	Name      string         `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	ArgValues []*ScalarValue `protobuf:"bytes,2,rep,name=arg_values,json=argValues,proto3" json:"arg_values,omitempty"`
}

func (m *UDTFSourceOperator) Reset()         { *m = UDTFSourceOperator{} }
func (m *UDTFSourceOperator) String() string { return proto.CompactTextString(m) }
func (*UDTFSourceOperator) ProtoMessage()    {}

// Operator is the tagged union of operator payloads.
type Operator struct {
	OpType       OperatorType          `protobuf:"varint,1,opt,name=op_type,json=opType,proto3,enum=planpb.OperatorType" json:"op_type,omitempty"`
	MemSourceOp  *MemorySourceOperator `protobuf:"bytes,2,opt,name=mem_source_op,json=memSourceOp,proto3" json:"mem_source_op,omitempty"`
	MemSinkOp    *MemorySinkOperator   `protobuf:"bytes,3,opt,name=mem_sink_op,json=memSinkOp,proto3" json:"mem_sink_op,omitempty"`
	MapOp        *MapOperator          `protobuf:"bytes,4,opt,name=map_op,json=mapOp,proto3" json:"map_op,omitempty"`
	FilterOp     *FilterOperator       `protobuf:"bytes,5,opt,name=filter_op,json=filterOp,proto3" json:"filter_op,omitempty"`
	LimitOp      *LimitOperator        `protobuf:"bytes,6,opt,name=limit_op,json=limitOp,proto3" json:"limit_op,omitempty"`
	AggOp        *AggregateOperator    `protobuf:"bytes,7,opt,name=agg_op,json=aggOp,proto3" json:"agg_op,omitempty"`
	JoinOp       *JoinOperator         `protobuf:"bytes,8,opt,name=join_op,json=joinOp,proto3" json:"join_op,omitempty"`
	UnionOp      *UnionOperator        `protobuf:"bytes,9,opt,name=union_op,json=unionOp,proto3" json:"union_op,omitempty"`
	UdtfSourceOp *UDTFSourceOperator   `protobuf:"bytes,10,opt,name=udtf_source_op,json=udtfSourceOp,proto3" json:"udtf_source_op,omitempty"`
}

func (m *Operator) Reset()         { *m = Operator{} }
func (m *Operator) String() string { return proto.CompactTextString(m) }
func (*Operator) ProtoMessage()    {}

type PlanNode struct {
	Id int64     `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Op *Operator `protobuf:"bytes,2,opt,name=op,proto3" json:"op,omitempty"`
}

func (m *PlanNode) Reset()         { *m = PlanNode{} }
func (m *PlanNode) String() string { return proto.CompactTextString(m) }
func (*PlanNode) ProtoMessage()    {}

type PlanFragment struct {
	Id    int64       `protobuf:"varint,1,opt,name=id,proto3" json:"id,omitempty"`
	Dag   *DAG        `protobuf:"bytes,2,opt,name=dag,proto3" json:"dag,omitempty"`
	Nodes []*PlanNode `protobuf:"bytes,3,rep,name=nodes,proto3" json:"nodes,omitempty"`
}

func (m *PlanFragment) Reset()         { *m = PlanFragment{} }
func (m *PlanFragment) String() string { return proto.CompactTextString(m) }
func (*PlanFragment) ProtoMessage()    {}

type Plan struct {
	Dag   *DAG            `protobuf:"bytes,1,opt,name=dag,proto3" json:"dag,omitempty"`
	Nodes []*PlanFragment `protobuf:"bytes,2,rep,name=nodes,proto3" json:"nodes,omitempty"`
}

func (m *Plan) Reset()         { *m = Plan{} }
func (m *Plan) String() string { return proto.CompactTextString(m) }
func (*Plan) ProtoMessage()    {}

// ExecutorInfo describes one execution node's capabilities.
type ExecutorInfo struct {
	QueryBrokerAddress string `protobuf:"bytes,1,opt,name=query_broker_address,json=queryBrokerAddress,proto3" json:"query_broker_address,omitempty"`
	AgentId            string `protobuf:"bytes,2,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	HasGrpcServer      bool   `protobuf:"varint,3,opt,name=has_grpc_server,json=hasGrpcServer,proto3" json:"has_grpc_server,omitempty"`
	HasDataStore       bool   `protobuf:"varint,4,opt,name=has_data_store,json=hasDataStore,proto3" json:"has_data_store,omitempty"`
	ProcessesData      bool   `protobuf:"varint,5,opt,name=processes_data,json=processesData,proto3" json:"processes_data,omitempty"`
	Asid               uint32 `protobuf:"varint,6,opt,name=asid,proto3" json:"asid,omitempty"`
}

func (m *ExecutorInfo) Reset()         { *m = ExecutorInfo{} }
func (m *ExecutorInfo) String() string { return proto.CompactTextString(m) }
func (*ExecutorInfo) ProtoMessage()    {}

type DistributedPlan struct {
	QbAddressToPlan  map[string]*Plan `protobuf:"bytes,1,rep,name=qb_address_to_plan,json=qbAddressToPlan,proto3" json:"qb_address_to_plan,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"bytes,2,opt,name=value,proto3"`
	QbAddressToDagId map[string]int64 `protobuf:"bytes,2,rep,name=qb_address_to_dag_id,json=qbAddressToDagId,proto3" json:"qb_address_to_dag_id,omitempty" protobuf_key:"bytes,1,opt,name=key,proto3" protobuf_val:"varint,2,opt,name=value,proto3"`
	Dag              *DAG             `protobuf:"bytes,3,opt,name=dag,proto3" json:"dag,omitempty"`
}

func (m *DistributedPlan) Reset()         { *m = DistributedPlan{} }
func (m *DistributedPlan) String() string { return proto.CompactTextString(m) }
func (*DistributedPlan) ProtoMessage()    {}

// CompilerError is one positioned compile error.
type CompilerError struct {
	Line    uint64 `protobuf:"varint,1,opt,name=line,proto3" json:"line,omitempty"`
	Column  uint64 `protobuf:"varint,2,opt,name=column,proto3" json:"column,omitempty"`
	Message string `protobuf:"bytes,3,opt,name=message,proto3" json:"message,omitempty"`
}

func (m *CompilerError) Reset()         { *m = CompilerError{} }
func (m *CompilerError) String() string { return proto.CompactTextString(m) }
func (*CompilerError) ProtoMessage()    {}

type CompilerErrorGroup struct {
	Errors []*CompilerError `protobuf:"bytes,1,rep,name=errors,proto3" json:"errors,omitempty"`
}

func (m *CompilerErrorGroup) Reset()         { *m = CompilerErrorGroup{} }
func (m *CompilerErrorGroup) String() string { return proto.CompactTextString(m) }
func (*CompilerErrorGroup) ProtoMessage()    {}

// ScalarUDFSpec is a scalar function signature in the registry listing.
type ScalarUDFSpec struct {
	Name         string     `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	ExecArgTypes []DataType `protobuf:"varint,2,rep,packed,name=exec_arg_types,json=execArgTypes,proto3,enum=planpb.DataType" json:"exec_arg_types,omitempty"`
	ReturnType   DataType   `protobuf:"varint,3,opt,name=return_type,json=returnType,proto3,enum=planpb.DataType" json:"return_type,omitempty"`
}

func (m *ScalarUDFSpec) Reset()         { *m = ScalarUDFSpec{} }
func (m *ScalarUDFSpec) String() string { return proto.CompactTextString(m) }
func (*ScalarUDFSpec) ProtoMessage()    {}

// UDASpec is an aggregate function signature in the registry listing.
type UDASpec struct {
	Name           string     `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	UpdateArgTypes []DataType `protobuf:"varint,2,rep,packed,name=update_arg_types,json=updateArgTypes,proto3,enum=planpb.DataType" json:"update_arg_types,omitempty"`
	FinalizeType   DataType   `protobuf:"varint,3,opt,name=finalize_type,json=finalizeType,proto3,enum=planpb.DataType" json:"finalize_type,omitempty"`
}

func (m *UDASpec) Reset()         { *m = UDASpec{} }
func (m *UDASpec) String() string { return proto.CompactTextString(m) }
func (*UDASpec) ProtoMessage()    {}

// UDTFArg describes one declared argument of a UDTF source.
type UDTFArg struct {
	Name         string       `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	ArgType      DataType     `protobuf:"varint,2,opt,name=arg_type,json=argType,proto3,enum=planpb.DataType" json:"arg_type,omitempty"`
	SemanticType SemanticType `protobuf:"varint,3,opt,name=semantic_type,json=semanticType,proto3,enum=planpb.SemanticType" json:"semantic_type,omitempty"`
}

func (m *UDTFArg) Reset()         { *m = UDTFArg{} }
func (m *UDTFArg) String() string { return proto.CompactTextString(m) }
func (*UDTFArg) ProtoMessage()    {}

// UDTFSourceSpec declares a UDTF source's signature and placement policy.
type UDTFSourceSpec struct {
	Name     string       `protobuf:"bytes,1,opt,name=name,proto3" json:"name,omitempty"`
	Executor UDTFExecutor `protobuf:"varint,2,opt,name=executor,proto3,enum=planpb.UDTFExecutor" json:"executor,omitempty"`
	Args     []*UDTFArg   `protobuf:"bytes,3,rep,name=args,proto3" json:"args,omitempty"`
	Relation *Relation    `protobuf:"bytes,4,opt,name=relation,proto3" json:"relation,omitempty"`
}

func (m *UDTFSourceSpec) Reset()         { *m = UDTFSourceSpec{} }
func (m *UDTFSourceSpec) String() string { return proto.CompactTextString(m) }
func (*UDTFSourceSpec) ProtoMessage()    {}

// UDFInfo is the full registry listing handed to the compiler.
type UDFInfo struct {
	ScalarUdfs []*ScalarUDFSpec  `protobuf:"bytes,1,rep,name=scalar_udfs,json=scalarUdfs,proto3" json:"scalar_udfs,omitempty"`
	Udas       []*UDASpec        `protobuf:"bytes,2,rep,name=udas,proto3" json:"udas,omitempty"`
	Udtfs      []*UDTFSourceSpec `protobuf:"bytes,3,rep,name=udtfs,proto3" json:"udtfs,omitempty"`
}

func (m *UDFInfo) Reset()         { *m = UDFInfo{} }
func (m *UDFInfo) String() string { return proto.CompactTextString(m) }
func (*UDFInfo) ProtoMessage()    {}
