package ir

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/flowscope/flowscope/planpb"
)

// ToPlanProto serializes the graph into one executable plan fragment. Every
// operator must be supported by the execution engine: GroupBy and Drop nodes
// must have been lowered away by the analyzer before emission.
func (g *IR) ToPlanProto() (*planpb.Plan, error) {
	fragment := &planpb.PlanFragment{Id: 1, Dag: g.dag.ToProto()}
	for _, op := range g.TopoOperators() {
		opPb, err := operatorToProto(op)
		if err != nil {
			return nil, err
		}
		fragment.Nodes = append(fragment.Nodes, &planpb.PlanNode{Id: op.ID(), Op: opPb})
	}
	planDag := &planpb.DAG{Nodes: []*planpb.DAGNode{{Id: 1}}}
	return &planpb.Plan{Dag: planDag, Nodes: []*planpb.PlanFragment{fragment}}, nil
}

func operatorToProto(op Operator) (*planpb.Operator, error) {
	switch t := op.(type) {
	case *MemorySource:
		src := &planpb.MemorySourceOperator{
			Name:      t.TableName,
			StartTime: t.TimeStartNS,
			StopTime:  t.TimeStopNS,
		}
		for _, c := range t.Columns {
			src.ColumnIdxs = append(src.ColumnIdxs, int64(c.ColumnIndex()))
		}
		for _, c := range t.Relation() {
			src.ColumnNames = append(src.ColumnNames, c.Name)
			src.ColumnTypes = append(src.ColumnTypes, c.Type)
		}
		return &planpb.Operator{OpType: planpb.MEMORY_SOURCE_OPERATOR, MemSourceOp: src}, nil
	case *MemorySink:
		sink := &planpb.MemorySinkOperator{Name: t.SinkName}
		for _, c := range t.Relation() {
			sink.ColumnNames = append(sink.ColumnNames, c.Name)
			sink.ColumnTypes = append(sink.ColumnTypes, c.Type)
		}
		return &planpb.Operator{OpType: planpb.MEMORY_SINK_OPERATOR, MemSinkOp: sink}, nil
	case *Map:
		m := &planpb.MapOperator{}
		for _, ce := range t.ColExprs {
			expr, err := expressionToProto(ce.Expr)
			if err != nil {
				return nil, err
			}
			m.Expressions = append(m.Expressions, expr)
			m.ColumnNames = append(m.ColumnNames, ce.Name)
		}
		return &planpb.Operator{OpType: planpb.MAP_OPERATOR, MapOp: m}, nil
	case *Filter:
		expr, err := expressionToProto(t.Expr)
		if err != nil {
			return nil, err
		}
		return &planpb.Operator{OpType: planpb.FILTER_OPERATOR, FilterOp: &planpb.FilterOperator{Expression: expr}}, nil
	case *Limit:
		return &planpb.Operator{OpType: planpb.LIMIT_OPERATOR, LimitOp: &planpb.LimitOperator{Limit: t.LimitValue}}, nil
	case *BlockingAgg:
		agg := &planpb.AggregateOperator{}
		for _, gcol := range t.Groups {
			expr, err := expressionToProto(gcol)
			if err != nil {
				return nil, err
			}
			agg.Groups = append(agg.Groups, expr)
			agg.GroupNames = append(agg.GroupNames, gcol.Name)
		}
		for _, ce := range t.Aggregates {
			expr, err := expressionToProto(ce.Expr)
			if err != nil {
				return nil, err
			}
			agg.Values = append(agg.Values, expr)
			agg.ValueNames = append(agg.ValueNames, ce.Name)
		}
		return &planpb.Operator{OpType: planpb.AGGREGATE_OPERATOR, AggOp: agg}, nil
	case *Rolling:
		agg := &planpb.AggregateOperator{Windowed: true, WindowSizeNs: t.WindowSizeNS}
		for _, gcol := range t.Groups {
			expr, err := expressionToProto(gcol)
			if err != nil {
				return nil, err
			}
			agg.Groups = append(agg.Groups, expr)
			agg.GroupNames = append(agg.GroupNames, gcol.Name)
		}
		return &planpb.Operator{OpType: planpb.AGGREGATE_OPERATOR, AggOp: agg}, nil
	case *Join:
		j := &planpb.JoinOperator{Type: int32(t.Type), ColumnNames: append([]string(nil), t.ColumnNames...)}
		for i := range t.LeftOn {
			j.EqualityConditions = append(j.EqualityConditions, &planpb.JoinEqualityCondition{
				LeftColumnIndex:  int64(t.LeftOn[i].ColumnIndex()),
				RightColumnIndex: int64(t.RightOn[i].ColumnIndex()),
			})
		}
		for _, c := range t.OutputColumns {
			j.OutputColumns = append(j.OutputColumns, &planpb.ColumnReference{
				ParentIndex: int64(c.ParentOpIdx),
				ColumnIndex: int64(c.ColumnIndex()),
			})
		}
		return &planpb.Operator{OpType: planpb.JOIN_OPERATOR, JoinOp: j}, nil
	case *Union:
		u := &planpb.UnionOperator{ColumnNames: t.Relation().ColumnNames()}
		for _, mapping := range t.ColumnMappings {
			u.ColumnMappings = append(u.ColumnMappings, &planpb.ColumnMapping{ColumnIndexes: append([]int64(nil), mapping...)})
		}
		return &planpb.Operator{OpType: planpb.UNION_OPERATOR, UnionOp: u}, nil
	case *UDTFSource:
		src := &planpb.UDTFSourceOperator{Name: t.FuncName}
		for _, a := range t.ArgValues {
			v, err := literalToProto(a)
			if err != nil {
				return nil, err
			}
			src.ArgValues = append(src.ArgValues, v)
		}
		return &planpb.Operator{OpType: planpb.UDTF_SOURCE_OPERATOR, UdtfSourceOp: src}, nil
	}
	return nil, errors.Errorf("operator %s(id=%d) cannot be serialized; it should have been lowered before emission", op.DebugString(), op.ID())
}

func expressionToProto(e Expression) (*planpb.ScalarExpression, error) {
	switch t := e.(type) {
	case *ColumnRef:
		if !t.Resolved() {
			return nil, errors.Errorf("column '%s' (id=%d) is unresolved at emission", t.Name, t.ID())
		}
		return &planpb.ScalarExpression{Column: &planpb.ColumnReference{
			ParentIndex: int64(t.ParentOpIdx),
			ColumnIndex: int64(t.ColumnIndex()),
		}}, nil
	case *Literal:
		v, err := literalToProto(t)
		if err != nil {
			return nil, err
		}
		return &planpb.ScalarExpression{Constant: v}, nil
	case *Func:
		f := &planpb.ScalarFunc{Name: t.Name, ArgTypes: append([]DataType(nil), t.ArgTypes()...)}
		for _, a := range t.FuncArgs {
			arg, err := expressionToProto(a)
			if err != nil {
				return nil, err
			}
			f.Args = append(f.Args, arg)
		}
		return &planpb.ScalarExpression{Func: f}, nil
	}
	return nil, errors.Errorf("expression %s (id=%d) cannot be serialized", e.DebugString(), e.ID())
}

func literalToProto(l *Literal) (*planpb.ScalarValue, error) {
	v := &planpb.ScalarValue{DataType: l.DataType()}
	switch l.DataType() {
	case Boolean:
		v.BoolValue = l.Value.(bool)
	case Int64:
		v.Int64Value = l.Value.(int64)
	case Float64:
		v.Float64Value = l.Value.(float64)
	case String:
		v.StringValue = l.Value.(string)
	case Time64NS:
		switch t := l.Value.(type) {
		case time.Time:
			v.Time64NsValue = t.UnixNano()
		case int64:
			v.Time64NsValue = t
		default:
			return nil, errors.Errorf("bad time literal value %v", l.Value)
		}
	case UInt128:
		u, ok := l.Value.(*planpb.UInt128)
		if !ok {
			return nil, errors.Errorf("bad uint128 literal value %v", l.Value)
		}
		v.Uint128Value = u
	default:
		return nil, errors.New(fmt.Sprintf("literal (id=%d) has no resolved type", l.ID()))
	}
	return v, nil
}
