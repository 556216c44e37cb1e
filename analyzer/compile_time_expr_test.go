package analyzer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/flowscope/flowscope/ir"
)

func TestConvertStringTimesOnSource(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil,
		g.CreateStringLiteral(testAst(), "-2m"),
		g.CreateStringLiteral(testAst(), "-1m"))
	require.NoError(err)

	state := newTestState()
	changed, err := (&ConvertStringTimesRule{state: state}).Execute(g)
	require.NoError(err)
	require.True(changed)

	changed, err = (&SetMemSourceNsTimesRule{state: state}).Execute(g)
	require.NoError(err)
	require.True(changed)

	require.True(src.TimeSet)
	require.Equal(testNow.Add(-2*time.Minute).UnixNano(), src.TimeStartNS)
	require.Equal(testNow.Add(-time.Minute).UnixNano(), src.TimeStopNS)
}

func TestConvertStringTimesDays(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src, err := g.CreateMemorySource(testAst(), "cpu", nil,
		g.CreateStringLiteral(testAst(), "-2d"), nil)
	require.NoError(err)

	state := newTestState()
	_, err = (&ConvertStringTimesRule{state: state}).Execute(g)
	require.NoError(err)
	_, err = (&SetMemSourceNsTimesRule{state: state}).Execute(g)
	require.NoError(err)

	require.True(src.TimeSet)
	require.Equal(testNow.Add(-48*time.Hour).UnixNano(), src.TimeStartNS)
	// a missing stop time defaults to the reference time
	require.Equal(testNow.UnixNano(), src.TimeStopNS)
}

func TestConvertStringTimesBadString(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	_, err := g.CreateMemorySource(testAst(), "cpu", nil,
		g.CreateStringLiteral(testAst(), "not a time"), nil)
	require.NoError(err)

	_, err = (&ConvertStringTimesRule{state: newTestState()}).Execute(g)
	require.Error(err)
	require.True(ir.ErrCompileTimeEval.Is(errUnwrap(err)))
}

func TestRollingWindowStringIsDurationOnly(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	src := makeSource(t, g, cpuRelation())
	roll, err := g.CreateRolling(testAst(), src, makeColumn(g, "count", 0),
		g.CreateStringLiteral(testAst(), "2m"))
	require.NoError(err)

	state := newTestState()
	_, err = (&ConvertStringTimesRule{state: state}).Execute(g)
	require.NoError(err)
	_, err = (&SetMemSourceNsTimesRule{state: state}).Execute(g)
	require.NoError(err)

	require.True(roll.WindowSet)
	require.Equal(int64(2*time.Minute), roll.WindowSizeNS)
}

func TestCompileTimeArithmeticFolds(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	inner := g.CreateFunc(testAst(), "add", []ir.Expression{
		g.CreateIntLiteral(testAst(), 5),
		g.CreateIntLiteral(testAst(), 6),
	})
	outer := g.CreateFunc(testAst(), "multiply", []ir.Expression{
		inner,
		g.CreateIntLiteral(testAst(), 3),
	})
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, outer, nil)
	require.NoError(err)

	state := newTestState()
	changed, err := (&OperatorCompileTimeExpressionRule{state: state}).Execute(g)
	require.NoError(err)
	require.True(changed)

	lit, ok := src.StartTimeExpr.(*ir.Literal)
	require.True(ok)
	require.Equal(int64(33), lit.IntValue())

	_, err = (&SetMemSourceNsTimesRule{state: state}).Execute(g)
	require.NoError(err)
	require.Equal(int64(33), src.TimeStartNS)
}

func TestCompileTimePartialFold(t *testing.T) {
	require := require.New(t)

	g := ir.NewIR()
	foldable := g.CreateFunc(testAst(), "add", []ir.Expression{
		g.CreateIntLiteral(testAst(), 1),
		g.CreateIntLiteral(testAst(), 2),
	})
	// the outer call mixes a foldable argument with a string one
	outer := g.CreateFunc(testAst(), "add", []ir.Expression{
		foldable,
		g.CreateStringLiteral(testAst(), "-5m"),
	})
	src, err := g.CreateMemorySource(testAst(), "cpu", nil, outer, nil)
	require.NoError(err)

	changed, err := (&OperatorCompileTimeExpressionRule{state: newTestState()}).Execute(g)
	require.NoError(err)
	require.True(changed)

	f, ok := src.StartTimeExpr.(*ir.Func)
	require.True(ok)
	lit, ok := f.FuncArgs[0].(*ir.Literal)
	require.True(ok)
	require.Equal(int64(3), lit.IntValue())
}
