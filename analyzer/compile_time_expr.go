package analyzer

import (
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/flowscope/flowscope/ir"
)

// compileTimeFuncs are the arithmetic functions the analyzer evaluates
// itself, without an execution engine.
var compileTimeFuncs = map[string]func(a, b int64) int64{
	"add":      func(a, b int64) int64 { return a + b },
	"subtract": func(a, b int64) int64 { return a - b },
	"multiply": func(a, b int64) int64 { return a * b },
}

// parseTimeString turns a relative time such as "-5m", "1h30m" or "2d" into
// nanoseconds.
func parseTimeString(s string) (int64, error) {
	str := strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(str, "-") {
		neg = true
		str = str[1:]
	}
	var d time.Duration
	if strings.HasSuffix(str, "d") {
		days, err := cast.ToInt64E(strings.TrimSuffix(str, "d"))
		if err != nil {
			return 0, err
		}
		d = time.Duration(days) * 24 * time.Hour
	} else {
		var err error
		d, err = time.ParseDuration(str)
		if err != nil {
			return 0, err
		}
	}
	if neg {
		d = -d
	}
	return int64(d), nil
}

// ConvertStringTimesRule rewrites relative time strings in source time
// windows and rolling window sizes into integer literals. Source windows
// resolve against the compilation's reference time; window sizes stay plain
// durations.
type ConvertStringTimesRule struct {
	state *ir.CompilerState
}

func (ConvertStringTimesRule) Name() string { return "convert_string_times" }

func (r *ConvertStringTimesRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		switch t := n.(type) {
		case *ir.MemorySource:
			if t.TimeSet {
				return false, nil
			}
			changed := false
			for _, slot := range []*ir.Expression{&t.StartTimeExpr, &t.StopTimeExpr} {
				if *slot == nil {
					continue
				}
				e, c, err := r.convert(g, *slot, true)
				if err != nil {
					return false, ir.NodeError(t, err)
				}
				if c {
					*slot = e
					changed = true
				}
			}
			return changed, nil
		case *ir.Rolling:
			if t.WindowSet || t.WindowSizeExpr == nil {
				return false, nil
			}
			e, c, err := r.convert(g, t.WindowSizeExpr, false)
			if err != nil {
				return false, ir.NodeError(t, err)
			}
			if c {
				t.WindowSizeExpr = e
			}
			return c, nil
		}
		return false, nil
	})
}

func (r *ConvertStringTimesRule) convert(g *ir.IR, e ir.Expression, relative bool) (ir.Expression, bool, error) {
	switch t := e.(type) {
	case *ir.Literal:
		if t.DataType() != ir.String {
			return e, false, nil
		}
		ns, err := parseTimeString(t.StringValue())
		if err != nil {
			return nil, false, ir.ErrCompileTimeEval.New(t.DebugString())
		}
		if relative {
			ns += r.state.TimeNow().UnixNano()
		}
		return g.CreateIntLiteral(t.Ast(), ns), true, nil
	case *ir.Func:
		changed := false
		for i, a := range t.FuncArgs {
			na, c, err := r.convert(g, a, relative)
			if err != nil {
				return nil, false, err
			}
			if c {
				t.UpdateArg(i, na)
				changed = true
			}
		}
		return t, changed, nil
	}
	return e, false, nil
}

// SetMemSourceNsTimesRule fixes the absolute time window of sources whose
// time expressions have folded down to integer literals, and the window
// size of rolling operators likewise. A missing stop time defaults to the
// compilation's reference time.
type SetMemSourceNsTimesRule struct {
	state *ir.CompilerState
}

func (SetMemSourceNsTimesRule) Name() string { return "set_mem_source_ns_times" }

func (r *SetMemSourceNsTimesRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		switch t := n.(type) {
		case *ir.MemorySource:
			if t.TimeSet || (t.StartTimeExpr == nil && t.StopTimeExpr == nil) {
				return false, nil
			}
			start := int64(0)
			if t.StartTimeExpr != nil {
				v, ok := literalNS(t.StartTimeExpr)
				if !ok {
					return false, nil
				}
				start = v
			}
			stop := r.state.TimeNow().UnixNano()
			if t.StopTimeExpr != nil {
				v, ok := literalNS(t.StopTimeExpr)
				if !ok {
					return false, nil
				}
				stop = v
			}
			t.SetTimesNS(start, stop)
			return true, nil
		case *ir.Rolling:
			if t.WindowSet || t.WindowSizeExpr == nil {
				return false, nil
			}
			v, ok := literalNS(t.WindowSizeExpr)
			if !ok {
				return false, nil
			}
			t.SetWindowSizeNS(v)
			return true, nil
		}
		return false, nil
	})
}

func literalNS(e ir.Expression) (int64, bool) {
	l, ok := e.(*ir.Literal)
	if !ok {
		return 0, false
	}
	switch l.DataType() {
	case ir.Int64, ir.Time64NS:
		return l.IntValue(), true
	}
	return 0, false
}

// OperatorCompileTimeExpressionRule folds arithmetic over integer literals
// inside compile-time expression slots. A function with one foldable and
// one unfoldable argument has just the foldable side replaced.
type OperatorCompileTimeExpressionRule struct {
	state *ir.CompilerState
}

func (OperatorCompileTimeExpressionRule) Name() string { return "operator_compile_time_expression" }

func (OperatorCompileTimeExpressionRule) Execute(g *ir.IR) (bool, error) {
	return executeTopDown(g, func(n ir.Node) (bool, error) {
		switch t := n.(type) {
		case *ir.MemorySource:
			if t.TimeSet {
				return false, nil
			}
			changed := false
			for _, slot := range []*ir.Expression{&t.StartTimeExpr, &t.StopTimeExpr} {
				if *slot == nil {
					continue
				}
				e, c := foldCompileTimeExpr(g, *slot)
				if c {
					*slot = e
					changed = true
				}
			}
			return changed, nil
		case *ir.Rolling:
			if t.WindowSet || t.WindowSizeExpr == nil {
				return false, nil
			}
			e, c := foldCompileTimeExpr(g, t.WindowSizeExpr)
			if c {
				t.WindowSizeExpr = e
			}
			return c, nil
		}
		return false, nil
	})
}

func foldCompileTimeExpr(g *ir.IR, e ir.Expression) (ir.Expression, bool) {
	f, ok := e.(*ir.Func)
	if !ok {
		return e, false
	}
	changed := false
	for i, a := range f.FuncArgs {
		na, c := foldCompileTimeExpr(g, a)
		if c {
			f.UpdateArg(i, na)
			changed = true
		}
	}
	fn, ok := compileTimeFuncs[f.Name]
	if !ok || len(f.FuncArgs) != 2 {
		return f, changed
	}
	var vals [2]int64
	for i, a := range f.FuncArgs {
		v, ok := literalNS(a)
		if !ok {
			return f, changed
		}
		vals[i] = v
	}
	return g.CreateIntLiteral(f.Ast(), fn(vals[0], vals[1])), true
}
