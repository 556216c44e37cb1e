package compiler

import (
	"strings"

	"github.com/flowscope/flowscope/ir"
	"github.com/flowscope/flowscope/planpb"
)

// LineColError is one positioned compile error as reported to the caller.
type LineColError struct {
	Line    int
	Col     int
	Message string
}

// ErrorGroup is an ordered list of positioned compile errors. Groups from
// independent sub-compilations merge without losing individual positions;
// the group's own message is every entry's message newline-joined.
type ErrorGroup struct {
	Errors []LineColError
}

func (g *ErrorGroup) Error() string {
	msgs := make([]string, len(g.Errors))
	for i, e := range g.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "\n")
}

// Append adds err's entries to the group. Compile errors keep their source
// position; nested groups are flattened in order; anything else becomes one
// unpositioned entry.
func (g *ErrorGroup) Append(err error) {
	switch t := err.(type) {
	case nil:
	case *ErrorGroup:
		g.Errors = append(g.Errors, t.Errors...)
	case *ir.CompileError:
		g.Errors = append(g.Errors, LineColError{Line: t.Line, Col: t.Col, Message: t.Err.Error()})
	default:
		g.Errors = append(g.Errors, LineColError{Message: err.Error()})
	}
}

// MergeGroups combines several groups into one, preserving order.
func MergeGroups(groups ...*ErrorGroup) *ErrorGroup {
	out := &ErrorGroup{}
	for _, g := range groups {
		if g != nil {
			out.Errors = append(out.Errors, g.Errors...)
		}
	}
	return out
}

// ToProto serializes the group for transfer to the caller.
func (g *ErrorGroup) ToProto() *planpb.CompilerErrorGroup {
	out := &planpb.CompilerErrorGroup{}
	for _, e := range g.Errors {
		out.Errors = append(out.Errors, &planpb.CompilerError{
			Line:    uint64(e.Line),
			Column:  uint64(e.Col),
			Message: e.Message,
		})
	}
	return out
}

// asGroup wraps any error into an ErrorGroup, passing groups through.
func asGroup(err error) *ErrorGroup {
	if g, ok := err.(*ErrorGroup); ok {
		return g
	}
	g := &ErrorGroup{}
	g.Append(err)
	return g
}
