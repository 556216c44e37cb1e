package ir

import (
	"fmt"

	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrTableNotFound is returned when a source references a table missing
	// from the catalog.
	ErrTableNotFound = errors.NewKind("table '%s' not found")

	// ErrColumnsNotFound is returned when a source selects columns the table
	// does not have.
	ErrColumnsNotFound = errors.NewKind("columns {%s} are missing in table")

	// ErrColumnNotFoundInRelation is returned when a column reference cannot
	// be resolved against its parent operator's relation.
	ErrColumnNotFoundInRelation = errors.NewKind("column '%s' not found in relation of %s(id=%d)")

	// ErrUDFNotFound is returned when no registered function matches a name
	// and argument-type tuple.
	ErrUDFNotFound = errors.NewKind("could not find function '%s' with arguments [%s]")

	// ErrRelationAlreadySet is returned when a rule resolves an operator's
	// relation twice.
	ErrRelationAlreadySet = errors.NewKind("relation of %s(id=%d) already set")

	// ErrUnionMismatch is returned when union parents disagree; the message
	// names which check failed.
	ErrUnionMismatch = errors.NewKind("union relations do not match (%s): %s vs %s")

	// ErrDuplicateJoinColumn is returned when join suffixing still yields a
	// duplicate output column.
	ErrDuplicateJoinColumn = errors.NewKind("duplicate column '%s' after applying suffixes ('%s', '%s')")

	// ErrGroupByUnsupportedChild is returned when a groupby feeds anything
	// other than an aggregating consumer.
	ErrGroupByUnsupportedChild = errors.NewKind("a groupby must be followed by an agg")

	// ErrFilterNotBoolean is returned for non-boolean filter predicates.
	ErrFilterNotBoolean = errors.NewKind("expected Boolean for filter expression, got %s")

	// ErrMetadataNotFound is returned for an unknown metadata property name.
	ErrMetadataNotFound = errors.NewKind("metadata value '%s' is not available")

	// ErrMetadataKeyColumn is returned when no converting column for a
	// metadata property is in scope.
	ErrMetadataKeyColumn = errors.NewKind("can't resolve metadata '%s': need one of columns [%s], parent relation has columns [%s] available")

	// ErrCompileTimeEval is returned when a start/stop time expression cannot
	// be reduced to a constant.
	ErrCompileTimeEval = errors.NewKind("expected integer, time expression, or a string representation of time, not %s")

	// ErrNoParent is returned when a column is referenced on an operator with
	// no parent to resolve it against.
	ErrNoParent = errors.NewKind("no parent for %s(id=%d), can't resolve column '%s'")
)

// CompileError is a user-facing compile error annotated with the source
// position of the node it was raised on.
type CompileError struct {
	Line int
	Col  int
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%d:%d %s", e.Line, e.Col, e.Err.Error())
}

func (e *CompileError) Unwrap() error { return e.Err }

// NodeError wraps err with n's source position. Errors already positioned
// pass through untouched so the innermost position wins.
func NodeError(n Node, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*CompileError); ok {
		return err
	}
	ast := n.Ast()
	return &CompileError{Line: ast.Line, Col: ast.Col, Err: err}
}
