// Package analyzer runs the rule batches that turn a freshly built IR graph
// into a validated, executable plan: type and relation inference, compile
// time folding, structural simplification and output shaping.
package analyzer

import (
	"os"

	opentracing "github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/flowscope/flowscope/ir"
)

const debugAnalyzerKey = "DEBUG_ANALYZER"

const maxAnalysisIterations = 1000

// ErrMaxAnalysisIters is thrown when a converging batch exceeds its
// iteration cap without reaching a fixed point.
var ErrMaxAnalysisIters = errors.NewKind("exceeded max analysis iterations (%d)")

// Analyzer runs an ordered list of rule batches over one IR graph.
// Compilation is single-threaded; an Analyzer must not be shared by
// concurrent compilations, though the CompilerState it reads may be.
type Analyzer struct {
	Debug   bool
	Batches []*Batch

	state *ir.CompilerState
}

// New returns an Analyzer with the default batches for state.
func New(state *ir.CompilerState) *Analyzer {
	_, debug := os.LookupEnv(debugAnalyzerKey)
	return &Analyzer{
		Debug:   debug,
		Batches: defaultBatches(state),
		state:   state,
	}
}

func defaultBatches(state *ir.CompilerState) []*Batch {
	return []*Batch{
		{
			Desc:       "setup",
			Iterations: 1,
			Rules: []Rule{
				&SetupJoinTypeRule{},
				NewMergeGroupByIntoAggRule(),
				NewMergeGroupByIntoRollingRule(),
				&RemoveGroupByRule{},
			},
		},
		{
			Desc:       "compile-time-expressions",
			Iterations: maxAnalysisIterations,
			Rules: []Rule{
				&ConvertStringTimesRule{state: state},
				&SetMemSourceNsTimesRule{state: state},
				&OperatorCompileTimeExpressionRule{state: state},
			},
		},
		{
			Desc:       "fuse-maps",
			Iterations: maxAnalysisIterations,
			Rules:      []Rule{&CombineConsecutiveMapsRule{}},
		},
		{
			Desc:       "resolution",
			Iterations: maxAnalysisIterations,
			Rules: []Rule{
				&SourceRelationRule{state: state},
				&DataTypeRule{state: state},
				&ResolveMetadataPropertyRule{state: state},
				&ConvertMetadataRule{state: state},
				&OperatorRelationRule{state: state},
			},
		},
		{
			Desc:       "validation",
			Iterations: 1,
			Rules: []Rule{
				&CheckTypesResolvedRule{},
				&VerifyFilterExpressionRule{},
			},
		},
		{
			Desc:       "lower-drops",
			Iterations: 1,
			Rules:      []Rule{&DropToMapRule{}},
		},
		{
			Desc:       "annotations",
			Iterations: maxAnalysisIterations,
			Rules:      []Rule{&PropagateExpressionAnnotationsRule{}},
		},
		{
			Desc:       "output-shaping",
			Iterations: 1,
			Rules: []Rule{
				&UniqueSinkNameRule{},
				&AddLimitToMemorySinkRule{state: state},
			},
		},
		{
			Desc:       "prune-columns",
			Iterations: maxAnalysisIterations,
			Rules:      []Rule{&PruneUnusedColumnsRule{}},
		},
		{
			Desc:       "cleanup",
			Iterations: 1,
			Rules: []Rule{
				&CleanUpStrayIRNodesRule{},
				&PruneUnconnectedOperatorsRule{},
			},
		},
	}
}

// Analyze runs every batch in order. The first rule error aborts the whole
// run with that error.
func (a *Analyzer) Analyze(g *ir.IR) error {
	span := opentracing.StartSpan("analyze")
	defer span.Finish()

	for _, batch := range a.Batches {
		batchSpan := opentracing.StartSpan(
			"batch."+batch.Desc,
			opentracing.ChildOf(span.Context()),
		)
		err := batch.Eval(a, g)
		batchSpan.Finish()
		if err != nil {
			return err
		}
	}
	return nil
}

// Log prints an analyzer debug message when the debug flag is on.
func (a *Analyzer) Log(msg string, args ...interface{}) {
	if a.Debug {
		logrus.Infof(msg, args...)
	}
}
