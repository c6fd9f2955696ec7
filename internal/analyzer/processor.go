package analyzer

import (
	"github.com/mythonlang/mython/internal/pipeline"
)

// SemanticAnalyzerProcessor adapts the analyzer into a pipeline stage.
type SemanticAnalyzerProcessor struct{}

func (ap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.AstRoot == nil {
		return ctx
	}

	a := New()
	a.Analyze(ctx.AstRoot)
	for _, err := range a.Errors() {
		ctx.AddError(err)
	}

	return ctx
}
