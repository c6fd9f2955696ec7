package lexer

import (
	"github.com/mythonlang/mython/internal/pipeline"
)

// LexerProcessor adapts the lexer into a pipeline stage.
type LexerProcessor struct{}

func (lp *LexerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	l := New(ctx.Source)
	ctx.TokenStream = l.Tokenize()

	for _, err := range l.Errors() {
		ctx.AddError(err)
	}

	return ctx
}
