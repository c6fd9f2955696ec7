package parser

import (
	"github.com/mythonlang/mython/internal/diagnostics"
	"github.com/mythonlang/mython/internal/pipeline"
	"github.com/mythonlang/mython/internal/token"
)

type ParserProcessor struct{}

func (pp *ParserProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.TokenStream == nil {
		// This case should not be hit if the lexer runs first, but as a safeguard:
		ctx.AddError(diagnostics.NewError(diagnostics.ErrP001, token.Token{}, "parser: token stream is nil"))
		return ctx
	}

	p := New(ctx.TokenStream)
	ctx.AstRoot = p.ParseProgram()

	for _, err := range p.Errors() {
		ctx.AddError(err)
	}

	return ctx
}
