package pipeline

import (
	"io"
	"os"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/config"
	"github.com/mythonlang/mython/internal/diagnostics"
	"github.com/mythonlang/mython/internal/token"
)

// Processor is a single pipeline stage. Each stage reads what it needs
// from the context and writes its product back (tokens, tree, errors).
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// PipelineContext is threaded through all stages of a run.
type PipelineContext struct {
	Source   string
	FilePath string
	Config   *config.Config

	// Out is the program's output sink; a single unbuffered stream.
	Out io.Writer

	// TokenStream is the lexer's product.
	TokenStream []token.Token

	// AstRoot is the parser's product, always a Compound.
	AstRoot *ast.Compound

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(source string) *PipelineContext {
	return &PipelineContext{
		Source: source,
		Config: config.Default(),
		Out:    os.Stdout,
	}
}

// AddError appends a diagnostic, stamping the context's file path.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Errors = append(ctx.Errors, err)
}
