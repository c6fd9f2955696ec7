package backend

import (
	"strconv"
	"strings"

	"github.com/mythonlang/mython/internal/diagnostics"
	"github.com/mythonlang/mython/internal/pipeline"
	"github.com/mythonlang/mython/internal/runtime"
	"github.com/mythonlang/mython/internal/token"
)

// ExecutionProcessor adapts a Backend into a pipeline stage and folds
// runtime errors into coded diagnostics.
type ExecutionProcessor struct {
	Backend Backend
}

func NewExecutionProcessor(b Backend) *ExecutionProcessor {
	return &ExecutionProcessor{Backend: b}
}

func (p *ExecutionProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	// If earlier stages failed, don't run execution.
	if ctx.AstRoot == nil || len(ctx.Errors) > 0 {
		return ctx
	}

	if _, err := p.Backend.Run(ctx); err != nil {
		if rerr, ok := err.(*runtime.Error); ok {
			p.handleRuntimeError(ctx, rerr)
		} else {
			ctx.AddError(diagnostics.NewError(diagnostics.ErrR001, token.Token{}, err.Error()))
		}
	}

	return ctx
}

func (p *ExecutionProcessor) handleRuntimeError(ctx *pipeline.PipelineContext, err *runtime.Error) {
	tok := token.Token{Line: err.Line, Column: err.Column}

	var msg strings.Builder
	msg.WriteString(string(err.Kind))
	msg.WriteString(": ")
	msg.WriteString(err.Message)

	if len(err.StackTrace) > 0 {
		msg.WriteString("\nStack trace:")
		for i := len(err.StackTrace) - 1; i >= 0; i-- {
			frame := err.StackTrace[i]
			file := frame.File
			if file == "" {
				file = ctx.FilePath
			}
			msg.WriteString("\n  at " + file + ":" + strconv.Itoa(frame.Line) + " (called " + frame.Name + ")")
		}
	}

	ctx.AddError(diagnostics.NewError(diagnostics.ErrR001, tok, msg.String()))
}
