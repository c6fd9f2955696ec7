package backend

import (
	"fmt"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/evaluator"
	"github.com/mythonlang/mython/internal/pipeline"
	"github.com/mythonlang/mython/internal/runtime"
)

// TreeWalkBackend evaluates the statement tree directly.
type TreeWalkBackend struct{}

func NewTreeWalk() *TreeWalkBackend {
	return &TreeWalkBackend{}
}

// Run creates the evaluator, seeds the empty top-level environment and
// executes the root compound.
func (b *TreeWalkBackend) Run(ctx *pipeline.PipelineContext) (runtime.Holder, error) {
	if ctx.AstRoot == nil {
		return runtime.None(), fmt.Errorf("no tree to execute")
	}
	if len(ctx.Errors) > 0 {
		return runtime.None(), ctx.Errors[0]
	}

	eval := evaluator.New()
	eval.Out = ctx.Out
	if ctx.Config != nil {
		eval.MaxDepth = ctx.Config.MaxDepth
	}
	if ctx.FilePath != "" {
		eval.CurrentFile = ctx.FilePath
	} else {
		eval.CurrentFile = "<stdin>"
	}

	env := runtime.NewEnvironment()
	if err := eval.Execute(ctx.AstRoot, env); err != nil {
		return runtime.None(), err
	}
	return runtime.None(), nil
}

// Name returns the backend name.
func (b *TreeWalkBackend) Name() string {
	return "tree-walk"
}

// RunProgram is a convenience method that takes a parsed tree directly
// and runs it in a caller-supplied environment, so that environment
// stays alive across runs.
func (b *TreeWalkBackend) RunProgram(root *ast.Compound, eval *evaluator.Evaluator, env *runtime.Environment) error {
	return eval.Execute(root, env)
}
