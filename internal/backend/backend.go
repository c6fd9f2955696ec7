// Package backend provides an interface for execution backends. The
// tree-walk interpreter is the only backend today; the seam exists so
// embedders can substitute their own runner.
package backend

import (
	"github.com/mythonlang/mython/internal/pipeline"
	"github.com/mythonlang/mython/internal/runtime"
)

// Backend is the interface for execution backends.
type Backend interface {
	// Run executes the program from the pipeline context.
	Run(ctx *pipeline.PipelineContext) (runtime.Holder, error)

	// Name returns the backend name for display.
	Name() string
}
