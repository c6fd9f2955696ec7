// Package analyzer runs static checks between parsing and execution.
// Mython is dynamic, so the checks are structural: special-method
// signatures and duplicate definitions that the runtime would otherwise
// only surface as confusing dispatch behavior.
package analyzer

import (
	"fmt"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/diagnostics"
	"github.com/mythonlang/mython/internal/runtime"
)

// dunderArities fixes the argument count (excluding self) of the
// special methods the evaluator dispatches on. A mismatch is legal to
// declare but can never be called by the operator machinery.
var dunderArities = map[string]int{
	runtime.StrMethod: 0,
	runtime.EqMethod:  1,
	runtime.LtMethod:  1,
	runtime.AddMethod: 1,
}

type Analyzer struct {
	errors []*diagnostics.DiagnosticError
}

func New() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) Errors() []*diagnostics.DiagnosticError {
	return a.errors
}

// Analyze checks the class definitions among the root's own statements.
// Class definitions nested inside if blocks or method bodies are not
// visited.
func (a *Analyzer) Analyze(root *ast.Compound) {
	for _, stmt := range root.Statements {
		def, ok := stmt.(*ast.ClassDefinition)
		if !ok {
			continue
		}
		a.checkClass(def)
	}
}

func (a *Analyzer) checkClass(def *ast.ClassDefinition) {
	seen := make(map[string]bool)

	for _, method := range def.Class.Methods() {
		if seen[method.Name] {
			a.addError(def, fmt.Sprintf("class %s defines method %s more than once; the last definition wins",
				def.Class.Name(), method.Name))
		}
		seen[method.Name] = true

		params := make(map[string]bool)
		for _, param := range method.FormalParams {
			if param == runtime.SelfName {
				a.addError(def, fmt.Sprintf("%s.%s rebinds self as a parameter",
					def.Class.Name(), method.Name))
			}
			if params[param] {
				a.addError(def, fmt.Sprintf("%s.%s declares parameter %s more than once",
					def.Class.Name(), method.Name, param))
			}
			params[param] = true
		}

		want, special := dunderArities[method.Name]
		if special && len(method.FormalParams) != want {
			a.addError(def, fmt.Sprintf("%s.%s takes %d arguments; the runtime dispatches it with %d",
				def.Class.Name(), method.Name, len(method.FormalParams), want))
		}
	}
}

func (a *Analyzer) addError(def *ast.ClassDefinition, message string) {
	a.errors = append(a.errors, diagnostics.NewError(diagnostics.ErrS001, def.GetToken(), message))
}
