package evaluator

import (
	"bytes"
	"fmt"
	"io"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/runtime"
	"github.com/mythonlang/mython/internal/token"
)

// callMethod implements the method call protocol: arity-checked lookup,
// a fresh frame with self as a sharing holder and the actual argument
// holders bound positionally, then evaluation of the MethodBody wrapper
// that catches the return unwind. Frames never link to the caller's
// environment, so a method sees nothing beyond self and its parameters.
func (e *Evaluator) callMethod(inst *runtime.ClassInstance, name string, args []runtime.Holder, tok token.Token) (runtime.Holder, error) {
	class := inst.Class()
	if !class.HasMethod(name, len(args)) {
		return runtime.None(), e.newError(runtime.NoSuchMethod, tok,
			"class %s has no method %s taking %d arguments", class.Name(), name, len(args))
	}

	method := class.GetMethod(name)
	body, ok := method.Body.(ast.Statement)
	if !ok {
		return runtime.None(), fmt.Errorf("method %s.%s has no executable body", class.Name(), name)
	}

	frame := runtime.NewEnvironment()
	frame.Set(runtime.SelfName, runtime.Share(inst))
	for i, param := range method.FormalParams {
		frame.Set(param, args[i])
	}

	e.PushCall(class.Name()+"."+name, e.CurrentFile, tok.Line, tok.Column)
	defer e.PopCall()

	return e.Eval(body, frame)
}

func (e *Evaluator) evalPrint(node *ast.Print, env *runtime.Environment) (runtime.Holder, error) {
	last := runtime.None()

	for i, arg := range node.Args {
		if i > 0 {
			if _, err := io.WriteString(e.Out, " "); err != nil {
				return runtime.None(), err
			}
		}
		h, err := e.Eval(arg, env)
		if err != nil {
			return runtime.None(), err
		}
		if err := e.printHolder(e.Out, h, arg.GetToken()); err != nil {
			return runtime.None(), err
		}
		last = h
	}

	if _, err := io.WriteString(e.Out, "\n"); err != nil {
		return runtime.None(), err
	}
	return last, nil
}

func (e *Evaluator) evalStringify(node *ast.Stringify, env *runtime.Environment) (runtime.Holder, error) {
	h, err := e.Eval(node.Arg, env)
	if err != nil {
		return runtime.None(), err
	}

	var buf bytes.Buffer
	if err := e.printHolder(&buf, h, node.GetToken()); err != nil {
		return runtime.None(), err
	}
	return runtime.Own(&runtime.String{Value: buf.String()}), nil
}

// printHolder writes the printed form of h to w. An instance whose
// class defines a zero-argument __str__ prints through it; otherwise
// the opaque identity token is used. Empty holders print None.
func (e *Evaluator) printHolder(w io.Writer, h runtime.Holder, tok token.Token) error {
	if h.IsEmpty() {
		_, err := io.WriteString(w, "None")
		return err
	}

	if inst, ok := runtime.As[*runtime.ClassInstance](h); ok {
		if inst.Class().HasMethod(runtime.StrMethod, 0) {
			result, err := e.callMethod(inst, runtime.StrMethod, nil, tok)
			if err != nil {
				return err
			}
			return e.printHolder(w, result, tok)
		}
	}

	_, err := io.WriteString(w, h.Get().Inspect())
	return err
}

// Render returns the printed form of h as a string; the REPL uses it to
// echo results.
func (e *Evaluator) Render(h runtime.Holder) (string, error) {
	var buf bytes.Buffer
	if err := e.printHolder(&buf, h, token.Token{}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
