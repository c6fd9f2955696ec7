package evaluator

import (
	"errors"
	"io"
	"os"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/config"
	"github.com/mythonlang/mython/internal/runtime"
	"github.com/mythonlang/mython/internal/token"
)

// CallFrame represents a single frame in the call stack.
type CallFrame struct {
	Name   string // Qualified method name, Class.method
	File   string // Source file
	Line   int    // Call site line
	Column int    // Call site column
}

// Evaluator walks the statement tree. Evaluation is single-threaded and
// synchronous: arguments and operands strictly left to right, statement
// sequences in textual order.
type Evaluator struct {
	// Out is the program's output sink, written in evaluation order.
	Out io.Writer
	// MaxDepth bounds Eval nesting to prevent Go stack overflow from
	// runaway recursion in user programs.
	MaxDepth int
	// CurrentFile being evaluated, for error stack traces.
	CurrentFile string
	// CallStack of active method invocations.
	CallStack []CallFrame

	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{
		Out:      os.Stdout,
		MaxDepth: config.DefaultMaxDepth,
	}
}

// returnSignal is the typed unwind a return statement raises. It
// travels as an error value; only MethodBody catches it, everything
// else passes it through untouched.
type returnSignal struct {
	value runtime.Holder
	tok   token.Token
}

func (r *returnSignal) Error() string { return "return unwind" }

// Execute runs the root statement in env. A return unwind that escapes
// every method body is reported as ReturnAtTopLevel.
func (e *Evaluator) Execute(root ast.Statement, env *runtime.Environment) error {
	_, err := e.Eval(root, env)
	if err != nil {
		var rs *returnSignal
		if errors.As(err, &rs) {
			return e.newError(runtime.ReturnAtTopLevel, rs.tok,
				"return outside of any method")
		}
		return err
	}
	return nil
}

func (e *Evaluator) Eval(node ast.Statement, env *runtime.Environment) (runtime.Holder, error) {
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.evalDepth > e.maxDepth() {
		return runtime.None(), e.newError(runtime.RecursionLimit, node.GetToken(),
			"maximum recursion depth exceeded")
	}

	switch node := node.(type) {
	case *ast.NumericConst:
		return runtime.Share(node.Value), nil

	case *ast.StringConst:
		return runtime.Share(node.Value), nil

	case *ast.BoolConst:
		return runtime.Share(node.Value), nil

	case *ast.NoneConst:
		return runtime.None(), nil

	case *ast.VariableValue:
		return e.evalVariableValue(node, env)

	case *ast.Assignment:
		value, err := e.Eval(node.Value, env)
		if err != nil {
			return runtime.None(), err
		}
		return env.Set(node.Name, value), nil

	case *ast.FieldAssignment:
		return e.evalFieldAssignment(node, env)

	case *ast.NewInstance:
		return e.evalNewInstance(node, env)

	case *ast.MethodCall:
		return e.evalMethodCall(node, env)

	case *ast.Compound:
		for _, stmt := range node.Statements {
			if _, err := e.Eval(stmt, env); err != nil {
				return runtime.None(), err
			}
		}
		return runtime.None(), nil

	case *ast.Return:
		value, err := e.Eval(node.Value, env)
		if err != nil {
			return runtime.None(), err
		}
		return runtime.None(), &returnSignal{value: value, tok: node.GetToken()}

	case *ast.MethodBody:
		if _, err := e.Eval(node.Body, env); err != nil {
			var rs *returnSignal
			if errors.As(err, &rs) {
				return rs.value, nil
			}
			return runtime.None(), err
		}
		return runtime.None(), nil

	case *ast.ClassDefinition:
		env.Set(node.Class.Name(), runtime.Own(node.Class))
		return runtime.None(), nil

	case *ast.Print:
		return e.evalPrint(node, env)

	case *ast.Stringify:
		return e.evalStringify(node, env)

	case *ast.Add:
		return e.evalAdd(node, env)

	case *ast.Sub:
		return e.evalSub(node, env)

	case *ast.Mult:
		return e.evalMult(node, env)

	case *ast.Div:
		return e.evalDiv(node, env)

	case *ast.Or:
		return e.evalOr(node, env)

	case *ast.And:
		return e.evalAnd(node, env)

	case *ast.Not:
		return e.evalNot(node, env)

	case *ast.Comparison:
		return e.evalComparison(node, env)

	case *ast.IfElse:
		cond, err := e.Eval(node.Condition, env)
		if err != nil {
			return runtime.None(), err
		}
		if runtime.IsTrue(cond) {
			return e.Eval(node.Then, env)
		}
		if node.Else != nil {
			return e.Eval(node.Else, env)
		}
		return runtime.None(), nil
	}

	return runtime.None(), e.newError(runtime.BadOperands, node.GetToken(),
		"unknown statement node %T", node)
}

func (e *Evaluator) evalVariableValue(node *ast.VariableValue, env *runtime.Environment) (runtime.Holder, error) {
	current := env
	var holder runtime.Holder

	for i, name := range node.DottedIDs {
		h, ok := current.Get(name)
		if !ok {
			if i == 0 {
				return runtime.None(), e.newError(runtime.NameUnbound, node.GetToken(),
					"name %q is not defined", name)
			}
			return runtime.None(), e.newError(runtime.NameUnbound, node.GetToken(),
				"no field %q on %q", name, node.DottedIDs[i-1])
		}
		holder = h

		if i == len(node.DottedIDs)-1 {
			break
		}
		inst, ok := runtime.As[*runtime.ClassInstance](h)
		if !ok {
			return runtime.None(), e.newError(runtime.NotAnInstance, node.GetToken(),
				"%q is not an instance", name)
		}
		current = inst.Fields()
	}

	return holder, nil
}

func (e *Evaluator) evalFieldAssignment(node *ast.FieldAssignment, env *runtime.Environment) (runtime.Holder, error) {
	object, err := e.Eval(node.Object, env)
	if err != nil {
		return runtime.None(), err
	}

	inst, ok := runtime.As[*runtime.ClassInstance](object)
	if !ok {
		return runtime.None(), e.newError(runtime.NotAnInstance, node.GetToken(),
			"cannot assign field %q: target is not an instance", node.FieldName)
	}

	value, err := e.Eval(node.Value, env)
	if err != nil {
		return runtime.None(), err
	}
	return inst.Fields().Set(node.FieldName, value), nil
}

func (e *Evaluator) evalNewInstance(node *ast.NewInstance, env *runtime.Environment) (runtime.Holder, error) {
	inst := runtime.NewInstance(node.Class)

	args, err := e.evalArguments(node.Args, env)
	if err != nil {
		return runtime.None(), err
	}

	if node.Class.HasMethod(runtime.InitMethod, len(args)) {
		if _, err := e.callMethod(inst, runtime.InitMethod, args, node.GetToken()); err != nil {
			return runtime.None(), err
		}
	}

	return runtime.Share(inst), nil
}

func (e *Evaluator) evalMethodCall(node *ast.MethodCall, env *runtime.Environment) (runtime.Holder, error) {
	object, err := e.Eval(node.Object, env)
	if err != nil {
		return runtime.None(), err
	}

	inst, ok := runtime.As[*runtime.ClassInstance](object)
	if !ok {
		return runtime.None(), e.newError(runtime.NotAnInstance, node.GetToken(),
			"method %q called on a value that is not an instance", node.Method)
	}

	args, err := e.evalArguments(node.Args, env)
	if err != nil {
		return runtime.None(), err
	}

	return e.callMethod(inst, node.Method, args, node.GetToken())
}

func (e *Evaluator) evalArguments(nodes []ast.Statement, env *runtime.Environment) ([]runtime.Holder, error) {
	args := make([]runtime.Holder, 0, len(nodes))
	for _, node := range nodes {
		arg, err := e.Eval(node, env)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (e *Evaluator) maxDepth() int {
	if e.MaxDepth > 0 {
		return e.MaxDepth
	}
	return config.DefaultMaxDepth
}

// PushCall adds a call frame to the stack.
func (e *Evaluator) PushCall(name string, file string, line, column int) {
	e.CallStack = append(e.CallStack, CallFrame{
		Name:   name,
		File:   file,
		Line:   line,
		Column: column,
	})
}

// PopCall removes the top call frame.
func (e *Evaluator) PopCall() {
	if len(e.CallStack) > 0 {
		e.CallStack = e.CallStack[:len(e.CallStack)-1]
	}
}

// newError builds a runtime error stamped with the node location and a
// copy of the current call stack.
func (e *Evaluator) newError(kind runtime.ErrorKind, tok token.Token, format string, args ...interface{}) *runtime.Error {
	err := runtime.NewError(kind, format, args...)
	err.Line = tok.Line
	err.Column = tok.Column

	if len(e.CallStack) > 0 {
		err.StackTrace = make([]runtime.StackFrame, len(e.CallStack))
		for i, frame := range e.CallStack {
			err.StackTrace[i] = runtime.StackFrame{
				Name:   frame.Name,
				File:   frame.File,
				Line:   frame.Line,
				Column: frame.Column,
			}
		}
	}

	return err
}
