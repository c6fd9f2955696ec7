package evaluator

import (
	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/runtime"
	"github.com/mythonlang/mython/internal/token"
)

func (e *Evaluator) evalAdd(node *ast.Add, env *runtime.Environment) (runtime.Holder, error) {
	if node.Lhs == nil || node.Rhs == nil {
		return runtime.None(), e.newError(runtime.NullOperand, node.GetToken(),
			"null operands are not supported")
	}

	lhs, err := e.Eval(node.Lhs, env)
	if err != nil {
		return runtime.None(), err
	}
	rhs, err := e.Eval(node.Rhs, env)
	if err != nil {
		return runtime.None(), err
	}

	if ln, ok := runtime.As[*runtime.Number](lhs); ok {
		if rn, ok := runtime.As[*runtime.Number](rhs); ok {
			return runtime.Own(&runtime.Number{Value: ln.Value + rn.Value}), nil
		}
	}

	if ls, ok := runtime.As[*runtime.String](lhs); ok {
		if rs, ok := runtime.As[*runtime.String](rhs); ok {
			return runtime.Own(&runtime.String{Value: ls.Value + rs.Value}), nil
		}
	}

	if inst, ok := runtime.As[*runtime.ClassInstance](lhs); ok {
		if inst.Class().HasMethod(runtime.AddMethod, 1) {
			return e.callMethod(inst, runtime.AddMethod, []runtime.Holder{rhs}, node.GetToken())
		}
	}

	return runtime.None(), e.newError(runtime.BadOperands, node.GetToken(),
		"unsupported operands for +: %s and %s", runtime.TypeName(lhs), runtime.TypeName(rhs))
}

func (e *Evaluator) evalSub(node *ast.Sub, env *runtime.Environment) (runtime.Holder, error) {
	if node.Lhs == nil || node.Rhs == nil {
		return runtime.None(), e.newError(runtime.NullOperand, node.GetToken(),
			"null operands are not supported")
	}

	lhs, rhs, err := e.evalNumberPair(node.Lhs, node.Rhs, env, node.GetToken(), "-")
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(&runtime.Number{Value: lhs.Value - rhs.Value}), nil
}

func (e *Evaluator) evalMult(node *ast.Mult, env *runtime.Environment) (runtime.Holder, error) {
	if node.Lhs == nil || node.Rhs == nil {
		return runtime.None(), e.newError(runtime.NullOperand, node.GetToken(),
			"null operands are not supported")
	}

	lhs, rhs, err := e.evalNumberPair(node.Lhs, node.Rhs, env, node.GetToken(), "*")
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(&runtime.Number{Value: lhs.Value * rhs.Value}), nil
}

func (e *Evaluator) evalDiv(node *ast.Div, env *runtime.Environment) (runtime.Holder, error) {
	if node.Lhs == nil || node.Rhs == nil {
		return runtime.None(), e.newError(runtime.NullOperand, node.GetToken(),
			"null operands are not supported")
	}

	lhs, rhs, err := e.evalNumberPair(node.Lhs, node.Rhs, env, node.GetToken(), "/")
	if err != nil {
		return runtime.None(), err
	}
	if rhs.Value == 0 {
		return runtime.None(), e.newError(runtime.DivByZero, node.GetToken(), "division by zero")
	}
	return runtime.Own(&runtime.Number{Value: lhs.Value / rhs.Value}), nil
}

// evalNumberPair evaluates both operands left-first and requires both
// to be numbers; -, * and / have no string or class overloads.
func (e *Evaluator) evalNumberPair(lhsNode, rhsNode ast.Statement, env *runtime.Environment, tok token.Token, op string) (*runtime.Number, *runtime.Number, error) {
	lhs, err := e.Eval(lhsNode, env)
	if err != nil {
		return nil, nil, err
	}
	rhs, err := e.Eval(rhsNode, env)
	if err != nil {
		return nil, nil, err
	}

	ln, lok := runtime.As[*runtime.Number](lhs)
	rn, rok := runtime.As[*runtime.Number](rhs)
	if !lok || !rok {
		return nil, nil, e.newError(runtime.BadOperands, tok,
			"unsupported operands for %s: %s and %s", op, runtime.TypeName(lhs), runtime.TypeName(rhs))
	}
	return ln, rn, nil
}

func (e *Evaluator) evalOr(node *ast.Or, env *runtime.Environment) (runtime.Holder, error) {
	if node.Lhs == nil || node.Rhs == nil {
		return runtime.None(), e.newError(runtime.NullOperand, node.GetToken(),
			"null operands are not supported")
	}

	// Both sides evaluate; Mython or does not short-circuit.
	lhs, err := e.Eval(node.Lhs, env)
	if err != nil {
		return runtime.None(), err
	}
	rhs, err := e.Eval(node.Rhs, env)
	if err != nil {
		return runtime.None(), err
	}

	return runtime.Own(&runtime.Bool{Value: runtime.IsTrue(lhs) || runtime.IsTrue(rhs)}), nil
}

func (e *Evaluator) evalAnd(node *ast.And, env *runtime.Environment) (runtime.Holder, error) {
	if node.Lhs == nil || node.Rhs == nil {
		return runtime.None(), e.newError(runtime.NullOperand, node.GetToken(),
			"null operands are not supported")
	}

	lhs, err := e.Eval(node.Lhs, env)
	if err != nil {
		return runtime.None(), err
	}
	rhs, err := e.Eval(node.Rhs, env)
	if err != nil {
		return runtime.None(), err
	}

	return runtime.Own(&runtime.Bool{Value: runtime.IsTrue(lhs) && runtime.IsTrue(rhs)}), nil
}

func (e *Evaluator) evalNot(node *ast.Not, env *runtime.Environment) (runtime.Holder, error) {
	if node.Arg == nil {
		return runtime.None(), e.newError(runtime.NullOperand, node.GetToken(),
			"null operands are not supported")
	}

	arg, err := e.Eval(node.Arg, env)
	if err != nil {
		return runtime.None(), err
	}
	return runtime.Own(&runtime.Bool{Value: !runtime.IsTrue(arg)}), nil
}

func (e *Evaluator) evalComparison(node *ast.Comparison, env *runtime.Environment) (runtime.Holder, error) {
	if node.Lhs == nil || node.Rhs == nil {
		return runtime.None(), e.newError(runtime.NullOperand, node.GetToken(),
			"null operands are not supported")
	}

	lhs, err := e.Eval(node.Lhs, env)
	if err != nil {
		return runtime.None(), err
	}
	rhs, err := e.Eval(node.Rhs, env)
	if err != nil {
		return runtime.None(), err
	}

	var result bool
	switch node.Op {
	case token.EQ:
		result, err = e.equal(lhs, rhs, node.GetToken())
	case token.NOT_EQ:
		result, err = e.equal(lhs, rhs, node.GetToken())
		result = !result
	case token.LT:
		result, err = e.less(lhs, rhs, node.GetToken())
	case token.GT_EQ:
		result, err = e.less(lhs, rhs, node.GetToken())
		result = !result
	case token.GT:
		// > is ¬< ∧ ¬==, with == only consulted when < is false.
		var lt, eq bool
		lt, err = e.less(lhs, rhs, node.GetToken())
		if err == nil && !lt {
			eq, err = e.equal(lhs, rhs, node.GetToken())
			result = !eq
		}
	case token.LT_EQ:
		// <= is < ∨ ==, with == only consulted when < is false.
		var lt, eq bool
		lt, err = e.less(lhs, rhs, node.GetToken())
		if err == nil && !lt {
			eq, err = e.equal(lhs, rhs, node.GetToken())
			result = eq
		} else {
			result = lt
		}
	default:
		return runtime.None(), e.newError(runtime.BadOperands, node.GetToken(),
			"unknown comparison operator %q", node.Op)
	}
	if err != nil {
		return runtime.None(), err
	}

	return runtime.Own(&runtime.Bool{Value: result}), nil
}

// equal implements ==: both empty compare true, primitives compare by
// payload, and a left-hand instance may provide __eq__.
func (e *Evaluator) equal(lhs, rhs runtime.Holder, tok token.Token) (bool, error) {
	if lhs.IsEmpty() && rhs.IsEmpty() {
		return true, nil
	}
	if lhs.IsEmpty() {
		return false, e.newError(runtime.Uncomparable, tok, "cannot compare objects for equality")
	}

	if ln, ok := runtime.As[*runtime.Number](lhs); ok {
		if rn, ok := runtime.As[*runtime.Number](rhs); ok {
			return ln.Value == rn.Value, nil
		}
	}
	if ls, ok := runtime.As[*runtime.String](lhs); ok {
		if rs, ok := runtime.As[*runtime.String](rhs); ok {
			return ls.Value == rs.Value, nil
		}
	}
	if lb, ok := runtime.As[*runtime.Bool](lhs); ok {
		if rb, ok := runtime.As[*runtime.Bool](rhs); ok {
			return lb.Value == rb.Value, nil
		}
	}

	if inst, ok := runtime.As[*runtime.ClassInstance](lhs); ok {
		if inst.Class().HasMethod(runtime.EqMethod, 1) {
			return e.callBoolMethod(inst, runtime.EqMethod, rhs, tok)
		}
	}

	return false, e.newError(runtime.Uncomparable, tok, "cannot compare objects for equality")
}

// less implements <. Only the left side is checked for emptiness; a
// right-hand empty falls through the overload paths and errors there
// unless a __lt__ overload accepts it.
func (e *Evaluator) less(lhs, rhs runtime.Holder, tok token.Token) (bool, error) {
	if lhs.IsEmpty() {
		return false, e.newError(runtime.Uncomparable, tok, "cannot compare objects for less")
	}

	if ln, ok := runtime.As[*runtime.Number](lhs); ok {
		if rn, ok := runtime.As[*runtime.Number](rhs); ok {
			return ln.Value < rn.Value, nil
		}
	}
	if ls, ok := runtime.As[*runtime.String](lhs); ok {
		if rs, ok := runtime.As[*runtime.String](rhs); ok {
			return ls.Value < rs.Value, nil
		}
	}
	if lb, ok := runtime.As[*runtime.Bool](lhs); ok {
		if rb, ok := runtime.As[*runtime.Bool](rhs); ok {
			return !lb.Value && rb.Value, nil
		}
	}

	if inst, ok := runtime.As[*runtime.ClassInstance](lhs); ok {
		if inst.Class().HasMethod(runtime.LtMethod, 1) {
			return e.callBoolMethod(inst, runtime.LtMethod, rhs, tok)
		}
	}

	return false, e.newError(runtime.Uncomparable, tok, "cannot compare objects for less")
}

// callBoolMethod invokes an __eq__/__lt__ overload and extracts the
// Bool payload; any other result is an error.
func (e *Evaluator) callBoolMethod(inst *runtime.ClassInstance, method string, arg runtime.Holder, tok token.Token) (bool, error) {
	result, err := e.callMethod(inst, method, []runtime.Holder{arg}, tok)
	if err != nil {
		return false, err
	}

	b, ok := runtime.As[*runtime.Bool](result)
	if !ok {
		return false, e.newError(runtime.Uncomparable, tok,
			"%s.%s must return Bool", inst.Class().Name(), method)
	}
	return b.Value, nil
}
