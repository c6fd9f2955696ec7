// Package prettyprinter renders a statement tree back to canonical
// Mython source: two-space indentation, single spaces around binary
// operators, double-quoted strings. Comments are not preserved; the
// lexer drops them before the tree exists.
package prettyprinter

import (
	"fmt"
	"strings"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/runtime"
)

const indentUnit = "  "

// Operator binding strengths, loosest first. A child is parenthesized
// when it binds looser than its parent, or equally as a right operand
// (the grammar is left-associative).
const (
	precOr = iota + 1
	precAnd
	precNot
	precCmp
	precSum
	precTerm
	precPrimary
)

type Printer struct {
	sb     strings.Builder
	indent int
}

func New() *Printer {
	return &Printer{}
}

// Print renders a whole program.
func (p *Printer) Print(root *ast.Compound) string {
	p.sb.Reset()
	p.indent = 0
	for _, stmt := range root.Statements {
		p.printStatement(stmt)
	}
	return p.sb.String()
}

func (p *Printer) line(format string, args ...interface{}) {
	p.sb.WriteString(strings.Repeat(indentUnit, p.indent))
	fmt.Fprintf(&p.sb, format, args...)
	p.sb.WriteString("\n")
}

func (p *Printer) printStatement(stmt ast.Statement) {
	switch stmt := stmt.(type) {
	case *ast.Assignment:
		p.line("%s = %s", stmt.Name, p.expr(stmt.Value, precOr))

	case *ast.FieldAssignment:
		p.line("%s.%s = %s", strings.Join(stmt.Object.DottedIDs, "."), stmt.FieldName,
			p.expr(stmt.Value, precOr))

	case *ast.Print:
		if len(stmt.Args) == 0 {
			p.line("print")
			return
		}
		args := make([]string, len(stmt.Args))
		for i, arg := range stmt.Args {
			args[i] = p.expr(arg, precOr)
		}
		p.line("print %s", strings.Join(args, ", "))

	case *ast.Return:
		if _, ok := stmt.Value.(*ast.NoneConst); ok {
			p.line("return")
			return
		}
		p.line("return %s", p.expr(stmt.Value, precOr))

	case *ast.IfElse:
		p.line("if %s:", p.expr(stmt.Condition, precOr))
		p.printSuite(stmt.Then)
		if stmt.Else != nil {
			p.line("else:")
			p.printSuite(stmt.Else)
		}

	case *ast.ClassDefinition:
		p.printClass(stmt.Class)

	case *ast.Compound:
		for _, inner := range stmt.Statements {
			p.printStatement(inner)
		}

	default:
		// Bare expression statement.
		p.line("%s", p.expr(stmt, precOr))
	}
}

func (p *Printer) printSuite(suite ast.Statement) {
	p.indent++
	p.printStatement(suite)
	p.indent--
}

func (p *Printer) printClass(class *runtime.Class) {
	if class.Parent() != nil {
		p.line("class %s(%s):", class.Name(), class.Parent().Name())
	} else {
		p.line("class %s:", class.Name())
	}

	p.indent++
	for _, method := range class.Methods() {
		params := append([]string{runtime.SelfName}, method.FormalParams...)
		p.line("def %s(%s):", method.Name, strings.Join(params, ", "))

		if body, ok := method.Body.(*ast.MethodBody); ok {
			p.printSuite(body.Body)
		}
	}
	p.indent--
}

func (p *Printer) expr(node ast.Statement, parent int) string {
	text, prec := p.exprPrec(node)
	if prec < parent {
		return "(" + text + ")"
	}
	return text
}

// exprPrec renders an expression and reports how tightly it binds.
func (p *Printer) exprPrec(node ast.Statement) (string, int) {
	switch node := node.(type) {
	case *ast.NumericConst:
		return node.Value.Inspect(), precPrimary

	case *ast.StringConst:
		return quote(node.Value.Value), precPrimary

	case *ast.BoolConst:
		return node.Value.Inspect(), precPrimary

	case *ast.NoneConst:
		return "None", precPrimary

	case *ast.VariableValue:
		return strings.Join(node.DottedIDs, "."), precPrimary

	case *ast.Stringify:
		return "str(" + p.expr(node.Arg, precOr) + ")", precPrimary

	case *ast.NewInstance:
		return node.Class.Name() + "(" + p.args(node.Args) + ")", precPrimary

	case *ast.MethodCall:
		return p.expr(node.Object, precPrimary) + "." + node.Method + "(" + p.args(node.Args) + ")", precPrimary

	case *ast.Or:
		return p.binary(node.Lhs, "or", node.Rhs, precOr), precOr

	case *ast.And:
		return p.binary(node.Lhs, "and", node.Rhs, precAnd), precAnd

	case *ast.Not:
		return "not " + p.expr(node.Arg, precNot), precNot

	case *ast.Comparison:
		return p.binary(node.Lhs, string(node.Op), node.Rhs, precCmp), precCmp

	case *ast.Add:
		return p.binary(node.Lhs, "+", node.Rhs, precSum), precSum

	case *ast.Sub:
		return p.binary(node.Lhs, "-", node.Rhs, precSum), precSum

	case *ast.Mult:
		return p.binary(node.Lhs, "*", node.Rhs, precTerm), precTerm

	case *ast.Div:
		return p.binary(node.Lhs, "/", node.Rhs, precTerm), precTerm
	}

	return "", precPrimary
}

func (p *Printer) binary(lhs ast.Statement, op string, rhs ast.Statement, prec int) string {
	// Right operands of equal strength need parens to survive a
	// reparse: a - (b - c) is not (a - b) - c.
	left := p.expr(lhs, prec)
	rightText, rightPrec := p.exprPrec(rhs)
	if rightPrec <= prec && rightPrec != precPrimary {
		rightText = "(" + rightText + ")"
	}
	return left + " " + op + " " + rightText
}

func (p *Printer) args(nodes []ast.Statement) string {
	parts := make([]string, len(nodes))
	for i, node := range nodes {
		parts[i] = p.expr(node, precOr)
	}
	return strings.Join(parts, ", ")
}

func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\n':
			sb.WriteString(`\n`)
		case '\t':
			sb.WriteString(`\t`)
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
