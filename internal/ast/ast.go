package ast

import (
	"github.com/mythonlang/mython/internal/runtime"
	"github.com/mythonlang/mython/internal/token"
)

// Statement is the node interface of the Mython tree. The statement and
// expression forms share it: every node evaluates to a holder, and the
// evaluator is a closed switch over the implementations in this package.
type Statement interface {
	statementNode()
	TokenLiteral() string
	GetToken() token.Token
}

// NumericConst is an integer literal. The node owns its runtime value;
// evaluation returns a sharing holder over it, so the value's lifetime
// is the tree's.
type NumericConst struct {
	Token token.Token
	Value *runtime.Number
}

func NewNumericConst(tok token.Token, value int) *NumericConst {
	return &NumericConst{Token: tok, Value: &runtime.Number{Value: value}}
}

func (nc *NumericConst) statementNode()       {}
func (nc *NumericConst) TokenLiteral() string { return nc.Token.Lexeme }
func (nc *NumericConst) GetToken() token.Token {
	if nc == nil {
		return token.Token{}
	}
	return nc.Token
}

// StringConst is a string literal.
type StringConst struct {
	Token token.Token
	Value *runtime.String
}

func NewStringConst(tok token.Token, value string) *StringConst {
	return &StringConst{Token: tok, Value: &runtime.String{Value: value}}
}

func (sc *StringConst) statementNode()       {}
func (sc *StringConst) TokenLiteral() string { return sc.Token.Lexeme }
func (sc *StringConst) GetToken() token.Token {
	if sc == nil {
		return token.Token{}
	}
	return sc.Token
}

// BoolConst is True or False.
type BoolConst struct {
	Token token.Token
	Value *runtime.Bool
}

func NewBoolConst(tok token.Token, value bool) *BoolConst {
	return &BoolConst{Token: tok, Value: &runtime.Bool{Value: value}}
}

func (bc *BoolConst) statementNode()       {}
func (bc *BoolConst) TokenLiteral() string { return bc.Token.Lexeme }
func (bc *BoolConst) GetToken() token.Token {
	if bc == nil {
		return token.Token{}
	}
	return bc.Token
}

// NoneConst evaluates to the empty holder.
type NoneConst struct {
	Token token.Token
}

func (nc *NoneConst) statementNode()       {}
func (nc *NoneConst) TokenLiteral() string { return nc.Token.Lexeme }
func (nc *NoneConst) GetToken() token.Token {
	if nc == nil {
		return token.Token{}
	}
	return nc.Token
}

// VariableValue resolves a dotted path id1.id2...idN: the first segment
// in the current environment, every further segment as a field of the
// instance reached so far.
type VariableValue struct {
	Token     token.Token
	DottedIDs []string
}

func NewVariableValue(tok token.Token, name string) *VariableValue {
	return &VariableValue{Token: tok, DottedIDs: []string{name}}
}

func (vv *VariableValue) statementNode()       {}
func (vv *VariableValue) TokenLiteral() string { return vv.Token.Lexeme }
func (vv *VariableValue) GetToken() token.Token {
	if vv == nil {
		return token.Token{}
	}
	return vv.Token
}

// Assignment binds name in the current environment.
type Assignment struct {
	Token token.Token
	Name  string
	Value Statement
}

func (a *Assignment) statementNode()       {}
func (a *Assignment) TokenLiteral() string { return a.Token.Lexeme }
func (a *Assignment) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// FieldAssignment writes a field of the instance named by Object.
type FieldAssignment struct {
	Token     token.Token
	Object    *VariableValue
	FieldName string
	Value     Statement
}

func (fa *FieldAssignment) statementNode()       {}
func (fa *FieldAssignment) TokenLiteral() string { return fa.Token.Lexeme }
func (fa *FieldAssignment) GetToken() token.Token {
	if fa == nil {
		return token.Token{}
	}
	return fa.Token
}

// NewInstance constructs a fresh instance of Class, invoking
// __init__ when the class defines it with matching arity.
type NewInstance struct {
	Token token.Token
	Class *runtime.Class
	Args  []Statement
}

func (ni *NewInstance) statementNode()       {}
func (ni *NewInstance) TokenLiteral() string { return ni.Token.Lexeme }
func (ni *NewInstance) GetToken() token.Token {
	if ni == nil {
		return token.Token{}
	}
	return ni.Token
}

// MethodCall invokes Method on the instance Object evaluates to.
type MethodCall struct {
	Token  token.Token
	Object Statement
	Method string
	Args   []Statement
}

func (mc *MethodCall) statementNode()       {}
func (mc *MethodCall) TokenLiteral() string { return mc.Token.Lexeme }
func (mc *MethodCall) GetToken() token.Token {
	if mc == nil {
		return token.Token{}
	}
	return mc.Token
}

// Compound evaluates its statements in textual order and yields empty.
type Compound struct {
	Token      token.Token
	Statements []Statement
}

func (c *Compound) AddStatement(stmt Statement) {
	c.Statements = append(c.Statements, stmt)
}

func (c *Compound) statementNode()       {}
func (c *Compound) TokenLiteral() string { return c.Token.Lexeme }
func (c *Compound) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// Return evaluates its expression and unwinds to the nearest MethodBody.
type Return struct {
	Token token.Token
	Value Statement
}

func (r *Return) statementNode()       {}
func (r *Return) TokenLiteral() string { return r.Token.Lexeme }
func (r *Return) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Token
}

// MethodBody wraps every method's statements. It is the only node that
// catches the return unwind; a body that completes normally yields empty.
type MethodBody struct {
	Token token.Token
	Body  Statement
}

func (mb *MethodBody) statementNode()       {}
func (mb *MethodBody) TokenLiteral() string { return mb.Token.Lexeme }
func (mb *MethodBody) GetToken() token.Token {
	if mb == nil {
		return token.Token{}
	}
	return mb.Token
}

// ClassDefinition binds the class descriptor into the enclosing
// environment under the class's name.
type ClassDefinition struct {
	Token token.Token
	Class *runtime.Class
}

func (cd *ClassDefinition) statementNode()       {}
func (cd *ClassDefinition) TokenLiteral() string { return cd.Token.Lexeme }
func (cd *ClassDefinition) GetToken() token.Token {
	if cd == nil {
		return token.Token{}
	}
	return cd.Token
}

// IfElse evaluates Then or Else depending on the condition's truthiness
// and propagates the branch's result, so a return inside either branch
// unwinds through it. Else may be nil.
type IfElse struct {
	Token     token.Token
	Condition Statement
	Then      Statement
	Else      Statement
}

func (ie *IfElse) statementNode()       {}
func (ie *IfElse) TokenLiteral() string { return ie.Token.Lexeme }
func (ie *IfElse) GetToken() token.Token {
	if ie == nil {
		return token.Token{}
	}
	return ie.Token
}
