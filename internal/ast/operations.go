package ast

import (
	"github.com/mythonlang/mython/internal/token"
)

// Print writes each argument's printed form to the context's output
// sink, space-separated, newline-terminated. Empty holders print None.
type Print struct {
	Token token.Token
	Args  []Statement
}

func (p *Print) statementNode()       {}
func (p *Print) TokenLiteral() string { return p.Token.Lexeme }
func (p *Print) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

// Stringify renders its argument through the print path into a private
// sink and yields the text as a String. Empty yields "None".
type Stringify struct {
	Token token.Token
	Arg   Statement
}

func (s *Stringify) statementNode()       {}
func (s *Stringify) TokenLiteral() string { return s.Token.Lexeme }
func (s *Stringify) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

// Add is numeric addition, string concatenation, or an __add__ overload
// on a left-hand instance.
type Add struct {
	Token token.Token
	Lhs   Statement
	Rhs   Statement
}

func (a *Add) statementNode()       {}
func (a *Add) TokenLiteral() string { return a.Token.Lexeme }
func (a *Add) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// Sub, Mult and Div apply to numbers only.
type Sub struct {
	Token token.Token
	Lhs   Statement
	Rhs   Statement
}

func (s *Sub) statementNode()       {}
func (s *Sub) TokenLiteral() string { return s.Token.Lexeme }
func (s *Sub) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

type Mult struct {
	Token token.Token
	Lhs   Statement
	Rhs   Statement
}

func (m *Mult) statementNode()       {}
func (m *Mult) TokenLiteral() string { return m.Token.Lexeme }
func (m *Mult) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}

type Div struct {
	Token token.Token
	Lhs   Statement
	Rhs   Statement
}

func (d *Div) statementNode()       {}
func (d *Div) TokenLiteral() string { return d.Token.Lexeme }
func (d *Div) GetToken() token.Token {
	if d == nil {
		return token.Token{}
	}
	return d.Token
}

// Or and And evaluate both operands and yield a Bool of their combined
// truthiness; there is no short-circuit in Mython.
type Or struct {
	Token token.Token
	Lhs   Statement
	Rhs   Statement
}

func (o *Or) statementNode()       {}
func (o *Or) TokenLiteral() string { return o.Token.Lexeme }
func (o *Or) GetToken() token.Token {
	if o == nil {
		return token.Token{}
	}
	return o.Token
}

type And struct {
	Token token.Token
	Lhs   Statement
	Rhs   Statement
}

func (a *And) statementNode()       {}
func (a *And) TokenLiteral() string { return a.Token.Lexeme }
func (a *And) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

type Not struct {
	Token token.Token
	Arg   Statement
}

func (n *Not) statementNode()       {}
func (n *Not) TokenLiteral() string { return n.Token.Lexeme }
func (n *Not) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

// Comparison applies one of the six comparison operators; Op is the
// operator's token type and dispatch lives in the evaluator.
type Comparison struct {
	Token token.Token
	Op    token.TokenType
	Lhs   Statement
	Rhs   Statement
}

func (c *Comparison) statementNode()       {}
func (c *Comparison) TokenLiteral() string { return c.Token.Lexeme }
func (c *Comparison) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}
