package parser

import (
	"fmt"
	"strconv"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/diagnostics"
	"github.com/mythonlang/mython/internal/token"
)

// Precedence is encoded directly in the call chain:
// or < and < not < comparison < sum < term < unary < postfix.
func (p *Parser) parseExpression() ast.Statement {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.Statement {
	lhs := p.parseAnd()
	for lhs != nil && p.curIs(token.OR) {
		tok := p.cur()
		p.advance()
		rhs := p.parseAnd()
		if rhs == nil {
			return nil
		}
		lhs = &ast.Or{Token: tok, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseAnd() ast.Statement {
	lhs := p.parseNot()
	for lhs != nil && p.curIs(token.AND) {
		tok := p.cur()
		p.advance()
		rhs := p.parseNot()
		if rhs == nil {
			return nil
		}
		lhs = &ast.And{Token: tok, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseNot() ast.Statement {
	if p.curIs(token.NOT) {
		tok := p.cur()
		p.advance()
		arg := p.parseNot()
		if arg == nil {
			return nil
		}
		return &ast.Not{Token: tok, Arg: arg}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Statement {
	lhs := p.parseSum()
	if lhs == nil {
		return nil
	}

	switch p.cur().Type {
	case token.EQ, token.NOT_EQ, token.LT, token.GT, token.LT_EQ, token.GT_EQ:
		tok := p.cur()
		p.advance()
		rhs := p.parseSum()
		if rhs == nil {
			return nil
		}
		return &ast.Comparison{Token: tok, Op: tok.Type, Lhs: lhs, Rhs: rhs}
	}
	return lhs
}

func (p *Parser) parseSum() ast.Statement {
	lhs := p.parseTerm()
	for lhs != nil && (p.curIs(token.PLUS) || p.curIs(token.MINUS)) {
		tok := p.cur()
		p.advance()
		rhs := p.parseTerm()
		if rhs == nil {
			return nil
		}
		if tok.Type == token.PLUS {
			lhs = &ast.Add{Token: tok, Lhs: lhs, Rhs: rhs}
		} else {
			lhs = &ast.Sub{Token: tok, Lhs: lhs, Rhs: rhs}
		}
	}
	return lhs
}

func (p *Parser) parseTerm() ast.Statement {
	lhs := p.parseUnary()
	for lhs != nil && (p.curIs(token.ASTERISK) || p.curIs(token.SLASH)) {
		tok := p.cur()
		p.advance()
		rhs := p.parseUnary()
		if rhs == nil {
			return nil
		}
		if tok.Type == token.ASTERISK {
			lhs = &ast.Mult{Token: tok, Lhs: lhs, Rhs: rhs}
		} else {
			lhs = &ast.Div{Token: tok, Lhs: lhs, Rhs: rhs}
		}
	}
	return lhs
}

func (p *Parser) parseUnary() ast.Statement {
	if p.curIs(token.MINUS) {
		tok := p.cur()
		p.advance()
		operand := p.parseUnary()
		if operand == nil {
			return nil
		}
		// A negated literal folds into the constant; anything else is
		// subtraction from zero.
		if num, ok := operand.(*ast.NumericConst); ok {
			return ast.NewNumericConst(tok, -num.Value.Value)
		}
		return &ast.Sub{Token: tok, Lhs: ast.NewNumericConst(tok, 0), Rhs: operand}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary followed by any number of ".name(...)"
// method calls on the computed value.
func (p *Parser) parsePostfix() ast.Statement {
	expr := p.parsePrimary()

	for expr != nil && p.curIs(token.DOT) {
		tok := p.cur()
		p.advance()
		nameTok := p.cur()
		if !p.expect(token.IDENT) {
			return nil
		}
		if !p.curIs(token.LPAREN) {
			p.addError(diagnostics.ErrP001, tok,
				"field access on a computed value is not supported; bind it to a name first")
			p.synchronize()
			return nil
		}
		args := p.parseArguments()
		expr = &ast.MethodCall{Token: tok, Object: expr, Method: nameTok.Lexeme, Args: args}
	}

	return expr
}

func (p *Parser) parsePrimary() ast.Statement {
	tok := p.cur()

	switch tok.Type {
	case token.NUMBER:
		p.advance()
		value, err := strconv.Atoi(tok.Literal)
		if err != nil {
			p.addError(diagnostics.ErrP001, tok, fmt.Sprintf("invalid number literal %q", tok.Lexeme))
			return nil
		}
		return ast.NewNumericConst(tok, value)

	case token.STRING:
		p.advance()
		return ast.NewStringConst(tok, tok.Literal)

	case token.TRUE:
		p.advance()
		return ast.NewBoolConst(tok, true)

	case token.FALSE:
		p.advance()
		return ast.NewBoolConst(tok, false)

	case token.NONE:
		p.advance()
		return &ast.NoneConst{Token: tok}

	case token.STR:
		p.advance()
		if !p.expect(token.LPAREN) {
			return nil
		}
		arg := p.parseExpression()
		if arg == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return &ast.Stringify{Token: tok, Arg: arg}

	case token.LPAREN:
		p.advance()
		expr := p.parseExpression()
		if expr == nil {
			return nil
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
		return expr

	case token.IDENT:
		return p.parseDottedChain()

	default:
		p.addError(diagnostics.ErrP001, tok, fmt.Sprintf("unexpected token %q", tok.Lexeme))
		p.synchronize()
		return nil
	}
}

// parseDottedChain parses id{.id} and decides between a variable path,
// a construction and a method call depending on a trailing call.
func (p *Parser) parseDottedChain() ast.Statement {
	tok := p.cur()
	ids := []string{tok.Lexeme}
	p.advance()

	for p.curIs(token.DOT) {
		// A call closes the chain; parsePostfix handles further calls.
		if p.peek().Type == token.IDENT && p.peekAfterIdentIs(token.LPAREN) {
			break
		}
		p.advance()
		segTok := p.cur()
		if !p.expect(token.IDENT) {
			return nil
		}
		ids = append(ids, segTok.Lexeme)
	}

	if p.curIs(token.DOT) {
		// Trailing ".name(" — a method call on the dotted prefix.
		p.advance()
		nameTok := p.cur()
		if !p.expect(token.IDENT) {
			return nil
		}
		args := p.parseArguments()
		receiver := &ast.VariableValue{Token: tok, DottedIDs: ids}
		return &ast.MethodCall{Token: nameTok, Object: receiver, Method: nameTok.Lexeme, Args: args}
	}

	if p.curIs(token.LPAREN) {
		if len(ids) > 1 {
			p.addError(diagnostics.ErrP001, tok, "malformed call expression")
			p.synchronize()
			return nil
		}
		class, ok := p.classes[ids[0]]
		if !ok {
			p.addError(diagnostics.ErrP002, tok,
				fmt.Sprintf("%q is not a declared class", ids[0]))
			p.synchronize()
			return nil
		}
		args := p.parseArguments()
		return &ast.NewInstance{Token: tok, Class: class, Args: args}
	}

	return &ast.VariableValue{Token: tok, DottedIDs: ids}
}

// peekAfterIdentIs reports whether the token after the upcoming
// identifier has the given type. Used to spot ".name(" call tails.
func (p *Parser) peekAfterIdentIs(t token.TokenType) bool {
	if p.pos+2 >= len(p.tokens) {
		return false
	}
	return p.tokens[p.pos+2].Type == t
}

func (p *Parser) parseArguments() []ast.Statement {
	if !p.expect(token.LPAREN) {
		return nil
	}

	var args []ast.Statement
	if p.curIs(token.RPAREN) {
		p.advance()
		return args
	}

	for {
		arg := p.parseExpression()
		if arg == nil {
			return nil
		}
		args = append(args, arg)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expect(token.RPAREN)
	return args
}
