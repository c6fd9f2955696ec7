package parser

import (
	"fmt"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/diagnostics"
	"github.com/mythonlang/mython/internal/runtime"
	"github.com/mythonlang/mython/internal/token"
)

// Parser builds the statement tree from a token stream. Class
// descriptors are built at parse time and tracked in a table so that a
// construction expression can reference its descriptor directly; the
// ClassDefinition node binds the descriptor into the environment when
// evaluated.
type Parser struct {
	tokens []token.Token
	pos    int

	classes map[string]*runtime.Class
	errors  []*diagnostics.DiagnosticError
}

func New(tokens []token.Token) *Parser {
	return &Parser{
		tokens:  tokens,
		classes: make(map[string]*runtime.Class),
	}
}

// SetClassTable seeds the parser with previously declared classes. The
// REPL uses this to keep class names resolvable across inputs.
func (p *Parser) SetClassTable(classes map[string]*runtime.Class) {
	if classes != nil {
		p.classes = classes
	}
}

// ClassTable exposes the declared classes, for callers that persist
// them between parses.
func (p *Parser) ClassTable() map[string]*runtime.Class {
	return p.classes
}

func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

// ParseProgram consumes the whole stream and returns the root compound.
func (p *Parser) ParseProgram() *ast.Compound {
	root := &ast.Compound{Token: p.cur()}

	for !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			root.AddStatement(stmt)
		}
	}

	return root
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur().Type {
	case token.CLASS:
		return p.parseClassDefinition()
	case token.IF:
		return p.parseIfElse()
	case token.RETURN:
		return p.parseReturn()
	case token.PRINT:
		return p.parsePrint()
	default:
		return p.parseSimpleStatement()
	}
}

// parseSimpleStatement handles assignments, field assignments and bare
// expression statements, all of which start with an expression.
func (p *Parser) parseSimpleStatement() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	if !p.curIs(token.ASSIGN) {
		p.expectNewline()
		return expr
	}

	p.advance() // consume '='
	value := p.parseExpression()
	if value == nil {
		return nil
	}
	p.expectNewline()

	target, ok := expr.(*ast.VariableValue)
	if !ok {
		p.addError(diagnostics.ErrP001, tok, "cannot assign to this expression")
		return nil
	}

	if len(target.DottedIDs) == 1 {
		return &ast.Assignment{Token: tok, Name: target.DottedIDs[0], Value: value}
	}

	object := &ast.VariableValue{
		Token:     target.Token,
		DottedIDs: target.DottedIDs[:len(target.DottedIDs)-1],
	}
	return &ast.FieldAssignment{
		Token:     tok,
		Object:    object,
		FieldName: target.DottedIDs[len(target.DottedIDs)-1],
		Value:     value,
	}
}

func (p *Parser) parseReturn() ast.Statement {
	tok := p.cur()
	p.advance()

	if p.curIs(token.NEWLINE) {
		p.advance()
		return &ast.Return{Token: tok, Value: &ast.NoneConst{Token: tok}}
	}

	value := p.parseExpression()
	if value == nil {
		return nil
	}
	p.expectNewline()
	return &ast.Return{Token: tok, Value: value}
}

func (p *Parser) parsePrint() ast.Statement {
	tok := p.cur()
	p.advance()

	stmt := &ast.Print{Token: tok}
	if p.curIs(token.NEWLINE) {
		p.advance()
		return stmt
	}

	for {
		arg := p.parseExpression()
		if arg == nil {
			return nil
		}
		stmt.Args = append(stmt.Args, arg)
		if !p.curIs(token.COMMA) {
			break
		}
		p.advance()
	}
	p.expectNewline()
	return stmt
}

func (p *Parser) parseIfElse() ast.Statement {
	tok := p.cur()
	p.advance()

	cond := p.parseExpression()
	if cond == nil {
		return nil
	}

	then := p.parseSuite()
	if then == nil {
		return nil
	}

	stmt := &ast.IfElse{Token: tok, Condition: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.advance()
		stmt.Else = p.parseSuite()
		if stmt.Else == nil {
			return nil
		}
	}
	return stmt
}

// parseSuite parses ":" NEWLINE INDENT statements DEDENT.
func (p *Parser) parseSuite() ast.Statement {
	if !p.expect(token.COLON) || !p.expect(token.NEWLINE) || !p.expect(token.INDENT) {
		return nil
	}

	suite := &ast.Compound{Token: p.cur()}
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			suite.AddStatement(stmt)
		}
	}
	p.expect(token.DEDENT)
	return suite
}

func (p *Parser) parseClassDefinition() ast.Statement {
	tok := p.cur()
	p.advance()

	nameTok := p.cur()
	if !p.expect(token.IDENT) {
		return nil
	}
	name := nameTok.Lexeme

	var parent *runtime.Class
	if p.curIs(token.LPAREN) {
		p.advance()
		parentTok := p.cur()
		if !p.expect(token.IDENT) {
			return nil
		}
		parent = p.classes[parentTok.Lexeme]
		if parent == nil {
			p.addError(diagnostics.ErrP002, parentTok,
				fmt.Sprintf("unknown base class %q", parentTok.Lexeme))
		}
		if !p.expect(token.RPAREN) {
			return nil
		}
	}

	if !p.expect(token.COLON) || !p.expect(token.NEWLINE) || !p.expect(token.INDENT) {
		return nil
	}

	// Declared before the bodies are read so methods can construct
	// instances of their own class.
	class := runtime.DeclareClass(name, parent)
	p.classes[name] = class

	var methods []runtime.Method
	for !p.curIs(token.DEDENT) && !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		if method, ok := p.parseMethod(); ok {
			methods = append(methods, method)
		}
	}
	p.expect(token.DEDENT)

	class.Define(methods)
	return &ast.ClassDefinition{Token: tok, Class: class}
}

// parseMethod parses "def name(self, params...):" suite and wraps the
// body in a MethodBody so return unwinds stop at the call boundary.
func (p *Parser) parseMethod() (runtime.Method, bool) {
	defTok := p.cur()
	if !p.expect(token.DEF) {
		return runtime.Method{}, false
	}

	nameTok := p.cur()
	if !p.expect(token.IDENT) {
		return runtime.Method{}, false
	}

	if !p.expect(token.LPAREN) {
		return runtime.Method{}, false
	}

	selfTok := p.cur()
	if !p.expect(token.IDENT) || selfTok.Lexeme != runtime.SelfName {
		p.addError(diagnostics.ErrP003, selfTok,
			fmt.Sprintf("first parameter of method %q must be self", nameTok.Lexeme))
		p.synchronize()
		return runtime.Method{}, false
	}

	var params []string
	for p.curIs(token.COMMA) {
		p.advance()
		paramTok := p.cur()
		if !p.expect(token.IDENT) {
			return runtime.Method{}, false
		}
		params = append(params, paramTok.Lexeme)
	}

	if !p.expect(token.RPAREN) {
		return runtime.Method{}, false
	}

	body := p.parseSuite()
	if body == nil {
		return runtime.Method{}, false
	}

	return runtime.Method{
		Name:         nameTok.Lexeme,
		FormalParams: params,
		Body:         &ast.MethodBody{Token: defTok, Body: body},
	}, true
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) curIs(t token.TokenType) bool {
	return p.cur().Type == t
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.pos++
	}
}

// expect consumes the current token when it matches, otherwise records
// a diagnostic and resynchronizes at the next statement boundary.
func (p *Parser) expect(t token.TokenType) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.addError(diagnostics.ErrP001, p.cur(),
		fmt.Sprintf("expected %s, found %q", t, p.cur().Lexeme))
	p.synchronize()
	return false
}

func (p *Parser) expectNewline() {
	if p.curIs(token.NEWLINE) {
		p.advance()
		return
	}
	if p.curIs(token.EOF) || p.curIs(token.DEDENT) {
		return
	}
	p.addError(diagnostics.ErrP001, p.cur(),
		fmt.Sprintf("expected end of line, found %q", p.cur().Lexeme))
	p.synchronize()
}

// synchronize skips ahead to the next statement boundary after an
// error. It always consumes at least one token so error recovery makes
// progress even on a stray structural token.
func (p *Parser) synchronize() {
	if p.curIs(token.EOF) {
		return
	}
	p.advance()
	for !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			return
		}
		if p.curIs(token.DEDENT) {
			return
		}
		p.advance()
	}
}

func (p *Parser) addError(code diagnostics.Code, tok token.Token, message string) {
	p.errors = append(p.errors, diagnostics.NewError(code, tok, message))
}
