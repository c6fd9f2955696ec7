package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/mythonlang/mython/internal/diagnostics"
	"github.com/mythonlang/mython/internal/token"
)

// Lexer turns Mython source into a token stream. Line structure is
// significant: it emits NEWLINE at the end of every logical line and
// INDENT/DEDENT pairs as the indentation level changes, the way the
// parser's block grammar expects. Newlines inside parentheses are
// insignificant.
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           rune // current char under examination
	line         int  // current line number
	column       int  // current column number

	indents     []int // indentation stack, leftmost column is 0
	pending     []token.Token
	atLineStart bool
	hadContent  bool // current logical line produced a token
	parenDepth  int
	eofPrepared bool

	errors []*diagnostics.DiagnosticError
}

func New(input string) *Lexer {
	l := &Lexer{
		input:       input,
		line:        1,
		column:      0,
		indents:     []int{0},
		atLineStart: true,
	}
	l.readChar()
	return l
}

// Errors returns the diagnostics collected while scanning.
func (l *Lexer) Errors() []*diagnostics.DiagnosticError {
	return l.errors
}

// Tokenize scans the whole input, EOF token included.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, w := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += w
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) NextToken() token.Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	if l.atLineStart {
		l.scanIndentation()
		if len(l.pending) > 0 {
			tok := l.pending[0]
			l.pending = l.pending[1:]
			return tok
		}
	}

	l.skipSpaces()

	if l.ch == '#' {
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
	}

	var tok token.Token

	switch l.ch {
	case 0:
		return l.finish()
	case '\n':
		tok = token.Token{Type: token.NEWLINE, Lexeme: "\\n", Line: l.line, Column: l.column}
		l.readChar()
		l.atLineStart = true
		l.hadContent = false
		return tok
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.EQ, Lexeme: "==", Literal: "==", Line: l.line, Column: l.column}
		} else {
			tok = l.newToken(token.ASSIGN)
		}
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.NOT_EQ, Lexeme: "!=", Literal: "!=", Line: l.line, Column: l.column}
		} else {
			l.addError(diagnostics.ErrL001, fmt.Sprintf("unexpected character %q", l.ch))
			tok = l.newToken(token.ILLEGAL)
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.LT_EQ, Lexeme: "<=", Literal: "<=", Line: l.line, Column: l.column}
		} else {
			tok = l.newToken(token.LT)
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = token.Token{Type: token.GT_EQ, Lexeme: ">=", Literal: ">=", Line: l.line, Column: l.column}
		} else {
			tok = l.newToken(token.GT)
		}
	case '+':
		tok = l.newToken(token.PLUS)
	case '-':
		tok = l.newToken(token.MINUS)
	case '*':
		tok = l.newToken(token.ASTERISK)
	case '/':
		tok = l.newToken(token.SLASH)
	case '.':
		tok = l.newToken(token.DOT)
	case ',':
		tok = l.newToken(token.COMMA)
	case ':':
		tok = l.newToken(token.COLON)
	case '(':
		l.parenDepth++
		tok = l.newToken(token.LPAREN)
	case ')':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		tok = l.newToken(token.RPAREN)
	case '\'', '"':
		return l.readString(l.ch)
	default:
		if isIdentStart(l.ch) {
			lexeme := l.readIdentifier()
			l.hadContent = true
			return token.Token{
				Type:    token.LookupIdent(lexeme),
				Lexeme:  lexeme,
				Literal: lexeme,
				Line:    l.line,
				Column:  l.column,
			}
		}
		if unicode.IsDigit(l.ch) {
			lexeme := l.readNumber()
			l.hadContent = true
			return token.Token{
				Type:    token.NUMBER,
				Lexeme:  lexeme,
				Literal: lexeme,
				Line:    l.line,
				Column:  l.column,
			}
		}
		l.addError(diagnostics.ErrL001, fmt.Sprintf("unexpected character %q", l.ch))
		tok = l.newToken(token.ILLEGAL)
	}

	l.readChar()
	l.hadContent = true
	return tok
}

// scanIndentation runs at the start of a logical line. Blank and
// comment-only lines produce no tokens at all; otherwise the measured
// column is compared against the indentation stack and INDENT/DEDENT
// tokens are queued.
func (l *Lexer) scanIndentation() {
	var width int
	for {
		width = 0
		for l.ch == ' ' || l.ch == '\t' {
			if l.ch == '\t' {
				l.addError(diagnostics.ErrL003, "tab character in indentation")
			}
			width++
			l.readChar()
		}
		if l.ch == '\n' {
			l.readChar()
			continue
		}
		if l.ch == '#' {
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
			continue
		}
		break
	}

	l.atLineStart = false
	if l.ch == 0 {
		return
	}

	current := l.indents[len(l.indents)-1]
	switch {
	case width > current:
		l.indents = append(l.indents, width)
		l.pending = append(l.pending, token.Token{Type: token.INDENT, Lexeme: "INDENT", Line: l.line, Column: 1})
	case width < current:
		for width < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, token.Token{Type: token.DEDENT, Lexeme: "DEDENT", Line: l.line, Column: 1})
		}
		if width != l.indents[len(l.indents)-1] {
			l.addError(diagnostics.ErrL003, "unindent does not match any outer indentation level")
			l.indents[len(l.indents)-1] = width
		}
	}
}

// finish flushes the trailing NEWLINE and any open DEDENTs before EOF.
func (l *Lexer) finish() token.Token {
	if !l.eofPrepared {
		l.eofPrepared = true
		if l.hadContent {
			l.pending = append(l.pending, token.Token{Type: token.NEWLINE, Lexeme: "\\n", Line: l.line, Column: l.column})
		}
		for len(l.indents) > 1 {
			l.indents = l.indents[:len(l.indents)-1]
			l.pending = append(l.pending, token.Token{Type: token.DEDENT, Lexeme: "DEDENT", Line: l.line, Column: l.column})
		}
		l.pending = append(l.pending, token.Token{Type: token.EOF, Line: l.line, Column: l.column})
	}

	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

func (l *Lexer) readString(quote rune) token.Token {
	line, column := l.line, l.column
	var value []rune

	l.readChar() // consume opening quote
	for l.ch != quote {
		if l.ch == 0 || l.ch == '\n' {
			l.addError(diagnostics.ErrL002, "unterminated string literal")
			l.hadContent = true
			return token.Token{Type: token.ILLEGAL, Lexeme: string(value), Line: line, Column: column}
		}
		if l.ch == '\\' {
			l.readChar()
			switch l.ch {
			case 'n':
				value = append(value, '\n')
			case 't':
				value = append(value, '\t')
			case '\'', '"', '\\':
				value = append(value, l.ch)
			default:
				l.addError(diagnostics.ErrL001, fmt.Sprintf("unknown escape sequence \\%c", l.ch))
			}
			l.readChar()
			continue
		}
		value = append(value, l.ch)
		l.readChar()
	}
	l.readChar() // consume closing quote

	l.hadContent = true
	return token.Token{
		Type:    token.STRING,
		Lexeme:  string(quote) + string(value) + string(quote),
		Literal: string(value),
		Line:    line,
		Column:  column,
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) readNumber() string {
	start := l.position
	for unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || (l.ch == '\n' && l.parenDepth > 0) {
		l.readChar()
	}
}

func (l *Lexer) newToken(t token.TokenType) token.Token {
	return token.Token{Type: t, Lexeme: string(l.ch), Literal: string(l.ch), Line: l.line, Column: l.column}
}

func (l *Lexer) addError(code diagnostics.Code, message string) {
	l.errors = append(l.errors, diagnostics.NewError(code,
		token.Token{Line: l.line, Column: l.column}, message))
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}
