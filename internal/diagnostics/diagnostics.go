// Package diagnostics carries coded errors from every pipeline stage so
// the driver can report lex, parse and runtime failures uniformly.
package diagnostics

import (
	"fmt"

	"github.com/mythonlang/mython/internal/token"
)

type Code string

const (
	// Lexer
	ErrL001 Code = "L001" // illegal character
	ErrL002 Code = "L002" // unterminated string literal
	ErrL003 Code = "L003" // inconsistent indentation

	// Parser
	ErrP001 Code = "P001" // unexpected token
	ErrP002 Code = "P002" // unknown name in call position
	ErrP003 Code = "P003" // malformed method signature

	// Static analysis
	ErrS001 Code = "S001" // suspicious class structure

	// Runtime
	ErrR001 Code = "R001" // runtime error
)

// DiagnosticError is a positioned, coded error. File is filled in by
// PipelineContext.AddError when a stage adds the diagnostic, unless it
// is already set.
type DiagnosticError struct {
	Code    Code
	Token   token.Token
	Message string
	File    string
}

func NewError(code Code, tok token.Token, message string) *DiagnosticError {
	return &DiagnosticError{Code: code, Token: tok, Message: message}
}

func (e *DiagnosticError) Error() string {
	file := e.File
	if file == "" {
		file = "<input>"
	}
	if e.Token.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", file, e.Token.Line, e.Token.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", file, e.Code, e.Message)
}
