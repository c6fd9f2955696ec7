package parser

import (
	"testing"

	"github.com/mythonlang/mython/internal/lexer"
)

// FuzzParseProgram checks that the parser neither panics nor loops on
// arbitrary input; malformed programs must come back as diagnostics.
func FuzzParseProgram(f *testing.F) {
	f.Add("x = 1\n")
	f.Add("class A:\n  def f(self, x):\n    return x + 1\nprint A().f(4)\n")
	f.Add("if x:\n  print 1\nelse:\n  print 2\n")
	f.Add("x = = 1\n")
	f.Add("class (:\n")
	f.Add("return return\n")
	f.Add("print 1 +\n")

	f.Fuzz(func(t *testing.T, input string) {
		l := lexer.New(input)
		p := New(l.Tokenize())
		root := p.ParseProgram()
		if root == nil {
			t.Fatal("ParseProgram returned nil root")
		}
	})
}
