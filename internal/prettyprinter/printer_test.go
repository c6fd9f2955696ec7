package prettyprinter

import (
	"testing"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/lexer"
	"github.com/mythonlang/mython/internal/parser"
)

func parseSource(t *testing.T, input string) *ast.Compound {
	t.Helper()
	l := lexer.New(input)
	p := parser.New(l.Tokenize())
	root := p.ParseProgram()
	if len(l.Errors()) > 0 || len(p.Errors()) > 0 {
		t.Fatalf("front-end errors: %v %v", l.Errors(), p.Errors())
	}
	return root
}

func TestPrintCanonicalForms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"assignment normalizes spacing",
			"x=1+2*3\n",
			"x = 1 + 2 * 3\n",
		},
		{
			"strings requote",
			"s = 'it\\'s'\n",
			"s = \"it's\"\n",
		},
		{
			"print args",
			"print 1,True , None\n",
			"print 1, True, None\n",
		},
		{
			"redundant parens drop",
			"x = (1 + 2) * 3\ny = 1 + (2 * 3)\n",
			"x = (1 + 2) * 3\ny = 1 + 2 * 3\n",
		},
		{
			"right association keeps parens",
			"x = 1 - (2 - 3)\n",
			"x = 1 - (2 - 3)\n",
		},
		{
			"logic precedence",
			"x = not a and (b or c)\n",
			"x = not a and (b or c)\n",
		},
		{
			"if else",
			"if x<3:\n  print 'a'\nelse:\n  print 'b'\n",
			"if x < 3:\n  print \"a\"\nelse:\n  print \"b\"\n",
		},
		{
			"class",
			"class A:\n  def f(self,x):\n    return x+1\na = A()\nprint a.f(4)\n",
			"class A:\n  def f(self, x):\n    return x + 1\na = A()\nprint a.f(4)\n",
		},
		{
			"bare return",
			"class A:\n  def f(self):\n    return\n",
			"class A:\n  def f(self):\n    return\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New().Print(parseSource(t, tt.input))
			if got != tt.want {
				t.Errorf("formatted output:\n got: %q\nwant: %q", got, tt.want)
			}
		})
	}
}

// Formatting is idempotent: formatting formatted output is a no-op.
func TestPrintStable(t *testing.T) {
	input := "class P:\n  def g(self):\n    return 1\nclass C(P):\n  def h(self):\n    return self.g() + 2\nprint C().h()\n"

	once := New().Print(parseSource(t, input))
	twice := New().Print(parseSource(t, once))
	if once != twice {
		t.Errorf("formatting is not stable:\n first: %q\nsecond: %q", once, twice)
	}
}
