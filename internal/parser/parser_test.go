package parser

import (
	"testing"

	"github.com/mythonlang/mython/internal/ast"
	"github.com/mythonlang/mython/internal/diagnostics"
	"github.com/mythonlang/mython/internal/lexer"
)

func parseSource(t *testing.T, input string) (*ast.Compound, *Parser) {
	t.Helper()
	l := lexer.New(input)
	toks := l.Tokenize()
	if len(l.Errors()) > 0 {
		t.Fatalf("lex errors: %v", l.Errors())
	}
	p := New(toks)
	root := p.ParseProgram()
	return root, p
}

func parseOK(t *testing.T, input string) *ast.Compound {
	t.Helper()
	root, p := parseSource(t, input)
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}
	return root
}

func parseFail(t *testing.T, input string, code diagnostics.Code) {
	t.Helper()
	_, p := parseSource(t, input)
	errs := p.Errors()
	if len(errs) == 0 {
		t.Fatalf("expected parse error %s, got none", code)
	}
	if errs[0].Code != code {
		t.Fatalf("expected %s, got %v", code, errs[0])
	}
}

func TestParseAssignment(t *testing.T) {
	root := parseOK(t, "x = 1 + 2 * 3\n")
	if len(root.Statements) != 1 {
		t.Fatalf("statements = %d", len(root.Statements))
	}

	assign, ok := root.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("statement = %T", root.Statements[0])
	}
	if assign.Name != "x" {
		t.Errorf("name = %q", assign.Name)
	}

	// Precedence: 1 + (2 * 3).
	add, ok := assign.Value.(*ast.Add)
	if !ok {
		t.Fatalf("value = %T", assign.Value)
	}
	if _, ok := add.Rhs.(*ast.Mult); !ok {
		t.Errorf("rhs = %T, want Mult", add.Rhs)
	}
}

func TestParsePrint(t *testing.T) {
	root := parseOK(t, "print 1, \"two\", x\nprint\n")

	p0 := root.Statements[0].(*ast.Print)
	if len(p0.Args) != 3 {
		t.Errorf("args = %d", len(p0.Args))
	}
	p1 := root.Statements[1].(*ast.Print)
	if len(p1.Args) != 0 {
		t.Errorf("bare print args = %d", len(p1.Args))
	}
}

func TestParseStringify(t *testing.T) {
	root := parseOK(t, "s = str(x + 1)\n")
	assign := root.Statements[0].(*ast.Assignment)
	if _, ok := assign.Value.(*ast.Stringify); !ok {
		t.Errorf("value = %T", assign.Value)
	}
}

func TestParseDottedPathsAndCalls(t *testing.T) {
	root := parseOK(t, "class A:\n  def f(self):\n    return 1\na = A()\nx = a.b.c\ny = a.f()\nz = a.b.f(1, 2)\n")

	if _, ok := root.Statements[1].(*ast.Assignment).Value.(*ast.NewInstance); !ok {
		t.Errorf("A() = %T", root.Statements[1].(*ast.Assignment).Value)
	}

	path := root.Statements[2].(*ast.Assignment).Value.(*ast.VariableValue)
	if len(path.DottedIDs) != 3 || path.DottedIDs[2] != "c" {
		t.Errorf("path = %v", path.DottedIDs)
	}

	mc := root.Statements[3].(*ast.Assignment).Value.(*ast.MethodCall)
	if mc.Method != "f" {
		t.Errorf("method = %q", mc.Method)
	}
	recv := mc.Object.(*ast.VariableValue)
	if len(recv.DottedIDs) != 1 || recv.DottedIDs[0] != "a" {
		t.Errorf("receiver = %v", recv.DottedIDs)
	}

	mc = root.Statements[4].(*ast.Assignment).Value.(*ast.MethodCall)
	if mc.Method != "f" || len(mc.Args) != 2 {
		t.Errorf("call = %q/%d", mc.Method, len(mc.Args))
	}
	recv = mc.Object.(*ast.VariableValue)
	if len(recv.DottedIDs) != 2 {
		t.Errorf("receiver = %v", recv.DottedIDs)
	}
}

func TestParseChainedCalls(t *testing.T) {
	root := parseOK(t, "class C:\n  def h(self):\n    return 3\nprint C().h()\n")

	pr := root.Statements[1].(*ast.Print)
	mc := pr.Args[0].(*ast.MethodCall)
	if mc.Method != "h" {
		t.Errorf("method = %q", mc.Method)
	}
	if _, ok := mc.Object.(*ast.NewInstance); !ok {
		t.Errorf("receiver = %T", mc.Object)
	}
}

func TestParseFieldAssignment(t *testing.T) {
	root := parseOK(t, "self.v = 3\n")
	fa, ok := root.Statements[0].(*ast.FieldAssignment)
	if !ok {
		t.Fatalf("statement = %T", root.Statements[0])
	}
	if fa.FieldName != "v" || fa.Object.DottedIDs[0] != "self" {
		t.Errorf("field assignment = %v.%s", fa.Object.DottedIDs, fa.FieldName)
	}
}

func TestParseClassDefinition(t *testing.T) {
	input := "class Base:\n  def f(self, x):\n    return x\nclass Derived(Base):\n  def g(self):\n    return 2\n"
	root, p := parseSource(t, input)
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}

	base := root.Statements[0].(*ast.ClassDefinition).Class
	if base.Name() != "Base" || !base.HasMethod("f", 1) {
		t.Errorf("base = %s", base.Name())
	}

	derived := root.Statements[1].(*ast.ClassDefinition).Class
	if derived.Parent() != base {
		t.Error("derived must link to base descriptor")
	}
	if !derived.HasMethod("f", 1) || !derived.HasMethod("g", 0) {
		t.Error("derived must resolve both methods")
	}

	if p.ClassTable()["Derived"] != derived {
		t.Error("class table must track declarations")
	}
}

func TestParseIfElse(t *testing.T) {
	input := "if x < 3:\n  print \"small\"\nelse:\n  print \"big\"\n"
	root := parseOK(t, input)

	ie := root.Statements[0].(*ast.IfElse)
	if ie.Else == nil {
		t.Fatal("else branch lost")
	}
	if _, ok := ie.Condition.(*ast.Comparison); !ok {
		t.Errorf("condition = %T", ie.Condition)
	}
}

func TestParseLogicAndUnary(t *testing.T) {
	root := parseOK(t, "x = not a and b or c\ny = -5\nz = -n\n")

	// Precedence: ((not a) and b) or c.
	or, ok := root.Statements[0].(*ast.Assignment).Value.(*ast.Or)
	if !ok {
		t.Fatalf("value = %T", root.Statements[0].(*ast.Assignment).Value)
	}
	and, ok := or.Lhs.(*ast.And)
	if !ok {
		t.Fatalf("or.lhs = %T", or.Lhs)
	}
	if _, ok := and.Lhs.(*ast.Not); !ok {
		t.Errorf("and.lhs = %T", and.Lhs)
	}

	// A negated literal folds.
	y := root.Statements[1].(*ast.Assignment).Value.(*ast.NumericConst)
	if y.Value.Value != -5 {
		t.Errorf("-5 = %d", y.Value.Value)
	}

	// Negating a name subtracts from zero.
	if _, ok := root.Statements[2].(*ast.Assignment).Value.(*ast.Sub); !ok {
		t.Errorf("-n = %T", root.Statements[2].(*ast.Assignment).Value)
	}
}

func TestParseReturnWithoutValue(t *testing.T) {
	root := parseOK(t, "class A:\n  def f(self):\n    return\n")
	class := root.Statements[0].(*ast.ClassDefinition).Class
	if !class.HasMethod("f", 0) {
		t.Fatal("method lost")
	}
}

func TestUnknownClassInCallPosition(t *testing.T) {
	parseFail(t, "x = Missing()\n", diagnostics.ErrP002)
}

func TestUnknownBaseClass(t *testing.T) {
	parseFail(t, "class A(Missing):\n  def f(self):\n    return 1\n", diagnostics.ErrP002)
}

func TestMethodWithoutSelf(t *testing.T) {
	parseFail(t, "class A:\n  def f(x):\n    return x\n", diagnostics.ErrP003)
}

func TestUnexpectedToken(t *testing.T) {
	parseFail(t, "x = = 1\n", diagnostics.ErrP001)
}

func TestAssignToNonPath(t *testing.T) {
	parseFail(t, "1 = 2\n", diagnostics.ErrP001)
}

func TestSetClassTablePersistsAcrossParses(t *testing.T) {
	_, p1 := parseSource(t, "class A:\n  def f(self):\n    return 1\n")
	if len(p1.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p1.Errors())
	}

	l := lexer.New("a = A()\n")
	p2 := New(l.Tokenize())
	p2.SetClassTable(p1.ClassTable())
	p2.ParseProgram()
	if len(p2.Errors()) > 0 {
		t.Fatalf("A must resolve via the adopted class table: %v", p2.Errors())
	}
}
