package backend

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mythonlang/mython/internal/evaluator"
	"github.com/mythonlang/mython/internal/lexer"
	"github.com/mythonlang/mython/internal/parser"
	"github.com/mythonlang/mython/internal/pipeline"
	"github.com/mythonlang/mython/internal/runtime"
)

func TestTreeWalkRun(t *testing.T) {
	var out bytes.Buffer
	ctx := pipeline.NewPipelineContext("print 2 + 3\n")
	ctx.Out = &out

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		NewExecutionProcessor(NewTreeWalk()),
	)
	final := p.Run(ctx)

	if len(final.Errors) > 0 {
		t.Fatalf("errors: %v", final.Errors)
	}
	if out.String() != "5\n" {
		t.Errorf("output = %q", out.String())
	}
}

func TestExecutionProcessorReportsRuntimeErrors(t *testing.T) {
	ctx := pipeline.NewPipelineContext("print 1 / 0\n")
	ctx.Out = &bytes.Buffer{}
	ctx.FilePath = "boom.my"

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		NewExecutionProcessor(NewTreeWalk()),
	)
	final := p.Run(ctx)

	if len(final.Errors) != 1 {
		t.Fatalf("errors = %v", final.Errors)
	}
	msg := final.Errors[0].Error()
	if !strings.Contains(msg, "DivByZero") || !strings.Contains(msg, "boom.my") {
		t.Errorf("diagnostic = %q", msg)
	}
}

func TestExecutionProcessorSkipsAfterParseErrors(t *testing.T) {
	var out bytes.Buffer
	ctx := pipeline.NewPipelineContext("x = = 1\nprint 1\n")
	ctx.Out = &out

	p := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		NewExecutionProcessor(NewTreeWalk()),
	)
	final := p.Run(ctx)

	if len(final.Errors) == 0 {
		t.Fatal("expected parse diagnostics")
	}
	if out.Len() != 0 {
		t.Errorf("program ran despite parse errors: %q", out.String())
	}
}

// RunProgram keeps the environment alive across inputs, the way the
// REPL keeps its session environment between inputs.
func TestRunProgramPersistentEnvironment(t *testing.T) {
	b := NewTreeWalk()
	var out bytes.Buffer
	eval := evaluator.New()
	eval.Out = &out
	env := runtime.NewEnvironment()

	parse := func(src string, classes map[string]*runtime.Class) *parser.Parser {
		l := lexer.New(src)
		p := parser.New(l.Tokenize())
		if classes != nil {
			p.SetClassTable(classes)
		}
		return p
	}

	p1 := parse("x = 40\n", nil)
	if err := b.RunProgram(p1.ParseProgram(), eval, env); err != nil {
		t.Fatal(err)
	}

	p2 := parse("print x + 2\n", p1.ClassTable())
	if err := b.RunProgram(p2.ParseProgram(), eval, env); err != nil {
		t.Fatal(err)
	}

	if out.String() != "42\n" {
		t.Errorf("output = %q", out.String())
	}
}
