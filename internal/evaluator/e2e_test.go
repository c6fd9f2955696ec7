package evaluator_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/mythonlang/mython/internal/analyzer"
	"github.com/mythonlang/mython/internal/backend"
	"github.com/mythonlang/mython/internal/lexer"
	"github.com/mythonlang/mython/internal/parser"
	"github.com/mythonlang/mython/internal/pipeline"
)

// runSource pushes a program through the full pipeline and returns its
// stdout and collected diagnostics.
func runSource(t *testing.T, source string) (string, []string) {
	t.Helper()

	var out bytes.Buffer
	ctx := pipeline.NewPipelineContext(source)
	ctx.FilePath = "test.my"
	ctx.Out = &out

	processingPipeline := pipeline.New(
		&lexer.LexerProcessor{},
		&parser.ParserProcessor{},
		&analyzer.SemanticAnalyzerProcessor{},
		backend.NewExecutionProcessor(backend.NewTreeWalk()),
	)
	finalCtx := processingPipeline.Run(ctx)

	var errs []string
	for _, err := range finalCtx.Errors {
		errs = append(errs, err.Error())
	}
	return out.String(), errs
}

// loadCorpus reads a txtar archive into program/expectation pairs keyed
// by basename.
func loadCorpus(t *testing.T, name, expectExt string) map[string][2]string {
	t.Helper()

	archive, err := txtar.ParseFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("loading corpus: %v", err)
	}

	programs := make(map[string]string)
	expectations := make(map[string]string)
	for _, file := range archive.Files {
		base := strings.TrimSuffix(file.Name, filepath.Ext(file.Name))
		switch filepath.Ext(file.Name) {
		case ".my":
			programs[base] = string(file.Data)
		case expectExt:
			expectations[base] = string(file.Data)
		default:
			t.Fatalf("unexpected corpus entry %q", file.Name)
		}
	}

	cases := make(map[string][2]string, len(programs))
	for base, program := range programs {
		want, ok := expectations[base]
		if !ok {
			t.Fatalf("program %q has no expectation", base)
		}
		cases[base] = [2]string{program, want}
	}
	if len(cases) != len(expectations) {
		t.Fatal("corpus has expectations without programs")
	}
	return cases
}

func TestPrograms(t *testing.T) {
	for name, pair := range loadCorpus(t, "programs.txtar", ".out") {
		t.Run(name, func(t *testing.T) {
			got, errs := runSource(t, pair[0])
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			// txtar files are newline-terminated per entry; the final
			// newline of the expectation is the program's own.
			want := pair[1]
			if got != want {
				t.Errorf("stdout mismatch:\n got: %q\nwant: %q", got, want)
			}
		})
	}
}

func TestErrorPrograms(t *testing.T) {
	for name, pair := range loadCorpus(t, "errors.txtar", ".err") {
		t.Run(name, func(t *testing.T) {
			_, errs := runSource(t, pair[0])
			if len(errs) == 0 {
				t.Fatal("expected a runtime diagnostic, got none")
			}
			want := strings.TrimSpace(pair[1])
			joined := strings.Join(errs, "\n")
			if !strings.Contains(joined, want) {
				t.Errorf("diagnostics %q do not mention %q", joined, want)
			}
		})
	}
}
