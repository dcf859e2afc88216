package expr

import (
	"errors"
	"strings"
	"testing"

	apperrors "github.com/agbru/largeint/internal/errors"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	toks, err := tokenize("x1 = 0b101<<0d3 >= (_,10)")
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, tok := range toks {
		got = append(got, tok.text)
	}
	want := "x1,=,101,<<,3,>=,(,_,,,10,),"
	if strings.Join(got, ",") != want {
		t.Errorf("tokens = %q, want %q", strings.Join(got, ","), want)
	}
	if toks[4].base != 10 || toks[2].base != 2 {
		t.Errorf("bases = %d, %d", toks[2].base, toks[4].base)
	}
	if toks[len(toks)-1].kind != tokEOF {
		t.Error("missing EOF token")
	}
}

func TestParseErrorPositions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		pos     int
		message string
	}{
		{"101 + 12", 7, "invalid binary digit"},
		{"1 # 1", 2, "unexpected character"},
		{"(1 + 1", 6, "expected ')'"},
		{"1 1", 2, "unexpected number"},
		{"bogus(1)", 0, "unknown function"},
		{"0x10", 1, "unexpected 'x' in number"},
		{"abs()", 0, "expects 1 argument"},
	}
	for _, tt := range tests {
		_, err := parse(tt.input)
		var pe apperrors.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("parse(%q) error = %v", tt.input, err)
			continue
		}
		if pe.Pos != tt.pos || !strings.Contains(pe.Message, tt.message) {
			t.Errorf("parse(%q) = pos %d %q, want pos %d containing %q", tt.input, pe.Pos, pe.Message, tt.pos, tt.message)
		}
		if pe.Input != tt.input {
			t.Errorf("ParseError.Input = %q", pe.Input)
		}
	}
}

func TestParseAssociativity(t *testing.T) {
	t.Parallel()

	n, err := parse("1000 - 10 - 1")
	if err != nil {
		t.Fatal(err)
	}
	outer, ok := n.(binaryExpr)
	if !ok || outer.op != "-" {
		t.Fatalf("root = %#v", n)
	}
	if inner, ok := outer.x.(binaryExpr); !ok || inner.op != "-" {
		t.Errorf("subtraction should be left associative, got %#v", outer.x)
	}
}

func FuzzEval(f *testing.F) {
	for _, seed := range []string{"1 + 1", "x = 101", "trunc(-1011, 10)", "((1)", "0d99 / 0", "1 << 0d70"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		e := NewEnv(WithMaxBits(4096))
		res, err := e.Eval(t.Context(), input)
		if err == nil && res.Value == nil {
			t.Fatalf("Eval(%q) returned neither value nor error", input)
		}
	})
}
