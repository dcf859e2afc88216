package expr

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "calc.session")
	e := NewEnv()
	evalString(t, e, "a = -0d123456789012345678901234567890")
	evalString(t, e, "b = 0")
	evalString(t, e, "a * 10")
	if err := e.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	back, err := LoadEnv(path, WithMaxBits(1024))
	if err != nil {
		t.Fatalf("LoadEnv: %v", err)
	}
	if got := evalString(t, back, "a"); got != "-123456789012345678901234567890" {
		t.Errorf("a = %s", got)
	}
	if got := evalString(t, back, "b + 1"); got != "1" {
		t.Errorf("b + 1 = %s", got)
	}
	if names := back.Names(); len(names) != 2 {
		t.Errorf("Names() = %v", names)
	}

	// The loaded environment keeps its own options.
	if _, err := back.Eval(context.Background(), "1 << 0d2000"); err == nil {
		t.Error("WithMaxBits was not applied to the loaded environment")
	}
}

func TestSessionLastResult(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "s")
	e := NewEnv()
	evalString(t, e, "110 + 1")
	if err := e.Save(path); err != nil {
		t.Fatal(err)
	}
	back, err := LoadEnv(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := evalString(t, back, "_"); got != "7" {
		t.Errorf("_ = %s, want 7", got)
	}
}

func TestSessionErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, err := LoadEnv(filepath.Join(dir, "absent")); err == nil {
		t.Error("loading a missing file should fail")
	}

	garbage := filepath.Join(dir, "garbage")
	if err := os.WriteFile(garbage, []byte{0xc1, 0x00}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEnv(garbage); err == nil {
		t.Error("loading garbage should fail")
	}

	if err := NewEnv().Save(filepath.Join(dir, "no", "such", "dir", "s")); err == nil {
		t.Error("saving into a missing directory should fail")
	}

	// A failed load leaves the environment untouched.
	e := NewEnv()
	evalString(t, e, "keep = 1")
	if err := e.Load(garbage); err == nil {
		t.Fatal("expected an error")
	}
	if _, ok := e.Get("keep"); !ok {
		t.Error("failed Load dropped existing variables")
	}
}
