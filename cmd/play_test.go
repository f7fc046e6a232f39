package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/replay-cli/internal/script"
)

func writeScript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestLoadScript(t *testing.T) {
	path := writeScript(t, "demo.replay", "0 > mousedown 1; mouseup 1\n+50 > text hello world\n")
	queue, err := loadScript(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(queue) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(queue))
	}
	if queue[1].Time != 50 {
		t.Errorf("expected resolved time 50, got %d", queue[1].Time)
	}
}

func TestLoadScriptMissingFile(t *testing.T) {
	_, err := loadScript(filepath.Join(t.TempDir(), "nope.replay"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "cannot open script") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadScriptWrongExtension(t *testing.T) {
	path := writeScript(t, "demo.txt", "0 > keydown a\n")
	_, err := loadScript(path)
	if err == nil {
		t.Fatal("expected error for wrong extension")
	}
	if !strings.Contains(err.Error(), ".replay") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadScriptParseErrorCarriesLine(t *testing.T) {
	path := writeScript(t, "bad.replay", "0 > keydown a\n10 > frobnicate\n")
	_, err := loadScript(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
	var pe *script.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *script.ParseError, got %T: %v", err, err)
	}
	if pe.Line != 2 {
		t.Errorf("expected line 2, got %d", pe.Line)
	}
}

func TestParamHelpers(t *testing.T) {
	params := map[string]interface{}{
		"path":    "demo.replay",
		"dry_run": true,
		"port":    8080,
	}
	if got := stringParam(params, "path", ""); got != "demo.replay" {
		t.Errorf("stringParam = %q", got)
	}
	if got := stringParam(params, "missing", "fallback"); got != "fallback" {
		t.Errorf("stringParam default = %q", got)
	}
	if got := stringParam(params, "port", ""); got != "8080" {
		t.Errorf("stringParam numeric = %q", got)
	}
	if !boolParam(params, "dry_run", false) {
		t.Error("boolParam should be true")
	}
	if boolParam(params, "missing", false) {
		t.Error("boolParam default should be false")
	}
}

func TestIndentLog(t *testing.T) {
	got := indentLog("At 0ms: press mouse left\nAt 5ms: release mouse left\n")
	want := "  At 0ms: press mouse left\n  At 5ms: release mouse left\n"
	if got != want {
		t.Errorf("indentLog = %q, want %q", got, want)
	}
}
