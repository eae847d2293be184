package edit

import (
	"strings"
	"testing"
)

func TestApplyInsertionTop(t *testing.T) {
	result, err := ApplyInsertion("line1\nline2\nline3", AtTop(), "// header")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(result, "// header") {
		t.Errorf("expected header at top, got %q", result)
	}
	if !strings.Contains(result, "line1") {
		t.Errorf("expected original content preserved, got %q", result)
	}
}

func TestApplyInsertionBottom(t *testing.T) {
	result, err := ApplyInsertion("line1\nline2", AtBottom(), "// footer")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(result, "// footer") {
		t.Errorf("expected footer at bottom, got %q", result)
	}
}

func TestApplyInsertionBeforeLine(t *testing.T) {
	result, err := ApplyInsertion("line1\nline2\nline3", Before(2), "// inserted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(result, "\n")
	if lines[1] != "// inserted" || lines[2] != "line2" {
		t.Errorf("unexpected result: %v", lines)
	}
}

func TestApplyInsertionAfterLine(t *testing.T) {
	result, err := ApplyInsertion("line1\nline2\nline3", After(1), "// inserted")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(result, "\n")
	if lines[0] != "line1" || lines[1] != "// inserted" || lines[2] != "line2" {
		t.Errorf("unexpected result: %v", lines)
	}
}

func TestApplyInsertionBeyondFileErrors(t *testing.T) {
	_, err := ApplyInsertion("line1\nline2", After(10), "// nope")
	if err == nil {
		t.Error("expected an error for an out-of-range line")
	}
}
