package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestDumpSample(t *testing.T) {
	var buf bytes.Buffer
	if err := dump(&buf, "<sample>", sampleSource, false); err != nil {
		t.Fatalf("dump() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"  1: labels=[loop] op=\"movi\" operands=[0 r1]",
		"Pass 1 words: [1 0 1 9 1 1 0 2 7 2]",
		"State: pass2-complete",
		"Final words: [1 0 1 9 1 1 0 2 7 2]",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("dump output missing %q:\n%s", want, out)
		}
	}
}

func TestDumpFailure(t *testing.T) {
	var buf bytes.Buffer
	err := dump(&buf, "bad.asm", "movi nowhere r1\n", false)
	if err == nil {
		t.Fatal("dump() succeeded, want undefined label error")
	}
	out := buf.String()
	if !strings.Contains(out, "bad.asm: error: undefined label 'nowhere'") {
		t.Errorf("dump output missing diagnostic:\n%s", out)
	}
	if strings.Contains(out, "Final words") {
		t.Errorf("dump printed final words after a failure:\n%s", out)
	}
}

func TestDumpCommandArgs(t *testing.T) {
	cmd := newDumpCmd()
	cmd.SetArgs([]string{"a.asm", "b.asm"})
	cmd.SetOut(&bytes.Buffer{})
	if err := cmd.Execute(); err == nil {
		t.Error("Execute() accepted two files")
	}
}
