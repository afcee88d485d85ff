package asm

import (
	"fmt"
	"io"
	"strings"
)

type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Diagnostic is one warning or error tied to a 1-based source line.
type Diagnostic struct {
	Severity Severity
	Line     int
	Message  string
}

// Diagnostics collects messages for one source unit. Any error makes the
// unit fail; warnings never do.
type Diagnostics struct {
	filename string
	lines    []string
	items    []Diagnostic
	failed   bool
}

func newDiagnostics(filename string, lines []string) *Diagnostics {
	return &Diagnostics{filename: filename, lines: lines}
}

func (d *Diagnostics) Warnf(line int, format string, args ...any) {
	d.items = append(d.items, Diagnostic{Severity: SeverityWarning, Line: line, Message: fmt.Sprintf(format, args...)})
}

func (d *Diagnostics) Errorf(line int, format string, args ...any) {
	d.items = append(d.items, Diagnostic{Severity: SeverityError, Line: line, Message: fmt.Sprintf(format, args...)})
	d.failed = true
}

// Failed reports whether any error has been recorded.
func (d *Diagnostics) Failed() bool {
	return d.failed
}

func (d *Diagnostics) All() []Diagnostic {
	return append([]Diagnostic(nil), d.items...)
}

// Count returns the number of diagnostics of the given severity.
func (d *Diagnostics) Count(s Severity) int {
	n := 0
	for _, item := range d.items {
		if item.Severity == s {
			n++
		}
	}
	return n
}

const (
	ansiReset   = "\x1b[0m"
	ansiBold    = "\x1b[1m"
	ansiRed     = "\x1b[1;31m"
	ansiMagenta = "\x1b[1;35m"
)

// Report writes every diagnostic followed by the source line it refers to:
//
//	prog.asm: error: unknown instruction 'frob':
//	   3: frob r1
func (d *Diagnostics) Report(w io.Writer, color bool) error {
	for _, item := range d.items {
		if _, err := io.WriteString(w, d.format(item, color)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Diagnostics) format(item Diagnostic, color bool) string {
	var b strings.Builder

	severity := item.Severity.String()
	if color {
		tint := ansiMagenta
		if item.Severity == SeverityError {
			tint = ansiRed
		}
		fmt.Fprintf(&b, "%s%s:%s %s%s:%s %s:\n", ansiBold, d.filename, ansiReset, tint, severity, ansiReset, item.Message)
	} else {
		fmt.Fprintf(&b, "%s: %s: %s:\n", d.filename, severity, item.Message)
	}
	fmt.Fprintf(&b, " %3d: %s\n", item.Line, d.sourceLine(item.Line))
	return b.String()
}

func (d *Diagnostics) sourceLine(line int) string {
	if line < 1 || line > len(d.lines) {
		return ""
	}
	return strings.TrimRight(d.lines[line-1], "\r\n")
}
