package asm

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang/glog"

	"vmasm/pkg/utils"
)

// Word is one integer of the output stream.
type Word int64

// ErrAssemblyFailed is returned when any error diagnostic was recorded.
var ErrAssemblyFailed = errors.New("assembly failed")

// State tracks how far a run has progressed.
type State int

const (
	StateStart State = iota
	StatePass1Running
	StatePass1Failed
	StatePass1Complete
	StatePass2Running
	StatePass2Failed
	StatePass2Complete
)

var stateNames = [...]string{
	StateStart:         "start",
	StatePass1Running:  "pass1-running",
	StatePass1Failed:   "pass1-failed",
	StatePass1Complete: "pass1-complete",
	StatePass2Running:  "pass2-running",
	StatePass2Failed:   "pass2-failed",
	StatePass2Complete: "pass2-complete",
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Program is the result of a run. Words is nil unless both passes succeeded.
type Program struct {
	Words       []Word
	Labels      []Label
	Relocations []Relocation
}

// Assembler holds the state of a single run over one source unit.
// It is not reusable; create a new one per source.
type Assembler struct {
	filename string
	state    State

	words  []Word
	labels *labelTable
	relocs *relocationTable
	diags  *Diagnostics

	// unpatched is a copy of the word stream taken at the end of pass 1.
	unpatched []Word
}

// Line is one tokenized source line.
type Line struct {
	Number   int
	Labels   []string
	Mnemonic string
	Operands []string
}

func NewAssembler(filename string) *Assembler {
	return &Assembler{
		filename: filename,
		labels:   newLabelTable(),
		relocs:   newRelocationTable(),
		diags:    newDiagnostics(filename, nil),
	}
}

// Assemble runs both passes over source and returns the resulting program
// together with the diagnostics collected along the way.
func Assemble(filename, source string) (*Program, *Diagnostics, error) {
	a := NewAssembler(filename)
	prog, err := a.Assemble(source)
	return prog, a.Diagnostics(), err
}

func (a *Assembler) State() State {
	return a.state
}

func (a *Assembler) Diagnostics() *Diagnostics {
	return a.diags
}

// Unpatched returns the word stream as it stood before relocation.
func (a *Assembler) Unpatched() []Word {
	return append([]Word(nil), a.unpatched...)
}

func (a *Assembler) Assemble(source string) (*Program, error) {
	if a.state != StateStart {
		return nil, fmt.Errorf("assembler for %s already used", a.filename)
	}

	lines := utils.SplitLines(source)
	a.diags.lines = lines

	a.state = StatePass1Running
	a.pass1(lines)
	a.unpatched = append([]Word(nil), a.words...)
	if a.diags.Failed() {
		a.state = StatePass1Failed
		return a.program(nil), a.failure()
	}
	a.state = StatePass1Complete

	a.state = StatePass2Running
	a.pass2()
	if a.diags.Failed() {
		a.state = StatePass2Failed
		return a.program(nil), a.failure()
	}
	a.state = StatePass2Complete

	glog.V(1).Infof("%s: assembled %d words, %d labels, %d relocations",
		a.filename, len(a.words), len(a.labels.labels), len(a.relocs.relocs))
	return a.program(a.words), nil
}

func (a *Assembler) program(words []Word) *Program {
	return &Program{
		Words:       words,
		Labels:      a.labels.all(),
		Relocations: a.relocs.all(),
	}
}

func (a *Assembler) failure() error {
	return fmt.Errorf("%w: %s: %d error(s) in %s", ErrAssemblyFailed, a.filename, a.diags.Count(SeverityError), a.state)
}

func (a *Assembler) pass1(lines []string) {
	glog.V(1).Infof("%s: pass 1 over %d lines", a.filename, len(lines))

	for i, raw := range lines {
		p := parseLine(raw, i+1)
		a.defineLabels(p)

		if p.Mnemonic == "" {
			continue
		}
		a.assembleLine(p)
	}

	for _, l := range a.labels.labels {
		if !a.relocs.referenced(l.Name) {
			a.diags.Warnf(l.Line, "unused label '%s'", l.Name)
		}
	}
}

// defineLabels binds every label on the line to the offset the line's
// instruction will start at.
func (a *Assembler) defineLabels(p Line) {
	for _, name := range p.Labels {
		if isDigits(name) {
			continue
		}
		if !isIdentifier(name) {
			a.diags.Errorf(p.Number, "invalid label name '%s'", name)
			continue
		}
		if prev, exists := a.labels.lookup(name); exists {
			a.diags.Errorf(p.Number, "label '%s' previously defined at %s:%d", name, a.filename, prev.Line)
			continue
		}
		a.labels.define(Label{Name: name, Offset: len(a.words), Line: p.Number})
	}
}

func (a *Assembler) assembleLine(p Line) {
	f, ok := LookupFormat(p.Mnemonic)
	if !ok {
		a.diags.Errorf(p.Number, "unknown instruction '%s'", p.Mnemonic)
		return
	}

	if len(p.Operands) != len(f.Operands) {
		a.diags.Errorf(p.Number, "wrong number of operands to '%s' (expected %d, got %d)",
			p.Mnemonic, len(f.Operands), len(p.Operands))
		return
	}

	if f.HasOpcode {
		a.words = append(a.words, Word(f.Opcode))
	}

	// Words from operands before a failing one stay in the buffer; a
	// failed run never emits output, so there is nothing to roll back.
	for i, kind := range f.Operands {
		encoded, err := kind.encode(p.Operands[i], len(a.words), p.Number, a.relocs)
		if err != nil {
			a.diags.Errorf(p.Number, "operand %d: %v", i+1, err)
			return
		}
		a.words = append(a.words, encoded...)
	}
}

func (a *Assembler) pass2() {
	glog.V(1).Infof("%s: pass 2 resolving %d relocations", a.filename, len(a.relocs.relocs))

	for _, r := range a.relocs.relocs {
		l, ok := a.labels.lookup(r.Label)
		if !ok {
			a.diags.Errorf(r.Sites[0].Line, "undefined label '%s'", r.Label)
			continue
		}
		for _, site := range r.Sites {
			a.words[site.Offset] = Word(l.Offset)
			glog.V(2).Infof("patch offset %d -> %q (%d)", site.Offset, r.Label, l.Offset)
		}
	}
}

// parseLine splits a raw source line into its labels, mnemonic and
// operands. Everything after "//" is a comment; everything before the last
// ':' is a colon-separated list of labels.
func parseLine(raw string, lineNo int) Line {
	p := Line{Number: lineNo}

	line := strings.TrimRight(raw, "\r\n")
	line = stripComments(line)

	if colon := strings.LastIndexByte(line, ':'); colon >= 0 {
		labels := strings.TrimSpace(line[:colon])
		line = line[colon+1:]
		if labels != "" {
			for _, name := range strings.Split(labels, ":") {
				p.Labels = append(p.Labels, strings.TrimSpace(name))
			}
		}
	}

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return p
	}

	p.Mnemonic = fields[0]
	if len(fields) > 1 {
		p.Operands = fields[1:]
	}
	return p
}

// Tokenize splits source into lines and tokenizes each one without
// assembling anything.
func Tokenize(source string) []Line {
	lines := utils.SplitLines(source)
	out := make([]Line, len(lines))
	for i, raw := range lines {
		out[i] = parseLine(raw, i+1)
	}
	return out
}

func stripComments(line string) string {
	if cut := strings.Index(line, "//"); cut >= 0 {
		return line[:cut]
	}
	return line
}
