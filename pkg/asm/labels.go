package asm

import "github.com/golang/glog"

// Label binds a name to the word offset it was defined at.
type Label struct {
	Name   string
	Offset int
	Line   int
}

// Site is one word that must be overwritten with a label's offset.
type Site struct {
	Offset int
	Line   int
}

// Relocation collects every site that refers to the same label.
type Relocation struct {
	Label string
	Sites []Site
}

// labelTable keeps definitions in source order so warnings are stable.
type labelTable struct {
	byName map[string]int
	labels []Label
}

func newLabelTable() *labelTable {
	return &labelTable{byName: make(map[string]int)}
}

func (t *labelTable) lookup(name string) (Label, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Label{}, false
	}
	return t.labels[i], true
}

func (t *labelTable) define(l Label) {
	t.byName[l.Name] = len(t.labels)
	t.labels = append(t.labels, l)
	glog.V(2).Infof("define label %q at offset %d (line %d)", l.Name, l.Offset, l.Line)
}

func (t *labelTable) all() []Label {
	out := make([]Label, len(t.labels))
	copy(out, t.labels)
	return out
}

// relocationTable groups pending sites by label, ordered by first reference.
type relocationTable struct {
	byLabel map[string]int
	relocs  []Relocation
}

func newRelocationTable() *relocationTable {
	return &relocationTable{byLabel: make(map[string]int)}
}

func (t *relocationTable) add(label string, ofs, line int) {
	i, ok := t.byLabel[label]
	if !ok {
		i = len(t.relocs)
		t.byLabel[label] = i
		t.relocs = append(t.relocs, Relocation{Label: label})
	}
	t.relocs[i].Sites = append(t.relocs[i].Sites, Site{Offset: ofs, Line: line})
	glog.V(2).Infof("relocation for %q at offset %d (line %d)", label, ofs, line)
}

func (t *relocationTable) referenced(label string) bool {
	_, ok := t.byLabel[label]
	return ok
}

func (t *relocationTable) all() []Relocation {
	out := make([]Relocation, len(t.relocs))
	for i, r := range t.relocs {
		out[i] = Relocation{Label: r.Label, Sites: append([]Site(nil), r.Sites...)}
	}
	return out
}
