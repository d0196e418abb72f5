package state

import (
	"slices"

	"github.com/five82/lexicon/internal/entry"
)

// ConfirmTarget is the entry a delete confirmation is pending for, with its
// position in the entry list when the dialog opened.
type ConfirmTarget struct {
	Entry entry.Entry
	Index int
}

// Projection is the local snapshot the front end renders: the entry list plus
// transient selection, search and dialog state.
type Projection struct {
	Entries       []entry.Entry
	SearchText    string
	SelectedTags  []entry.Tag
	SelectedTypes []entry.Type
	FormOpen      bool
	ConfirmOpen   bool
	ConfirmTarget *ConfirmTarget
	DuplicateFlag bool

	// Pushes counts the ReplaceAll actions applied so far.
	Pushes uint64
}

// Clone returns a deep copy of p.
func (p Projection) Clone() Projection {
	out := p
	out.Entries = cloneEntries(p.Entries)
	out.SelectedTags = slices.Clone(p.SelectedTags)
	out.SelectedTypes = slices.Clone(p.SelectedTypes)
	if p.ConfirmTarget != nil {
		target := *p.ConfirmTarget
		target.Entry = target.Entry.Clone()
		out.ConfirmTarget = &target
	}
	return out
}

// IndexOf returns the position of the entry with id, or -1.
func (p Projection) IndexOf(id string) int {
	return slices.IndexFunc(p.Entries, func(e entry.Entry) bool { return e.ID == id })
}

// Find returns the entry with id.
func (p Projection) Find(id string) (entry.Entry, bool) {
	if i := p.IndexOf(id); i >= 0 {
		return p.Entries[i], true
	}
	return entry.Entry{}, false
}

func cloneEntries(entries []entry.Entry) []entry.Entry {
	if entries == nil {
		return nil
	}
	out := make([]entry.Entry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}
