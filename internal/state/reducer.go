package state

import (
	"slices"

	"github.com/five82/lexicon/internal/entry"
)

// Reduce returns the projection that results from applying a to p. It never
// modifies p or anything p references, and unknown actions return p as is.
func Reduce(p Projection, a Action) Projection {
	switch a := a.(type) {
	case ReplaceAll:
		p.Entries = cloneEntries(a.Entries)
		if p.Entries == nil {
			p.Entries = []entry.Entry{}
		}
		p.Pushes++

	case ToggleTag:
		p.SelectedTags = toggle(p.SelectedTags, a.Tag)

	case ToggleType:
		p.SelectedTypes = toggle(p.SelectedTypes, a.Type)

	case OptimisticAdd:
		added := a.Entry.Clone()
		entries := cloneEntries(p.Entries)
		if i := p.IndexOf(added.ID); added.ID != "" && i >= 0 {
			// A push already delivered it.
			entries[i] = added
		} else {
			entries = append(entries, added)
		}
		p.Entries = entries

	case OptimisticRemove:
		if p.IndexOf(a.ID) < 0 {
			return p
		}
		entries := make([]entry.Entry, 0, len(p.Entries)-1)
		for _, e := range p.Entries {
			if e.ID != a.ID {
				entries = append(entries, e.Clone())
			}
		}
		p.Entries = entries

	case OptimisticFavorite:
		i := p.IndexOf(a.ID)
		if i < 0 {
			return p
		}
		entries := cloneEntries(p.Entries)
		entries[i].Favorite = !entries[i].Favorite
		p.Entries = entries

	case RollbackInsert:
		if p.IndexOf(a.Entry.ID) >= 0 {
			// A push restored it already.
			return p
		}
		index := min(max(a.Index, 0), len(p.Entries))
		entries := cloneEntries(p.Entries)
		p.Entries = slices.Insert(entries, index, a.Entry.Clone())

	case ResetForm:
		p.SelectedTags = nil
		p.SelectedTypes = nil
		p.DuplicateFlag = false

	case SetDuplicate:
		p.DuplicateFlag = a.Value

	case SetSearch:
		p.SearchText = a.Text

	case ToggleForm:
		p.FormOpen = !p.FormOpen

	case UnlessPushed:
		if p.Pushes != a.Since {
			return p
		}
		return Reduce(p, a.Action)

	case ToggleConfirm:
		p.ConfirmOpen = !p.ConfirmOpen
		if a.Target != nil {
			target := *a.Target
			target.Entry = target.Entry.Clone()
			p.ConfirmTarget = &target
		} else {
			p.ConfirmTarget = nil
		}
	}
	return p
}

// toggle removes v if present, otherwise appends it, always into a new slice.
func toggle[T comparable](values []T, v T) []T {
	if slices.Contains(values, v) {
		out := make([]T, 0, len(values)-1)
		for _, x := range values {
			if x != v {
				out = append(out, x)
			}
		}
		return out
	}
	out := make([]T, 0, len(values)+1)
	out = append(out, values...)
	return append(out, v)
}
