package state

import (
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/five82/lexicon/internal/entry"
)

func sample() Projection {
	return Projection{
		Entries: []entry.Entry{
			{ID: "1", Name: "ant"},
			{ID: "2", Name: "bun", Favorite: true},
			{ID: "3", Name: "cat"},
		},
	}
}

func names(entries []entry.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestReduce_ReplaceAllKeepsUIState(t *testing.T) {
	p := sample()
	p.SearchText = "a"
	p.SelectedTags = []entry.Tag{entry.A1}
	p.FormOpen = true

	next := Reduce(p, ReplaceAll{Entries: []entry.Entry{{ID: "9", Name: "dog"}}})

	assert.Equal(t, names(next.Entries), []string{"dog"})
	assert.Equal(t, next.SearchText, "a")
	assert.Equal(t, next.SelectedTags, []entry.Tag{entry.A1})
	assert.Equal(t, next.FormOpen, true)
}

func TestReduce_ReplaceAllNilIsEmpty(t *testing.T) {
	next := Reduce(sample(), ReplaceAll{})
	assert.Equal(t, len(next.Entries), 0)
	assert.NotEqual(t, next.Entries, nil)
}

func TestReduce_ToggleTagTwiceRestores(t *testing.T) {
	p := Projection{SelectedTags: []entry.Tag{entry.B1}}

	once := Reduce(p, ToggleTag{Tag: entry.A1})
	assert.Equal(t, once.SelectedTags, []entry.Tag{entry.B1, entry.A1})

	twice := Reduce(once, ToggleTag{Tag: entry.A1})
	assert.Equal(t, twice.SelectedTags, p.SelectedTags)
}

func TestReduce_ToggleTypePreservesOrder(t *testing.T) {
	p := Projection{SelectedTypes: []entry.Type{entry.Noun, entry.Verb, entry.Idiom}}
	next := Reduce(p, ToggleType{Type: entry.Verb})
	assert.Equal(t, next.SelectedTypes, []entry.Type{entry.Noun, entry.Idiom})
}

func TestReduce_OptimisticAdd(t *testing.T) {
	next := Reduce(sample(), OptimisticAdd{Entry: entry.Entry{ID: "4", Name: "dog"}})
	assert.Equal(t, names(next.Entries), []string{"ant", "bun", "cat", "dog"})

	// An id the list already has is replaced in place.
	again := Reduce(next, OptimisticAdd{Entry: entry.Entry{ID: "2", Name: "bunny"}})
	assert.Equal(t, names(again.Entries), []string{"ant", "bunny", "cat", "dog"})
}

func TestReduce_OptimisticRemove(t *testing.T) {
	next := Reduce(sample(), OptimisticRemove{ID: "2"})
	assert.Equal(t, names(next.Entries), []string{"ant", "cat"})

	same := Reduce(next, OptimisticRemove{ID: "missing"})
	assert.Equal(t, names(same.Entries), []string{"ant", "cat"})
}

func TestReduce_OptimisticFavoriteFlips(t *testing.T) {
	next := Reduce(sample(), OptimisticFavorite{ID: "1"})
	assert.Equal(t, next.Entries[0].Favorite, true)

	back := Reduce(next, OptimisticFavorite{ID: "1"})
	assert.Equal(t, back.Entries[0].Favorite, false)

	missing := Reduce(sample(), OptimisticFavorite{ID: "missing"})
	assert.Equal(t, missing.Entries, sample().Entries)
}

func TestReduce_RollbackInsertClamps(t *testing.T) {
	dog := entry.Entry{ID: "4", Name: "dog"}

	tests := []struct {
		name  string
		index int
		want  []string
	}{
		{"front", 0, []string{"dog", "ant", "bun", "cat"}},
		{"middle", 1, []string{"ant", "dog", "bun", "cat"}},
		{"end", 3, []string{"ant", "bun", "cat", "dog"}},
		{"past end", 10, []string{"ant", "bun", "cat", "dog"}},
		{"negative", -2, []string{"dog", "ant", "bun", "cat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := Reduce(sample(), RollbackInsert{Entry: dog, Index: tt.index})
			assert.Equal(t, names(next.Entries), tt.want)
		})
	}
}

func TestReduce_RollbackInsertSkipsPresentEntry(t *testing.T) {
	bun := entry.Entry{ID: "2", Name: "bun", Favorite: true}

	next := Reduce(sample(), RollbackInsert{Entry: bun, Index: 0})

	assert.Equal(t, names(next.Entries), []string{"ant", "bun", "cat"})
	assert.Equal(t, next.IndexOf("2"), 1)
}

func TestReduce_ReplaceAllCountsPushes(t *testing.T) {
	p := sample()
	assert.Equal(t, p.Pushes, uint64(0))

	p = Reduce(p, ReplaceAll{})
	p = Reduce(p, ReplaceAll{Entries: sample().Entries})
	assert.Equal(t, p.Pushes, uint64(2))

	p = Reduce(p, OptimisticFavorite{ID: "1"})
	assert.Equal(t, p.Pushes, uint64(2))
}

func TestReduce_UnlessPushed(t *testing.T) {
	p := sample()
	flip := UnlessPushed{Action: OptimisticFavorite{ID: "1"}, Since: 0}

	applied := Reduce(p, flip)
	assert.Equal(t, applied.Entries[0].Favorite, true)

	pushed := Reduce(p, ReplaceAll{Entries: sample().Entries})
	skipped := Reduce(pushed, flip)
	assert.Equal(t, skipped.Entries[0].Favorite, false)
	assert.Equal(t, skipped, pushed)

	reinsert := UnlessPushed{Action: RollbackInsert{Entry: entry.Entry{ID: "4", Name: "dog"}, Index: 0}, Since: 1}
	assert.Equal(t, names(Reduce(pushed, reinsert).Entries), []string{"dog", "ant", "bun", "cat"})
}

func TestReduce_FormAndDialogFlags(t *testing.T) {
	p := Projection{
		SelectedTags:  []entry.Tag{entry.A1},
		SelectedTypes: []entry.Type{entry.Noun},
		DuplicateFlag: true,
	}

	reset := Reduce(p, ResetForm{})
	assert.Equal(t, len(reset.SelectedTags), 0)
	assert.Equal(t, len(reset.SelectedTypes), 0)
	assert.Equal(t, reset.DuplicateFlag, false)

	assert.Equal(t, Reduce(p, SetDuplicate{Value: false}).DuplicateFlag, false)
	assert.Equal(t, Reduce(p, SetSearch{Text: "co"}).SearchText, "co")
	assert.Equal(t, Reduce(p, ToggleForm{}).FormOpen, true)
	assert.Equal(t, Reduce(Reduce(p, ToggleForm{}), ToggleForm{}).FormOpen, false)

	target := &ConfirmTarget{Entry: entry.Entry{ID: "2"}, Index: 1}
	open := Reduce(p, ToggleConfirm{Target: target})
	assert.Equal(t, open.ConfirmOpen, true)
	assert.Equal(t, open.ConfirmTarget.Index, 1)
	assert.Equal(t, open.ConfirmTarget.Entry.ID, "2")

	closed := Reduce(open, ToggleConfirm{})
	assert.Equal(t, closed.ConfirmOpen, false)
	assert.Equal(t, closed.ConfirmTarget == nil, true)
}

type futureAction struct{}

func (futureAction) Kind() string { return "FUTURE" }

func TestReduce_UnknownActionIsIdentity(t *testing.T) {
	p := sample()
	p.SearchText = "x"
	next := Reduce(p, futureAction{})
	assert.Equal(t, next, p)
	assert.Equal(t, Reduce(p, nil), p)
}

func TestReduce_DoesNotMutateInput(t *testing.T) {
	p := sample()
	p.SelectedTags = []entry.Tag{entry.A1, entry.B1}
	before := p.Clone()

	Reduce(p, OptimisticFavorite{ID: "2"})
	Reduce(p, OptimisticRemove{ID: "1"})
	Reduce(p, OptimisticAdd{Entry: entry.Entry{ID: "1", Name: "ant2"}})
	Reduce(p, RollbackInsert{Entry: entry.Entry{ID: "9"}, Index: 0})
	Reduce(p, ToggleTag{Tag: entry.A1})

	assert.Equal(t, p, before)
}
