package dictionary

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/five82/lexicon/internal/entry"
)

// Visible returns the entries whose name contains search, ignoring case,
// ordered favorites first and then by name under the locale's collation.
// The sort is stable. entries is not modified.
func Visible(entries []entry.Entry, search string, locale language.Tag) []entry.Entry {
	fold := cases.Fold()
	needle := fold.String(search)

	out := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if needle == "" || strings.Contains(fold.String(e.Name), needle) {
			out = append(out, e)
		}
	}

	col := collate.New(locale)
	slices.SortStableFunc(out, func(a, b entry.Entry) int {
		if a.Favorite != b.Favorite {
			if a.Favorite {
				return -1
			}
			return 1
		}
		return col.CompareString(a.Name, b.Name)
	})
	return out
}

// Section is a titled run of visible entries.
type Section struct {
	Title   string
	Entries []entry.Entry
}

// Sections splits an ordered visible list into favorites and the rest.
// Empty sections are omitted.
func Sections(visible []entry.Entry) []Section {
	split := len(visible)
	for i, e := range visible {
		if !e.Favorite {
			split = i
			break
		}
	}

	var out []Section
	if split > 0 {
		out = append(out, Section{Title: "Favorites", Entries: visible[:split]})
	}
	if split < len(visible) {
		out = append(out, Section{Title: "Words", Entries: visible[split:]})
	}
	return out
}
