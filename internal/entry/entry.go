package entry

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Document field names used on the wire and in equality queries.
const (
	FieldName        = "name"
	FieldTags        = "tags"
	FieldTypes       = "types"
	FieldDateCreated = "dateCreated"
	FieldFavorite    = "favorite"
)

// DateLayout formats DateCreated as day/month/year.
const DateLayout = "02/01/2006"

// Entry is a vocabulary item as held in the projection.
type Entry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Tags        []Tag  `json:"tags"`
	Types       []Type `json:"types"`
	DateCreated string `json:"dateCreated"`
	Favorite    bool   `json:"favorite"`
}

// Fields is the document payload persisted for an entry. The id lives on the
// document, not in the payload.
type Fields struct {
	Name        string `json:"name"`
	Tags        []Tag  `json:"tags"`
	Types       []Type `json:"types"`
	DateCreated string `json:"dateCreated"`
	Favorite    bool   `json:"favorite"`
}

// FromFields pairs a store-assigned id with its payload.
func FromFields(id string, f Fields) Entry {
	return Entry{
		ID:          id,
		Name:        f.Name,
		Tags:        slices.Clone(f.Tags),
		Types:       slices.Clone(f.Types),
		DateCreated: f.DateCreated,
		Favorite:    f.Favorite,
	}
}

// Fields returns the persisted payload for e.
func (e Entry) Fields() Fields {
	return Fields{
		Name:        e.Name,
		Tags:        slices.Clone(e.Tags),
		Types:       slices.Clone(e.Types),
		DateCreated: e.DateCreated,
		Favorite:    e.Favorite,
	}
}

// Clone returns a copy of e that shares no slices with it.
func (e Entry) Clone() Entry {
	e.Tags = slices.Clone(e.Tags)
	e.Types = slices.Clone(e.Types)
	return e
}

// LookupBase is the dictionary site each word links to.
const LookupBase = "https://dictionary.cambridge.org/dictionary/english/"

// LookupURL links the word to its dictionary page. Spaces become dashes, as
// the site spells multi-word headwords that way.
func (e Entry) LookupURL() string {
	slug := strings.Join(strings.Fields(strings.ToLower(e.Name)), "-")
	return LookupBase + url.PathEscape(slug)
}

// FormatDate renders t the way DateCreated is stored.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// NormalizeName trims s, collapses inner whitespace and lower-cases it. Two
// names collide exactly when their normalized forms are equal.
func NormalizeName(s string) string {
	collapsed := strings.Join(strings.Fields(s), " ")
	if collapsed == "" {
		return ""
	}
	return cases.Lower(language.Und).String(collapsed)
}

// NormalizeTags validates tags against the level enumeration and drops
// duplicates, keeping first-seen order.
func NormalizeTags(tags []Tag) ([]Tag, error) {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		t = Tag(strings.ToUpper(strings.TrimSpace(string(t))))
		if !t.Valid() {
			return nil, fmt.Errorf("unknown tag %q", t)
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// NormalizeTypes validates types against the word class enumeration and drops
// duplicates, keeping first-seen order.
func NormalizeTypes(types []Type) ([]Type, error) {
	out := make([]Type, 0, len(types))
	for _, t := range types {
		t = Type(strings.Join(strings.Fields(strings.ToLower(string(t))), " "))
		if !t.Valid() {
			return nil, fmt.Errorf("unknown type %q", t)
		}
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out, nil
}

// TagLabels returns the entry's tags sorted for display, or "N/A" when it has none.
func (e Entry) TagLabels() []string {
	labels := make([]string, 0, len(e.Tags))
	for _, t := range e.Tags {
		if s := strings.TrimSpace(string(t)); s != "" {
			labels = append(labels, s)
		}
	}
	if len(labels) == 0 {
		return []string{"N/A"}
	}
	slices.Sort(labels)
	return labels
}

// TypeLabel joins the entry's types for display.
func (e Entry) TypeLabel() string {
	parts := make([]string, len(e.Types))
	for i, t := range e.Types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}
