package entry

import "slices"

// Tag is a proficiency level label.
type Tag string

// Proficiency levels.
const (
	A1 Tag = "A1"
	A2 Tag = "A2"
	B1 Tag = "B1"
	B2 Tag = "B2"
	C1 Tag = "C1"
	C2 Tag = "C2"
)

// Tags lists every level in display order.
var Tags = []Tag{A1, A2, B1, B2, C1, C2}

// Valid reports whether t is one of Tags.
func (t Tag) Valid() bool {
	return slices.Contains(Tags, t)
}

// Type is a grammatical class label.
type Type string

// Word classes.
const (
	Noun         Type = "noun"
	Verb         Type = "verb"
	Adjective    Type = "adjective"
	Adverb       Type = "adverb"
	Pronoun      Type = "pronoun"
	Preposition  Type = "preposition"
	Conjunction  Type = "conjunction"
	Interjection Type = "interjection"
	Phrase       Type = "phrase"
	Idiom        Type = "idiom"
	PhrasalVerb  Type = "phrasal verb"
)

// Types lists every word class in display order.
var Types = []Type{
	Noun,
	Verb,
	Adjective,
	Adverb,
	Pronoun,
	Preposition,
	Conjunction,
	Interjection,
	Phrase,
	Idiom,
	PhrasalVerb,
}

// Valid reports whether t is one of Types.
func (t Type) Valid() bool {
	return slices.Contains(Types, t)
}
