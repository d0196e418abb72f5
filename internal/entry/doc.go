// Package entry defines the vocabulary record shared by the store, the
// projection and the front end.
//
// An Entry pairs a store-assigned id with its Fields payload. Names are stored
// in normalized form (see NormalizeName) so that duplicate detection can use a
// plain equality query against the store. Tags and types are closed
// enumerations; NormalizeTags and NormalizeTypes validate and de-duplicate
// user selections before they are written.
package entry
