// Package dictionary runs the optimistic word list: it applies a user's change
// to the local projection at once, confirms it against the document store and
// undoes it after a short delay when the store refuses.
//
// A Dictionary is mounted once per view. Mount subscribes to the collection
// (after SubscribeDelay) and every push replaces the entry list wholesale, so
// the store always has the last word. Unmount stops the subscription and
// cancels rollbacks that have not fired yet.
//
// Creates are not optimistic. The name is normalized, checked for duplicates
// and written; the entry joins the list only with the id the store assigned.
// A unique index on the store side catches the race between two creators.
//
// All outcomes reach the user through a Notifier.
package dictionary
