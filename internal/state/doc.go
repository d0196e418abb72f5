// Package state holds the dictionary's projection and the only code allowed to
// change it.
//
// # Overview
//
// A Projection is the render-ready snapshot of the dictionary: the entry list
// plus transient selection, search and dialog state. Reduce is a pure function
// from (Projection, Action) to the next Projection; Store wraps it with a lock
// so that dispatches from the front end, the live subscription and rollback
// timers form one ordered history.
//
// # Actions
//
//	ReplaceAll          overwrite entries with an authoritative push
//	ToggleTag/Type      add or remove a pending selection
//	OptimisticAdd       append an entry (replace in place if its id is present)
//	OptimisticRemove    drop an entry by id, no-op if absent
//	OptimisticFavorite  flip an entry's favorite flag, no-op if absent
//	RollbackInsert      re-insert an entry at an index, clamped; no-op if present
//	ResetForm           clear selections and the duplicate warning
//	SetDuplicate        set the duplicate warning
//	SetSearch           set the search text
//	ToggleForm          open/close the create form
//	ToggleConfirm       open/close the delete confirmation with its target
//	UnlessPushed        apply a wrapped action only if no ReplaceAll landed since
//
// Action is an open interface. Reduce returns the projection unchanged for kinds
// it does not know, so producers can be newer than the reducer.
//
// # Consistency
//
// There is no merging: the last write to the entry list wins. A ReplaceAll
// reflects the store as of its push and therefore supersedes any optimistic
// change that the push does not contain. Projection.Pushes counts them, and
// compensations wrapped in UnlessPushed are skipped once a newer push landed.
//
// # Defensive Copying
//
// Reduce never mutates its input; every changed slice is freshly allocated.
// Snapshot returns a deep copy, as the Store's readers run on other goroutines.
//
// # Lifecycle
//
// Close marks the store as torn down. Later dispatches are dropped and report
// false, which is what makes a rollback timer firing after unmount harmless.
//
// # Change Notification
//
// Changes returns a one-slot channel signalled after every dispatch. Signals
// coalesce; front ends re-read Snapshot when woken. Revision advances only for
// actions that can change the derived entry view, letting readers memoize it.
package state
