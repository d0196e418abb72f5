package state

import "github.com/five82/lexicon/internal/entry"

// Action kinds.
const (
	KindReplaceAll         = "REPLACE_ALL"
	KindToggleTag          = "TOGGLE_TAG"
	KindToggleType         = "TOGGLE_TYPE"
	KindOptimisticAdd      = "OPTIMISTIC_ADD"
	KindOptimisticRemove   = "OPTIMISTIC_REMOVE"
	KindOptimisticFavorite = "OPTIMISTIC_FAVORITE"
	KindRollbackInsert     = "ROLLBACK_INSERT"
	KindResetForm          = "RESET_FORM"
	KindSetDuplicate       = "SET_DUPLICATE"
	KindSetSearch          = "SET_SEARCH"
	KindToggleForm         = "TOGGLE_FORM"
	KindToggleConfirm      = "TOGGLE_CONFIRM"
	KindUnlessPushed       = "UNLESS_PUSHED"
)

// Action is a state transition request. Reduce ignores kinds it does not know.
type Action interface {
	Kind() string
}

// ReplaceAll overwrites the entry list with an authoritative push.
type ReplaceAll struct{ Entries []entry.Entry }

// ToggleTag adds or removes a pending tag selection.
type ToggleTag struct{ Tag entry.Tag }

// ToggleType adds or removes a pending type selection.
type ToggleType struct{ Type entry.Type }

// OptimisticAdd appends an entry ahead of (or right after) the store confirming it.
type OptimisticAdd struct{ Entry entry.Entry }

// OptimisticRemove drops the entry with ID.
type OptimisticRemove struct{ ID string }

// OptimisticFavorite flips the favorite flag of the entry with ID.
type OptimisticFavorite struct{ ID string }

// RollbackInsert puts Entry back at Index, clamped to the list bounds.
type RollbackInsert struct {
	Entry entry.Entry
	Index int
}

// ResetForm clears pending selections and the duplicate warning.
type ResetForm struct{}

// SetDuplicate sets the duplicate-name warning.
type SetDuplicate struct{ Value bool }

// SetSearch sets the search text.
type SetSearch struct{ Text string }

// ToggleForm opens or closes the create form.
type ToggleForm struct{}

// ToggleConfirm opens or closes the delete confirmation. A nil Target clears it.
type ToggleConfirm struct{ Target *ConfirmTarget }

// UnlessPushed applies Action only while the projection's push count is
// still Since. Compensations use it so they never undo authoritative data.
type UnlessPushed struct {
	Action Action
	Since  uint64
}

func (ReplaceAll) Kind() string         { return KindReplaceAll }
func (ToggleTag) Kind() string          { return KindToggleTag }
func (ToggleType) Kind() string         { return KindToggleType }
func (OptimisticAdd) Kind() string      { return KindOptimisticAdd }
func (OptimisticRemove) Kind() string   { return KindOptimisticRemove }
func (OptimisticFavorite) Kind() string { return KindOptimisticFavorite }
func (RollbackInsert) Kind() string     { return KindRollbackInsert }
func (ResetForm) Kind() string          { return KindResetForm }
func (SetDuplicate) Kind() string       { return KindSetDuplicate }
func (SetSearch) Kind() string          { return KindSetSearch }
func (ToggleForm) Kind() string         { return KindToggleForm }
func (ToggleConfirm) Kind() string      { return KindToggleConfirm }
func (UnlessPushed) Kind() string       { return KindUnlessPushed }

// affectsView reports whether a changes the inputs of the derived entry view.
func affectsView(a Action) bool {
	switch a := a.(type) {
	case UnlessPushed:
		return affectsView(a.Action)
	case ReplaceAll, OptimisticAdd, OptimisticRemove, OptimisticFavorite, RollbackInsert, SetSearch:
		return true
	}
	return false
}
