// Package ui provides the terminal front end for lexicon.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds a *dictionary.Dictionary and
// re-reads its projection whenever the dictionary signals a change; it never
// edits words itself. Key presses either dispatch UI actions (search text,
// form and dialog flags, level/class toggles) or start a command that runs a
// dictionary mutation off the event loop.
//
// # Package Structure
//
//   - app.go: Model, key handling, messages and commands, Run
//   - list.go: word list with optional Favorites/Words sections
//   - header.go: header, search bar and footer
//   - form.go: the "new word" dialog
//   - confirm.go: delete confirmation dialog
//   - toast.go: Toaster, the Notifier that feeds on-screen notifications
//   - help.go: key binding overlay
//   - theme.go: color themes and Lipgloss styles
//
// # Dialogs
//
// The create form and the delete confirmation implement Modal. Whether one is
// showing is decided by the projection's FormOpen and ConfirmOpen flags, so the
// dialog state survives redraws and pushes.
//
// # Notifications
//
// Every mutation outcome arrives through Toaster.Notify, from whatever
// goroutine produced it, and is shown for ToastLifetime. esc clears them.
//
// # Preferences
//
// T cycles the theme and L switches between the sectioned and flat list. Both
// are written to the prefs file immediately.
package ui
