package dictionary

// Notifier receives user-facing outcome messages. Calls are fire-and-forget
// and may arrive from any goroutine.
type Notifier interface {
	Notify(success bool, message, dismiss string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(success bool, message, dismiss string)

// Notify calls f.
func (f NotifierFunc) Notify(success bool, message, dismiss string) {
	f(success, message, dismiss)
}

type discard struct{}

func (discard) Notify(bool, string, string) {}
