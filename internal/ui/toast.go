package ui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/golang/glog"

	"github.com/five82/lexicon/internal/entry"
)

// Toast is one user-facing notification.
type Toast struct {
	Success bool
	Message string
	Dismiss string
	expires time.Time
}

// Toaster queues notifications from any goroutine for the UI to pick up.
// It implements dictionary.Notifier.
type Toaster struct {
	ch chan Toast
}

// NewToaster returns a toaster with a ToastBuffer-deep queue.
func NewToaster() *Toaster {
	return &Toaster{ch: make(chan Toast, ToastBuffer)}
}

// Notify queues a toast. It never blocks; when the queue is full the toast is
// logged and dropped.
func (t *Toaster) Notify(success bool, message, dismiss string) {
	select {
	case t.ch <- Toast{Success: success, Message: message, Dismiss: dismiss}:
	default:
		glog.Warningf("Toast queue full, dropped %q", message)
	}
}

type toastMsg Toast

var (
	now             = time.Now
	copyToClipboard = clipboard.WriteAll
)

// lookupToast copies the word's dictionary link. Without a clipboard the
// link is shown instead.
func lookupToast(e entry.Entry) Toast {
	link := e.LookupURL()
	if err := copyToClipboard(link); err != nil {
		glog.V(1).Infof("Clipboard unavailable: %v", err)
		return Toast{Success: true, Message: link}
	}
	return Toast{Success: true, Message: "Copied " + link}
}

type expireMsg time.Time

func waitForToast(ctx context.Context, t *Toaster) tea.Cmd {
	if t == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case toast := <-t.ch:
			return toastMsg(toast)
		}
	}
}

func expireCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return expireMsg(t)
	})
}

// pushToast appends a toast and keeps only the newest ToastLimit.
func pushToast(toasts []Toast, t Toast, now time.Time) []Toast {
	t.expires = now.Add(ToastLifetime)
	toasts = append(toasts, t)
	if len(toasts) > ToastLimit {
		toasts = toasts[len(toasts)-ToastLimit:]
	}
	return toasts
}

// expireToasts drops toasts whose lifetime has passed.
func expireToasts(toasts []Toast, now time.Time) []Toast {
	out := make([]Toast, 0, len(toasts))
	for _, t := range toasts {
		if now.Before(t.expires) {
			out = append(out, t)
		}
	}
	return out
}

func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	lines := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		icon := styles.SuccessText.Render("✓")
		text := styles.Text.Render(t.Message)
		if !t.Success {
			icon = styles.DangerText.Render("✗")
			text = styles.WarningText.Render(t.Message)
		}
		line := icon + " " + text
		if t.Dismiss != "" {
			line += "  " + styles.FaintText.Render("["+t.Dismiss+"]")
		}
		lines = append(lines, line)
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(lines, "\n"))
}
