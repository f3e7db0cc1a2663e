package scrawl

/* Notifier is the narrow collaborator InputState calls through whenever a
Toast is raised, so the host process can mirror it to an
external channel (desktop notification daemon, status line, log) without
InputState knowing anything about that channel (spec.md §7). Clipboard and
desktop-notification plumbing themselves are out of scope (spec.md §1); only
the interface and a no-op default are provided. */
type Notifier interface {
	Notify(Toast)
}

/* NopNotifier discards every notification. It is the default wired into a
fresh InputState so Notifier is never nil. */
type NopNotifier struct{}

func (NopNotifier) Notify(Toast) {}
