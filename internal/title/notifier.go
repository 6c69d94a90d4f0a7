package title

// Notifier is the user-facing feedback channel of the host.
type Notifier interface {
	// Status shows a transient progress message. The returned func removes
	// it and must be called exactly once.
	Status(msg string) (release func())
	// Notice shows a dismissible message, used for per-document failures.
	Notice(msg string)
}

type nopNotifier struct{}

func (nopNotifier) Status(string) func() { return func() {} }
func (nopNotifier) Notice(string)        {}
