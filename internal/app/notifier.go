package app

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
)

// consoleNotifier shows progress and failure notices on a terminal. On a TTY
// the status is a single line rewritten in place; otherwise each message is
// printed on its own line.
type consoleNotifier struct {
	mu  sync.Mutex
	w   io.Writer
	tty bool
}

func newConsoleNotifier(f *os.File) *consoleNotifier {
	fd := f.Fd()
	return &consoleNotifier{w: f, tty: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)}
}

const clearLine = "\r\033[K"

func (n *consoleNotifier) Status(msg string) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.tty {
		fmt.Fprintln(n.w, msg)
		return func() {}
	}
	fmt.Fprint(n.w, clearLine+msg)
	var once sync.Once
	return func() {
		once.Do(func() {
			n.mu.Lock()
			defer n.mu.Unlock()
			fmt.Fprint(n.w, clearLine)
		})
	}
}

func (n *consoleNotifier) Notice(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tty {
		fmt.Fprint(n.w, clearLine)
	}
	fmt.Fprintln(n.w, msg)
}
