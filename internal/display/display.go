// Package display is the user-facing output surface: prompts, login results and
// not-found notices. Diagnostics go to the logger instead.
package display

import (
	"fmt"
	"io"
	"sync"
)

type Display interface {
	Show(format string, args ...any)
}

type writerDisplay struct {
	w    io.Writer
	lock sync.Mutex
}

// New returns a Display that writes one line per message to w.
func New(w io.Writer) Display {
	return &writerDisplay{w: w}
}

func (d *writerDisplay) Show(format string, args ...any) {
	d.lock.Lock()
	defer d.lock.Unlock()
	fmt.Fprintf(d.w, format+"\n", args...)
}

// Discard drops every message.
var Discard Display = discard{}

type discard struct{}

func (discard) Show(string, ...any) {}

// Recorder keeps every message. It is intended for tests.
type Recorder struct {
	lock     sync.Mutex
	messages []string
}

func (r *Recorder) Show(format string, args ...any) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func (r *Recorder) Messages() []string {
	r.lock.Lock()
	defer r.lock.Unlock()
	return append([]string(nil), r.messages...)
}
