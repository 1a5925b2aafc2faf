package app

import (
	"bytes"
	"strings"
	"sync"

	"fyne.io/fyne/v2/data/binding"
)

const logLineLimit = 300

// logCapture is a zapcore.WriteSyncer that mirrors the most recent log
// entries into the binding shown by the log panel. Entries live in a ring
// of fixed size; head is the slot the next entry goes to.
type logCapture struct {
	mu      sync.Mutex
	ring    []string
	head    int
	full    bool
	binding binding.String
}

func newLogCapture(b binding.String, limit int) *logCapture {
	if limit < 1 {
		limit = 1
	}
	return &logCapture{binding: b, ring: make([]string, limit)}
}

// Write receives one encoded zap entry per call. Multi-line payloads such as
// stack traces are split so each line counts against the limit.
func (l *logCapture) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range bytes.Split(p, []byte{'\n'}) {
		line = bytes.TrimRight(line, "\r")
		if len(line) == 0 {
			continue
		}
		l.push(string(line))
	}
	_ = l.binding.Set(l.text())
	return len(p), nil
}

func (l *logCapture) push(line string) {
	l.ring[l.head] = line
	l.head = (l.head + 1) % len(l.ring)
	if l.head == 0 {
		l.full = true
	}
}

// text joins the held entries oldest first.
func (l *logCapture) text() string {
	if !l.full {
		return strings.Join(l.ring[:l.head], "\n")
	}
	var b strings.Builder
	for i := range l.ring {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.ring[(l.head+i)%len(l.ring)])
	}
	return b.String()
}

func (l *logCapture) Sync() error {
	return nil
}
