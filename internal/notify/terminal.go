package notify

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// ToastTTL is how long a notification is considered current. The terminal
// notifier prints immediately, so the TTL only matters to callers that
// poll Current (the HTTP surface does).
const ToastTTL = 3 * time.Second

// Terminal writes notifications to a writer and remembers the most recent
// one. Only one notification is current at a time.
type Terminal struct {
	writer  io.Writer
	now     func() time.Time
	shownAt time.Time
	current string
	isError bool
	mu      sync.Mutex
}

// NewTerminal returns a Terminal writing to w, defaulting to stdout.
func NewTerminal(w io.Writer) *Terminal {
	if w == nil {
		w = os.Stdout
	}
	return &Terminal{writer: w, now: time.Now}
}

// Success shows a success notification, replacing any current one.
func (t *Terminal) Success(message string) {
	t.show(message, false)
}

// Error shows an error notification, replacing any current one.
func (t *Terminal) Error(message string) {
	t.show(message, true)
}

func (t *Terminal) show(message string, isError bool) {
	t.mu.Lock()
	t.current = message
	t.isError = isError
	t.shownAt = t.now()
	t.mu.Unlock()

	if isError {
		fmt.Fprintln(t.writer, FormatError(message))
		return
	}
	fmt.Fprintln(t.writer, FormatSuccess(message))
}

// Current returns the message shown within the last ToastTTL, and whether
// it was an error. Expired messages report empty.
func (t *Terminal) Current() (message string, isError bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == "" || t.now().Sub(t.shownAt) > ToastTTL {
		return "", false
	}
	return t.current, t.isError
}

// TerminalConfirmer asks yes/no questions on the terminal. Anything other
// than y or yes declines.
type TerminalConfirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewTerminalConfirmer builds a confirmer over the given streams,
// defaulting to stdin/stdout.
func NewTerminalConfirmer(r io.Reader, w io.Writer) *TerminalConfirmer {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &TerminalConfirmer{reader: bufio.NewReader(r), writer: w}
}

// Confirm prints the prompt and reads a single line answer.
func (c *TerminalConfirmer) Confirm(prompt string) bool {
	fmt.Fprint(c.writer, FormatPrompt(prompt+" [y/N]"))

	line, err := c.reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
