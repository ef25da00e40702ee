package notify

import "sync"

// Recorder captures notifications for assertions in tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

// Success records a success message.
func (r *Recorder) Success(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Successes = append(r.Successes, message)
}

// Error records an error message.
func (r *Recorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Errors = append(r.Errors, message)
}

// Last returns the most recent message of either kind recorded, mirroring
// the single-slot toast behavior.
func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Errors) > 0 && len(r.Successes) == 0 {
		return r.Errors[len(r.Errors)-1]
	}
	if len(r.Successes) > 0 {
		return r.Successes[len(r.Successes)-1]
	}
	return ""
}

// StaticConfirmer always answers the same way. Useful for tests and for
// the --yes flag.
type StaticConfirmer struct {
	Answer bool
}

// Confirm returns the fixed answer.
func (c StaticConfirmer) Confirm(string) bool {
	return c.Answer
}
