package shared

import (
	"fmt"
	"time"
)

// Retry runs fn up to attempts times, sleeping between failures with a delay
// that grows linearly (delay, 2*delay, ...). It returns nil on the first
// success and the last error otherwise.
//
// This is the only retry mechanism in the codebase; it wraps the single call
// site that performs file I/O rather than acting as a cross-cutting decorator.
func Retry(attempts int, delay time.Duration, fn func() error) error {
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay * time.Duration(i+1))
		}
	}

	return fmt.Errorf("all %d attempts failed: %w", attempts, err)
}
