package match

import "sync/atomic"

// CancelFlag is a session-wide cooperative cancellation signal. Once set it
// stays set; in-flight gateway calls finish, new ones do not start.
type CancelFlag struct {
	flag atomic.Bool
}

// NewCancelFlag returns an unset flag.
func NewCancelFlag() *CancelFlag {
	return &CancelFlag{}
}

// Cancel sets the flag. Safe to call from any goroutine, any number of times.
func (c *CancelFlag) Cancel() {
	if c != nil {
		c.flag.Store(true)
	}
}

// Cancelled reports whether the flag has been set.
func (c *CancelFlag) Cancelled() bool {
	return c != nil && c.flag.Load()
}
