package remote

import "fmt"

// Error represents a failure reported by (or while talking to) a downstream service.
// The status and reason are disclosed to API clients; the core never retries on its own.
type Error struct {
	Service string
	Status  int
	Reason  string
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s responded with status %d: %s", err.Service, err.Status, err.Reason)
}
