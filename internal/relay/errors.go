package relay

import "errors"

var (
	// ErrHubClosed is returned when a connection is attached after shutdown
	// has begun.
	ErrHubClosed = errors.New("relay hub is closed")
)
