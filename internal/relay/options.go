package relay

import "time"

const (
	// Time allowed to write a frame to the peer.
	defaultWriteTimeout = 10 * time.Second

	// Maximum frame size accepted from a peer.
	defaultMaxMessageSize = 8192
)

// Options configure the transport policy applied to attached sessions.
type Options struct {
	// IdleTimeout closes a session whose peer sends nothing for the given
	// duration. Zero disables the idle deadline.
	IdleTimeout time.Duration

	// WriteTimeout bounds each single frame write.
	WriteTimeout time.Duration

	// MaxMessageSize limits the size of inbound frames.
	MaxMessageSize int64
}

func (o Options) withDefaults() Options {
	if o.WriteTimeout <= 0 {
		o.WriteTimeout = defaultWriteTimeout
	}
	if o.MaxMessageSize <= 0 {
		o.MaxMessageSize = defaultMaxMessageSize
	}
	return o
}
