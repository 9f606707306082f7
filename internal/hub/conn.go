package hub

// Frame is one inbound client frame: either a text control payload or
// binary audio bytes.
type Frame struct {
	Binary bool
	Data   []byte
}

// Conn is the transport-neutral view of one client connection. The
// gateway adapts websockets to it; tests use in-memory fakes.
type Conn interface {
	ID() string

	// Read blocks until the next inbound frame. Any error means the
	// connection is lost and triggers teardown.
	Read() (Frame, error)

	// Send enqueues an outbound message for JSON delivery. An error
	// marks the channel dead; it must not block indefinitely.
	Send(v any) error

	Close() error
}
