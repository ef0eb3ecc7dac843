package messenger

// Conn is a live, addressable client connection. The socket layer wraps the
// transport socket behind it; tests substitute channel-backed fakes.
//
// Emit must never block the caller: implementations enqueue onto the
// connection's own outbound path and report an error when the event could
// not be enqueued. A failed emit is a dropped live event, nothing more.
type Conn interface {
	// ID identifies the underlying transport connection, not the user.
	// Two successive connections of the same user have distinct IDs.
	ID() string

	Emit(event string, payload any) error

	// Close tears the transport connection down. Used when a newer
	// registration supersedes this connection.
	Close()
}
