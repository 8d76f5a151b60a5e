package ports

// Transport defines the interface for a server-side email entry point
type Transport interface {
	// Start starts serving and blocks until the listener is set up
	Start() error

	// Stop stops serving and releases the listener
	Stop() error
}
