package cowq

import "context"

// Writer writes one message to the sink. On success it returns
// ownership of both the sink and the message: the sink goes back to
// the driver for the next write, the message goes to whoever awaits
// its completion token. On failure the error terminates the queue
// verbatim; no retries happen inside the queue, and the sink is
// considered lost with the failed write.
//
// Calls are strictly sequential: the driver never has more than one
// write in flight.
type Writer[W, M any] interface {
	WriteMessage(ctx context.Context, w W, m M) (W, M, error)
}

// WriterFunc adapts a function to the Writer interface.
type WriterFunc[W, M any] func(ctx context.Context, w W, m M) (W, M, error)

// WriteMessage calls f.
func (f WriterFunc[W, M]) WriteMessage(ctx context.Context, w W, m M) (W, M, error) {
	return f(ctx, w, m)
}
