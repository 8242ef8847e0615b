package cowq

import "context"

// Oneshot is the completion token for a single enqueued message. It
// is resolved at most once, by the queue driver, after the message
// has been fully written to the sink. A token for a message that is
// never written (queue failure or teardown) stays pending forever;
// callers that need failure visibility must observe the result of
// Queue.Drive rather than wait on individual tokens.
type Oneshot[M any] struct {
	done chan struct{}
	m    M
}

func newOneshot[M any]() *Oneshot[M] {
	return &Oneshot[M]{done: make(chan struct{})}
}

// resolve delivers the written message and marks the token done. It
// must be called at most once.
func (o *Oneshot[M]) resolve(m M) {
	o.m = m
	close(o.done)
}

// Done returns a channel that is closed once the message has been
// written. The channel is never closed if the queue fails or is torn
// down before the write happens.
func (o *Oneshot[M]) Done() <-chan struct{} {
	return o.done
}

// Message returns the written message and true if the token has
// resolved, or the zero value and false if the write has not
// happened yet.
func (o *Oneshot[M]) Message() (M, bool) {
	select {
	case <-o.done:
		return o.m, true
	default:
		var zero M
		return zero, false
	}
}

// Await blocks until the token resolves or the context is done. It
// returns the written message, or the context error if the context
// fires first.
func (o *Oneshot[M]) Await(ctx context.Context) (M, error) {
	select {
	case <-o.done:
		return o.m, nil
	case <-ctx.Done():
		var zero M
		return zero, ctx.Err()
	}
}
