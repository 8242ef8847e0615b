package cowq

import (
	"context"
	"errors"
	"runtime/trace"
	"sync/atomic"

	"github.com/webriots/coro"
)

const queueTraceCategory = "cowq"

// stepKind tags what the drain coroutine is asking its executor to
// do next.
type stepKind uint8

const (
	stepWrite stepKind = iota // perform one write with the sink and message
	stepPark                  // wait on the wake channel, then resume
)

// step is what the drain coroutine yields to its executor. For
// stepWrite it carries the sink and the message, moving sink
// ownership out of the coroutine for the duration of the write. For
// stepPark it carries the wake channel registered with the shared
// queue state. The coroutine's final return value reuses the struct:
// w holds the reclaimed sink on success, err the write failure.
type step[W, M any] struct {
	kind stepKind
	w    W
	m    M
	wake <-chan struct{}
	err  error
}

// stepResult is what the executor feeds back into the coroutine
// after completing a step: the sink and message returned by the
// Writer, or the write error.
type stepResult[W, M any] struct {
	w   W
	m   M
	err error
}

// Queue is the driver of a write queue. It drains messages enqueued
// through the queue's Senders onto the sink, one write at a time, in
// the order the sends happened. Construct it with New and run it
// with Drive.
type Queue[W, M any] struct {
	inner  *inner[M]
	resume func(stepResult[W, M]) (step[W, M], bool)
	cancel func()
	driven atomic.Bool
}

func newQueue[W, M any](w W, in *inner[M]) *Queue[W, M] {
	q := &Queue[W, M]{inner: in}

	q.resume, q.cancel = coro.New(
		func(yield func(step[W, M]) stepResult[W, M], _ func() stepResult[W, M]) (s step[W, M]) {
			// Teardown cancels the coroutine at its suspension
			// point; swallow that unwind so cancel does not
			// re-raise it out of Drive. Anything else propagates.
			defer func() {
				if p := recover(); p != nil {
					if err, ok := p.(error); ok && errors.Is(err, coro.ErrCanceled) {
						return
					}
					panic(p)
				}
			}()
			return q.drain(w, yield)
		},
	)

	return q
}

// drain is the driver state machine, run as a coroutine. Between
// writes it owns the sink in w. Each loop iteration either pops the
// head of the pending FIFO and yields a write step (sink ownership
// moves out with the yield and back in with the result), parks when
// the queue is empty but handles remain, or returns the sink once
// the queue is empty and the last handle is gone.
//
// Termination is evaluated only here, in the empty-queue branch, so
// a message that made it into the FIFO is never skipped.
func (q *Queue[W, M]) drain(w W, yield func(step[W, M]) stepResult[W, M]) step[W, M] {
	in := q.inner

	for {
		in.mu.Lock()

		if in.pending.Len() > 0 {
			e := in.pending.PopFront()
			in.mu.Unlock()

			res := yield(step[W, M]{kind: stepWrite, w: w, m: e.m})
			if res.err != nil {
				return step[W, M]{err: res.err}
			}
			w = res.w

			// Resolve before looking at the next message, so the
			// token never trails the following write.
			e.done.resolve(res.m)
			continue
		}

		if in.senders == 0 {
			in.mu.Unlock()
			return step[W, M]{w: w}
		}

		// Empty queue, live handles: register a fresh waker and
		// park. A send racing this registration closes the channel
		// before the executor waits on it, so the wake is never
		// missed. A wake that finds nothing to do falls through the
		// re-check above and parks again.
		wake := make(chan struct{})
		in.waker = wake
		in.mu.Unlock()

		yield(step[W, M]{kind: stepPark, wake: wake})
	}
}

// Drive runs the driver until it terminates, performing each write
// through wr. It returns the sink once the pending queue is empty
// and every Sender has been closed.
//
// A write failure terminates the queue: Drive returns the Writer's
// error verbatim, messages still pending are dropped, and their
// completion tokens never resolve. Cancelling ctx tears the queue
// down the same way, returning the context error; the sink is lost
// in both cases.
//
// Drive must be called exactly once per queue; a second call panics.
func (q *Queue[W, M]) Drive(ctx context.Context, wr Writer[W, M]) (W, error) {
	if q.driven.Swap(true) {
		panic("cowq: Queue driven twice")
	}
	defer q.cancel()

	trace.Log(ctx, queueTraceCategory, "DRIVE")

	s, alive := q.resume(stepResult[W, M]{})
	for alive {
		var res stepResult[W, M]

		switch s.kind {
		case stepWrite:
			trace.Log(ctx, queueTraceCategory, "WRITE")
			res.w, res.m, res.err = wr.WriteMessage(ctx, s.w, s.m)
		case stepPark:
			trace.Log(ctx, queueTraceCategory, "PARK")
			select {
			case <-s.wake:
				trace.Log(ctx, queueTraceCategory, "WAKE")
			case <-ctx.Done():
				trace.Log(ctx, queueTraceCategory, "TEARDOWN")
				var zero W
				return zero, ctx.Err()
			}
		}

		s, alive = q.resume(res)
	}

	if s.err != nil {
		trace.Log(ctx, queueTraceCategory, "FAIL")
		var zero W
		return zero, s.err
	}

	trace.Log(ctx, queueTraceCategory, "DONE")
	return s.w, nil
}
