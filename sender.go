package cowq

// Sender is a cloneable handle for enqueueing messages. Each clone
// counts toward the queue's live handle count; the driver terminates
// only once every handle has been closed and the backlog is drained.
//
// A Sender is a single-owner capability: it must not be used from
// multiple goroutines at once. Producers that need their own handle
// call Clone.
type Sender[M any] struct {
	inner  *inner[M]
	closed bool
}

// Send enqueues a message to be written and returns its completion
// token. Send never blocks and imposes no bound on queue depth. The
// token resolves with the same message value once the write has
// finished; it never resolves if the queue fails or is torn down
// first.
//
// Send panics if the Sender has been closed.
func (s *Sender[M]) Send(m M) *Oneshot[M] {
	if s.closed {
		panic("cowq: send on closed Sender")
	}
	return s.inner.enqueue(m)
}

// Len returns the number of messages queued to be written, not
// including any write currently in progress. It is an advisory
// snapshot, not synchronized against concurrent sends.
func (s *Sender[M]) Len() int {
	in := s.inner
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.pending.Len()
}

// Clone returns a new Sender sharing the same queue and increments
// the live handle count. Clone panics if the Sender has been closed.
func (s *Sender[M]) Clone() *Sender[M] {
	if s.closed {
		panic("cowq: clone of closed Sender")
	}

	in := s.inner
	in.mu.Lock()
	in.senders++
	in.mu.Unlock()

	return &Sender[M]{inner: in}
}

// Close releases the handle. Messages already sent through it stay
// in the queue and are still written in order. Closing the last
// handle fires the driver's parked waker so termination is
// re-evaluated; the termination decision itself stays with the
// driver.
//
// Close panics if called twice on the same Sender.
func (s *Sender[M]) Close() {
	if s.closed {
		panic("cowq: Sender closed twice")
	}
	s.closed = true

	in := s.inner
	in.mu.Lock()
	in.senders--
	if in.senders < 0 {
		in.mu.Unlock()
		panic("cowq: negative sender count")
	}
	var wake chan struct{}
	if in.senders == 0 {
		wake = in.waker
		in.waker = nil
	}
	in.mu.Unlock()

	if wake != nil {
		close(wake)
	}
}
