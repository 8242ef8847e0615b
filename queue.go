package cowq

import (
	"sync"

	"github.com/gammazero/deque"
)

// entry pairs one enqueued message with its completion token. The
// pair travels through the pending queue together so the driver can
// resolve exactly the token that belongs to the message it wrote.
type entry[M any] struct {
	m    M
	done *Oneshot[M]
}

// inner is the queue state shared by every Sender and the driver:
// the pending FIFO, the live sender count, and the driver's parked
// waker. All access goes through mu so producers may run on any
// goroutine.
type inner[M any] struct {
	mu      sync.Mutex
	pending deque.Deque[entry[M]]
	senders int
	waker   chan struct{}
}

// enqueue appends a message to the pending FIFO and returns its
// completion token. If the driver is parked, its waker is taken and
// fired after the append, so the driver never wakes to a queue that
// is missing the message that woke it.
func (in *inner[M]) enqueue(m M) *Oneshot[M] {
	done := newOneshot[M]()

	in.mu.Lock()
	in.pending.PushBack(entry[M]{m: m, done: done})
	wake := in.waker
	in.waker = nil
	in.mu.Unlock()

	if wake != nil {
		close(wake)
	}
	return done
}

// New creates a write queue draining onto the sink w. It returns the
// initial Sender (live handle count starts at one) and the Queue
// driver, which holds the sink until Drive hands it back.
func New[W, M any](w W) (*Sender[M], *Queue[W, M]) {
	in := &inner[M]{senders: 1}
	return &Sender[M]{inner: in}, newQueue(w, in)
}
