// Package cowq provides an ordered, asynchronous write queue that
// serializes messages from any number of producers onto a single
// sink, one write at a time, in global FIFO order.
//
// Key components:
//
//   - Sender: A cloneable handle through which producers enqueue
//     messages. Send never blocks; it returns a completion token
//     immediately.
//
//   - Oneshot: The completion token for one enqueued message. It
//     resolves exactly once, with the message value, after that
//     message has been fully written. It may never resolve if the
//     queue fails or is torn down first.
//
//   - Queue: The driver. It owns the sink between writes, drains
//     pending messages in order, parks when idle, and terminates
//     with the sink once every Sender has been closed and the
//     backlog is empty.
//
//   - Writer: Interface for the collaborator that writes a single
//     message to the sink. On success it hands both the sink and
//     the message back, so the driver can keep writing and the
//     producer can reclaim its buffers.
//
//   - Group: Collects completion tokens from a burst of sends and
//     awaits them all.
package cowq
