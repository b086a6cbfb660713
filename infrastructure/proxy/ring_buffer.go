package proxy

import "sync"

// RingBuffer is a bounded single-producer/single-consumer queue of
// Commands. Unlike a blocking queue, TryDequeue never waits: the
// receiver's event loop must never suspend inside a poll, so an empty
// buffer is reported immediately rather than awaited.
type RingBuffer struct {
	mu     sync.Mutex
	buf    []Command
	head   int
	tail   int
	count  int
	closed bool
}

// NewRingBuffer allocates a ring buffer holding up to capacity commands.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]Command, capacity)}
}

// TryEnqueue appends cmd if there is room. It reports false, without
// blocking, when the buffer is full or closed.
func (r *RingBuffer) TryEnqueue(cmd Command) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed || r.count == len(r.buf) {
		return false
	}
	r.buf[r.tail] = cmd
	r.tail = (r.tail + 1) % len(r.buf)
	r.count++
	return true
}

// TryDequeue pops the oldest command. ok is false when the buffer is
// currently empty.
func (r *RingBuffer) TryDequeue() (cmd Command, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count == 0 {
		return Command{}, false
	}
	cmd = r.buf[r.head]
	r.buf[r.head] = Command{}
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return cmd, true
}

// Close marks the ring buffer closed; further enqueues fail.
func (r *RingBuffer) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}
