package proxy

import (
	"sync"

	"mediadriver/application"
)

type readyEvent struct {
	event       application.SubscriptionReadyEvent
	lossHandler application.LossHandler
}

// EventQueue is the bounded, non-blocking queue that carries
// SubscriptionReadyEvent values too large (and too non-POD, holding a
// live *TermBuffer) to travel through a RingBuffer's fixed Command
// layout. Only a wake-up Command crosses the ring buffer; the payload
// itself is dequeued from here.
type EventQueue struct {
	mu    sync.Mutex
	buf   []readyEvent
	head  int
	tail  int
	count int
}

func NewEventQueue(capacity int) *EventQueue {
	return &EventQueue{buf: make([]readyEvent, capacity)}
}

// TryEnqueue reports false, without blocking, when the queue is full.
func (q *EventQueue) TryEnqueue(event application.SubscriptionReadyEvent, lossHandler application.LossHandler) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == len(q.buf) {
		return false
	}
	q.buf[q.tail] = readyEvent{event: event, lossHandler: lossHandler}
	q.tail = (q.tail + 1) % len(q.buf)
	q.count++
	return true
}

// TryDequeue pops the oldest ready event. ok is false when empty.
func (q *EventQueue) TryDequeue() (application.SubscriptionReadyEvent, application.LossHandler, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return application.SubscriptionReadyEvent{}, nil, false
	}
	re := q.buf[q.head]
	q.buf[q.head] = readyEvent{}
	q.head = (q.head + 1) % len(q.buf)
	q.count--
	return re.event, re.lossHandler, true
}

// RollbackLast undoes the most recent TryEnqueue. It exists solely so
// ReceiverProxy.NewReceiveBuffer can keep the event queue and its wake-up
// tag on the ring buffer consistent when the ring buffer turns out to be
// full immediately after the event was queued.
func (q *EventQueue) RollbackLast() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return
	}
	q.tail = (q.tail - 1 + len(q.buf)) % len(q.buf)
	q.buf[q.tail] = readyEvent{}
	q.count--
}
