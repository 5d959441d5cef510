package types

import (
	"sync"
)

// FIFO with unlimited capacity
// not thread safe
type queue[T any] struct {
	data []T
}

func (q *queue[T]) len() int {
	return len(q.data)
}

func (q *queue[T]) push(v T) {
	q.data = append(q.data, v)
}

// panics if empty
func (q *queue[T]) pop() T {
	var zero T
	v := q.data[0]
	q.data[0] = zero
	q.data = q.data[1:]
	return v
}

// ControlledQueue is a FIFO shared between one controller and any number of
// senders and receivers. The controller owns Close.
type ControlledQueue[T any] struct {
	data          queue[T]
	mu            sync.Mutex
	requestRecvCh chan struct{}
	stopCh        chan struct{}
}

func NewControlledQueue[T any]() *ControlledQueue[T] {
	return &ControlledQueue[T]{
		stopCh:        make(chan struct{}),
		requestRecvCh: make(chan struct{}, 1),
	}
}

// NewControlledQueueOf returns a queue preloaded with items, in order.
func NewControlledQueueOf[T any](items []T) *ControlledQueue[T] {
	cq := NewControlledQueue[T]()
	cq.data.data = append(make([]T, 0, len(items)), items...)
	if len(items) > 0 {
		cq.requestRecvCh <- struct{}{}
	}
	return cq
}

// Close stops the queue. Pending items are dropped.
// only call once from ctrl
func (cq *ControlledQueue[T]) Close() {
	cq.mu.Lock()
	close(cq.stopCh)
	cq.mu.Unlock()
}

func (cq *ControlledQueue[T]) Len() int {
	cq.mu.Lock()
	defer cq.mu.Unlock()
	return cq.data.len()
}

// return true on Send
// return false if closed and not Send
func (cq *ControlledQueue[T]) Send(v T) bool {
	select {
	case <-cq.stopCh:
		return false
	default:
	}
	cq.mu.Lock()
	cq.data.push(v)
	cq.mu.Unlock()
	// wake one blocked receiver; a pending wakeup already covers this item
	select {
	case cq.requestRecvCh <- struct{}{}:
	default:
	}
	return true
}

// Lock gives the controller direct access to pending items, oldest first.
// Items may be replaced in place; call Unlock when done.
func (cq *ControlledQueue[T]) Lock() []T {
	cq.mu.Lock()
	return cq.data.data
}

func (cq *ControlledQueue[T]) Unlock() {
	cq.mu.Unlock()
}

// blocks on empty to wait to receive
func (cq *ControlledQueue[T]) Recv() (T, bool) {
	_, v, ok := cq.AttemptRecv(true)
	return v, ok
}

// return (false, zero, true) on empty
// return (true, v, true) on recv
// return (true, zero, false) on closed
// can opt out of blocking on empty
func (cq *ControlledQueue[T]) AttemptRecv(blockOnEmpty bool) (canRecv bool, v T, ok bool) {
	for {
		select {
		case <-cq.stopCh:
			return true, v, false
		default:
		}

		cq.mu.Lock()
		if cq.data.len() > 0 {
			break
		}
		cq.mu.Unlock()
		if !blockOnEmpty {
			return false, v, true
		}
		select {
		case <-cq.requestRecvCh:
		case <-cq.stopCh:
		}
	}

	v = cq.data.pop()
	remaining := cq.data.len()
	cq.mu.Unlock()
	if remaining > 0 {
		// pass the wakeup on so other blocked receivers see the rest
		select {
		case cq.requestRecvCh <- struct{}{}:
		default:
		}
	}
	return true, v, true
}
