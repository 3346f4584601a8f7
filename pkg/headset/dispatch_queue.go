package headset

import "sync"

// QueuedAction is a deferred unit of work handed from the network goroutine
// (or any Send caller) to the single consumer. Actions must not block.
type QueuedAction func()

// DispatchQueue is the only synchronization point between the receive loop
// and the consumer that owns shared state. Enqueue is safe from any
// goroutine; DrainOnce must be called from exactly one consumer.
//
// Drain policy: DrainOnce takes the actions present when it is called and
// runs them in FIFO order. Actions enqueued while a drain is in progress are
// deferred to the next drain pass.
type DispatchQueue struct {
	mu      sync.Mutex
	actions []QueuedAction
}

func NewDispatchQueue() *DispatchQueue {
	return &DispatchQueue{}
}

// Enqueue appends an action. Non-blocking; nil actions are dropped.
func (q *DispatchQueue) Enqueue(action QueuedAction) {
	if action == nil {
		return
	}
	q.mu.Lock()
	q.actions = append(q.actions, action)
	q.mu.Unlock()
}

// DrainOnce executes every action that was queued before the call, in order,
// and returns how many ran.
func (q *DispatchQueue) DrainOnce() int {
	q.mu.Lock()
	batch := q.actions
	q.actions = nil
	q.mu.Unlock()

	for _, action := range batch {
		action()
	}
	return len(batch)
}

// Len reports how many actions are currently waiting.
func (q *DispatchQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.actions)
}
