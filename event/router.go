package event

// HandlerFunc processes a single routed event
// Called synchronously during the dispatch phase
type HandlerFunc func(ev Event)

type subscription struct {
	id uint64
	fn HandlerFunc
}

// Router dispatches queued events to subscribers
//
// Architecture:
//   - Single-threaded dispatch, owned by the frame loop
//   - Multiple handlers per type, invoked in subscription order
//   - Subscribe returns a disposer; disposing inside a handler takes effect on the next event
type Router struct {
	handlers map[Type][]subscription
	queue    *Queue
	nextID   uint64
	batch    []Event
}

// NewRouter creates a router draining the given queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[Type][]subscription),
		queue:    queue,
	}
}

// Subscribe registers fn for t and returns its disposer
// Calling the disposer more than once is a no-op
func (r *Router) Subscribe(t Type, fn HandlerFunc) (dispose func()) {
	r.nextID++
	id := r.nextID
	r.handlers[t] = append(r.handlers[t], subscription{id: id, fn: fn})

	disposed := false
	return func() {
		if disposed {
			return
		}
		disposed = true
		subs := r.handlers[t]
		for i, s := range subs {
			if s.id == id {
				// Copy so an in-flight dispatch keeps iterating its own slice
				next := make([]subscription, 0, len(subs)-1)
				next = append(next, subs[:i]...)
				next = append(next, subs[i+1:]...)
				r.handlers[t] = next
				return
			}
		}
	}
}

// Publish enqueues ev for the next dispatch
func (r *Router) Publish(ev Event) {
	r.queue.Push(ev)
}

// DispatchAll consumes all pending events and routes them in FIFO order
// Events published by handlers during dispatch are delivered in the same call
func (r *Router) DispatchAll() int {
	delivered := 0
	for {
		r.batch = r.queue.Drain(r.batch[:0])
		if len(r.batch) == 0 {
			return delivered
		}
		for _, ev := range r.batch {
			for _, s := range r.handlers[ev.Type] {
				s.fn(ev)
			}
			delivered++
		}
	}
}

// HandlerCount returns the number of handlers registered for t
func (r *Router) HandlerCount(t Type) int {
	return len(r.handlers[t])
}
