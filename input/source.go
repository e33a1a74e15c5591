package input

import "sync"

// Handler receives unified press/release/move, resize and orientation events
// Normalizer implements Handler
type Handler interface {
	Press(x, y float64)
	Release()
	Move(x, y float64)
	Resize(width, height float64)
	Orient(gamma, beta float64)
}

// Source is a host event stream
// Subscribe registers h and returns its disposer; calling the disposer more than once is safe
type Source interface {
	Subscribe(h Handler) (unsubscribe func())
}

// Fanout is a Source helper that forwards each event to all subscribers in registration order
type Fanout struct {
	mu       sync.RWMutex
	handlers []fanoutEntry
	nextID   uint64
}

type fanoutEntry struct {
	id uint64
	h  Handler
}

// Subscribe implements Source
func (f *Fanout) Subscribe(h Handler) func() {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.handlers = append(f.handlers, fanoutEntry{id: id, h: h})
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			for i, e := range f.handlers {
				if e.id == id {
					f.handlers = append(f.handlers[:i], f.handlers[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the current subscriber count
func (f *Fanout) Subscribers() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.handlers)
}

func (f *Fanout) each(fn func(h Handler)) {
	f.mu.RLock()
	handlers := make([]Handler, len(f.handlers))
	for i, e := range f.handlers {
		handlers[i] = e.h
	}
	f.mu.RUnlock()

	for _, h := range handlers {
		fn(h)
	}
}

// Press forwards to all subscribers
func (f *Fanout) Press(x, y float64) { f.each(func(h Handler) { h.Press(x, y) }) }

// Release forwards to all subscribers
func (f *Fanout) Release() { f.each(func(h Handler) { h.Release() }) }

// Move forwards to all subscribers
func (f *Fanout) Move(x, y float64) { f.each(func(h Handler) { h.Move(x, y) }) }

// Resize forwards to all subscribers
func (f *Fanout) Resize(w, h float64) { f.each(func(hd Handler) { hd.Resize(w, h) }) }

// Orient forwards to all subscribers
func (f *Fanout) Orient(gamma, beta float64) { f.each(func(h Handler) { h.Orient(gamma, beta) }) }
