package status

import (
	"sort"
	"sync"
	"sync/atomic"
)

// Metric keys published by the engine every frame
const (
	MetricProgress     = "progress.value"
	MetricProgressNorm = "progress.normalized"
	MetricPhase        = "progress.phase"
	MetricCompletions  = "progress.completions"
	MetricTrailActive  = "trail.active"
	MetricTrailRadius  = "trail.radius"
	MetricDisplacement = "physics.displacement"
	MetricDistort      = "physics.distort"
	MetricDeviceClass  = "input.class"
	MetricPermission   = "input.permission"
	MetricFrameTime    = "engine.frame_ms"
)

// Registry is the metrics facade read by the HUD and the recorder
// Writers cache pointers during init; the frame loop writes directly to atomics
type Registry struct {
	mu      sync.RWMutex
	floats  map[string]*Gauge
	ints    map[string]*atomic.Int64
	strings map[string]*Label
}

// NewRegistry creates an empty Registry
func NewRegistry() *Registry {
	return &Registry{
		floats:  make(map[string]*Gauge),
		ints:    make(map[string]*atomic.Int64),
		strings: make(map[string]*Label),
	}
}

// Float returns the float metric for key, creating it on first use
func (r *Registry) Float(key string) *Gauge {
	return getOrCreate(&r.mu, r.floats, key)
}

// Int returns the integer metric for key, creating it on first use
func (r *Registry) Int(key string) *atomic.Int64 {
	return getOrCreate(&r.mu, r.ints, key)
}

// Text returns the string metric for key, creating it on first use
func (r *Registry) Text(key string) *Label {
	return getOrCreate(&r.mu, r.strings, key)
}

// Entry is one formatted metric in a snapshot
type Entry struct {
	Key   string
	Float float64
	Int   int64
	Text  string
	Kind  byte // 'f', 'i', 's'
}

// Snapshot returns all metrics in sorted key order
func (r *Registry) Snapshot() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.floats)+len(r.ints)+len(r.strings))
	for k, v := range r.floats {
		out = append(out, Entry{Key: k, Float: v.Get(), Kind: 'f'})
	}
	for k, v := range r.ints {
		out = append(out, Entry{Key: k, Int: v.Load(), Kind: 'i'})
	}
	for k, v := range r.strings {
		out = append(out, Entry{Key: k, Text: v.Load(), Kind: 's'})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Count returns the total number of registered metrics
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.floats) + len(r.ints) + len(r.strings)
}

// getOrCreate uses a read-locked fast path and double-checks under the write lock
func getOrCreate[T any](mu *sync.RWMutex, items map[string]*T, key string) *T {
	mu.RLock()
	if ptr, ok := items[key]; ok {
		mu.RUnlock()
		return ptr
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if ptr, ok := items[key]; ok {
		return ptr
	}
	ptr := new(T)
	items[key] = ptr
	return ptr
}
