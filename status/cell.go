package status

import (
	"math"
	"sync/atomic"
)

// MaxLabelLen bounds label values so one status line can hold every enum
const MaxLabelLen = 16

// Gauge holds the latest float sample of one metric or input coordinate
// The frame loop writes, the HUD and input hosts read; zero value reads 0
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Get() float64 { return math.Float64frombits(g.bits.Load()) }

// Label holds the latest enum name (phase, device class, permission)
type Label struct {
	v atomic.Pointer[string]
}

// Store keeps at most MaxLabelLen bytes of name
func (l *Label) Store(name string) {
	if len(name) > MaxLabelLen {
		name = name[:MaxLabelLen]
	}
	l.v.Store(&name)
}

// Load returns "" until the first Store
func (l *Label) Load() string {
	if p := l.v.Load(); p != nil {
		return *p
	}
	return ""
}
