package parameter

import "time"

// Frame Loop
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// ReferenceFrameRate is the frame rate the per-frame smoothing constants were tuned at
	ReferenceFrameRate = 60.0

	// MaxFrameDelta caps a single step so a stalled host does not jump the effect forward
	MaxFrameDelta = 100 * time.Millisecond
)

// Device Classification
const (
	// CompactBreakpoint is the viewport width in logical pixels below which a device is compact
	CompactBreakpoint = 768.0

	// CellPixelWidth maps one terminal column to logical pixels for classification
	CellPixelWidth = 10.0
)

// CellPixelHeight maps one terminal row to logical pixels (cells are roughly 1:2)
const CellPixelHeight = 20.0

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 64

	// EventBufferMask is the bitmask for fast modulo operations (64 - 1)
	EventBufferMask = 63
)
