package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a routed notification
// Frame is the engine frame counter at emission
type Event struct {
	Type    Type
	Payload any
	Frame   uint64
}

// EngagePayload identifies an engagement episode at its press or release edge
type EngagePayload struct {
	Episode uuid.UUID
	At      time.Duration
	Value   float64
}

// CompletionPayload is the completion event handed to the navigation collaborator
// At is engine time since start; Value is progress at the crossing frame
type CompletionPayload struct {
	Episode uuid.UUID
	At      time.Duration
	Value   float64
}

// DeviceClassPayload reports the newly selected device class
type DeviceClassPayload struct {
	Class string
	Width float64
}

// PermissionPayload reports the settled orientation permission state
type PermissionPayload struct {
	State string
}
