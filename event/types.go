// Package event carries engine notifications to hosts and collaborators
package event

// Type represents the kind of engine event
type Type int

const (
	// EngageStart marks the press edge opening a new engagement episode
	// Trigger: Engine.Step sees engaging go false→true
	// Consumer: audio hum, trace | Payload: *EngagePayload
	EngageStart Type = iota

	// EngageEnd marks the release edge closing the current episode
	// Trigger: Engine.Step sees engaging go true→false
	// Consumer: audio hum | Payload: *EngagePayload
	EngageEnd

	// Completion signals progress crossed the threshold while engaging
	// Emitted at most once per episode
	// Consumer: navigation collaborator, audio chime | Payload: *CompletionPayload
	Completion

	// DeviceClassChanged signals a profile switch after a resize crossed the breakpoint
	// Consumer: renderer layout | Payload: *DeviceClassPayload
	DeviceClassChanged

	// PermissionSettled signals the orientation permission request finished
	// Trigger: Engine observes a settled permission state
	// Payload: *PermissionPayload
	PermissionSettled

	// ReturnHome requests the engine reset after the destination view is dismissed
	// Trigger: host input | Consumer: Engine | Payload: nil
	ReturnHome

	typeCount
)

var typeNames = [typeCount]string{
	EngageStart:        "engage_start",
	EngageEnd:          "engage_end",
	Completion:         "completion",
	DeviceClassChanged: "device_class_changed",
	PermissionSettled:  "permission_settled",
	ReturnHome:         "return_home",
}

func (t Type) String() string {
	if t < 0 || t >= typeCount {
		return "unknown"
	}
	return typeNames[t]
}

// ParseType resolves a type by its string name
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}
	return 0, false
}
