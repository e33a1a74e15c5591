package parameter

// Trail Ring Buffer
const (
	// TrailCapacity is the fixed number of trail points
	TrailCapacity = 60

	// TrailAgeRate is age gained per second; a point is invisible at age 1
	TrailAgeRate = 1.5

	// TrailInitialAge marks a never-written slot, immediately eligible for replacement
	TrailInitialAge = 1e9

	// TrailBaseRadius is the reveal radius of a single point in aspect-corrected UV units
	TrailBaseRadius = 0.08

	// TrailFloodGain scales the radius with progress while engaging
	TrailFloodGain = 12.0
)
