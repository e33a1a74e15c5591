package parameter

// Host Palette
const (
	BackgroundColor  = "#f5f5f5"
	WireColor        = "#383838"
	WireOpacity      = 0.35
	DestinationColor = "#000000"
	HUDColor         = "#050a14"
)

// Host Text
const (
	HintIdle    = "HOLD CLICK TO TRAVEL"
	HintHolding = "CHARGING..."
	DestTitle   = "THE VOID"
	DestBody    = "Welcome to the next dimension."
	DestReturn  = "[enter] Return Home"
)

// Wireframe
const (
	MeshRadius      = 1.5
	MeshSubdivision = 2
)

// MaxMeshSubdivision bounds the icosphere level; each level quadruples the faces
const MaxMeshSubdivision = 4
