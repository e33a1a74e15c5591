// Package geometry builds and projects the wireframe of the floating object
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Edge joins two vertex indices, A < B
type Edge [2]int

// Mesh is a unit-sphere triangle mesh kept as vertex directions and unique edges
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    [][3]int
	Edges    []Edge
}

// Icosahedron returns a geodesic sphere: an icosahedron with each face split into 4, level times
// Negative levels are treated as 0
func Icosahedron(level int) *Mesh {
	phi := (1 + math.Sqrt(5)) / 2
	verts := []mgl64.Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	for i := range verts {
		verts[i] = verts[i].Normalize()
	}
	faces := [][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for l := 0; l < level; l++ {
		verts, faces = subdivide(verts, faces)
	}

	return &Mesh{Vertices: verts, Faces: faces, Edges: edges(faces)}
}

func subdivide(verts []mgl64.Vec3, faces [][3]int) ([]mgl64.Vec3, [][3]int) {
	midpoints := make(map[Edge]int, len(faces)*3/2)
	mid := func(a, b int) int {
		key := orderedEdge(a, b)
		if idx, ok := midpoints[key]; ok {
			return idx
		}
		verts = append(verts, verts[a].Add(verts[b]).Normalize())
		idx := len(verts) - 1
		midpoints[key] = idx
		return idx
	}

	out := make([][3]int, 0, len(faces)*4)
	for _, f := range faces {
		ab := mid(f[0], f[1])
		bc := mid(f[1], f[2])
		ca := mid(f[2], f[0])
		out = append(out,
			[3]int{f[0], ab, ca},
			[3]int{f[1], bc, ab},
			[3]int{f[2], ca, bc},
			[3]int{ab, bc, ca},
		)
	}
	return verts, out
}

func orderedEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{a, b}
}

func edges(faces [][3]int) []Edge {
	seen := make(map[Edge]struct{}, len(faces)*3/2)
	out := make([]Edge, 0, len(faces)*3/2)
	for _, f := range faces {
		for i := 0; i < 3; i++ {
			e := orderedEdge(f[i], f[(i+1)%3])
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}
