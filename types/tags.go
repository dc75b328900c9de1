package types

import "strings"

// MeshTAG labels a tagged sub-mesh (physical group) in the input grid.
// Matching is case-insensitive so "Sea", "SEA" and "sea" name the same group.
type MeshTAG string

const (
	TAG_Sea    MeshTAG = "sea"    // 2D interior region, triangles
	TAG_Coast  MeshTAG = "coast"  // 1D coastline boundary, segments
	TAG_Border MeshTAG = "border" // 1D outer rectangle boundary, segments
)

func NewMeshTAG(label string) MeshTAG {
	return MeshTAG(strings.ToLower(strings.TrimSpace(label)))
}

func (t MeshTAG) String() string { return string(t) }

// ElementKind distinguishes the two element shapes carried by a tagged group
type ElementKind uint8

const (
	KindSegment  ElementKind = 2 // value doubles as vertex count per element
	KindTriangle ElementKind = 3
)

func (k ElementKind) NumVerts() int { return int(k) }
