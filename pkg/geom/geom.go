// Package geom provides the point and axis types used to deform meshes.
package geom

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Point3 is a 3D position or offset. Components are indexed 0=X, 1=Y, 2=Z.
type Point3 = mgl64.Vec3

// UpAxis selects which coordinate is vertical for a mesh.
type UpAxis int

const (
	UpY UpAxis = iota
	UpZ
)

// Orientation hint values written by importers on a mesh's parent transform.
const (
	HintYUp = 0
	HintZUp = -90
)

// Index returns the coordinate index of the up-axis.
func (a UpAxis) Index() int {
	if a == UpZ {
		return 2
	}
	return 1
}

// Horizontal returns the coordinate indices of the east and south axes.
// Y-up meshes sway in (x, z), Z-up meshes in (x, y).
func (a UpAxis) Horizontal() (east, south int) {
	if a == UpZ {
		return 0, 1
	}
	return 0, 2
}

// String returns "Y" or "Z".
func (a UpAxis) String() string {
	switch a {
	case UpY:
		return "Y"
	case UpZ:
		return "Z"
	default:
		return fmt.Sprintf("UpAxis(%d)", int(a))
	}
}

// ResolveHint maps a "units resolve" rotation hint to an up-axis.
// The second result is false when the value is not a known orientation;
// the returned axis is then the Y-up default.
func ResolveHint(v float64) (UpAxis, bool) {
	switch v {
	case HintYUp:
		return UpY, true
	case HintZUp:
		return UpZ, true
	default:
		return UpY, false
	}
}

// MaxHeight returns the largest coordinate along up across points.
// Points below the origin never lower it under zero, so an empty set
// or one lying entirely at or below the origin yields 0.
func MaxHeight(points []Point3, up UpAxis) float64 {
	idx := up.Index()
	var height float64
	for _, p := range points {
		if p[idx] > height {
			height = p[idx]
		}
	}
	return height
}
