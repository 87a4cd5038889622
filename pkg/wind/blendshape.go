package wind

import (
	"github.com/Faultbox/windsway/pkg/geom"
)

// BlendShape is a per-vertex offset field targeting every point of a mesh.
type BlendShape struct {
	Name          string
	PointIndices  []int
	Offsets       []geom.Point3
	NormalOffsets []geom.Point3
}

// BuildBlendShape bends the part of a mesh above its origin toward dir.
// All output slices have len(points) entries; points are not modified.
func BuildBlendShape(points []geom.Point3, up geom.UpAxis, dir Direction, name string) BlendShape {
	n := len(points)
	bs := BlendShape{
		Name:          name,
		PointIndices:  make([]int, n),
		Offsets:       make([]geom.Point3, n),
		NormalOffsets: make([]geom.Point3, n),
	}

	height := geom.MaxHeight(points, up)
	upIdx := up.Index()
	eastIdx, southIdx := up.Horizontal()
	eastScale, southScale := dir.Scales()

	for i, p := range points {
		bs.PointIndices[i] = i

		v := p[upIdx]
		if v <= 0 {
			continue
		}
		hd := HorizontalDelta(height, v)

		var off geom.Point3
		off[eastIdx] = hd * eastScale
		off[southIdx] = hd * southScale
		off[upIdx] = VerticalDelta(height, v)
		bs.Offsets[i] = off
	}

	return bs
}
