package wind

import "fmt"

// Direction is a cardinal wind direction.
type Direction int

const (
	East Direction = iota
	West
	South
	North
)

// Directions lists every direction in blend-shape order.
var Directions = [4]Direction{East, West, South, North}

var directionNames = [...]string{"east", "west", "south", "north"}

// Scales returns the signed (east, south) sway multipliers.
func (d Direction) Scales() (east, south float64) {
	switch d {
	case East:
		return 1, 0
	case West:
		return -1, 0
	case South:
		return 0, 1
	case North:
		return 0, -1
	default:
		return 0, 0
	}
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d < East || d > North {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// BlendShapeName returns the name of the blend shape swaying toward d,
// e.g. "eastWindBlendShape".
func (d Direction) BlendShapeName() string {
	return d.String() + "WindBlendShape"
}

// BlendShapeNames returns the four blend-shape names in weight order.
func BlendShapeNames() []string {
	names := make([]string, len(Directions))
	for i, d := range Directions {
		names[i] = d.BlendShapeName()
	}
	return names
}
