package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ValueType names the type stored in an attribute.
type ValueType string

const (
	TypeFloat       ValueType = "float"
	TypeFloatArray  ValueType = "float[]"
	TypeIntArray    ValueType = "int[]"
	TypeTokenArray  ValueType = "token[]"
	TypePointArray  ValueType = "point3f[]"
	TypeVectorArray ValueType = "vector3f[]"
	TypeMatrixArray ValueType = "matrix4d[]"
	TypeQuatArray   ValueType = "quatf[]"
)

// Value is a typed attribute value. Only the field matching Type is set.
type Value struct {
	Type     ValueType    `yaml:"type"`
	Float    float64      `yaml:"float,omitempty"`
	Floats   []float64    `yaml:"floats,flow,omitempty"`
	Ints     []int        `yaml:"ints,flow,omitempty"`
	Tokens   []string     `yaml:"tokens,flow,omitempty"`
	Vectors  []mgl64.Vec3 `yaml:"vectors,omitempty"`
	Matrices []mgl64.Mat4 `yaml:"matrices,omitempty"`
	Quats    []mgl64.Quat `yaml:"quats,omitempty"`
}

// Float returns a scalar value.
func Float(v float64) Value { return Value{Type: TypeFloat, Float: v} }

// FloatArray returns a float array value.
func FloatArray(v ...float64) Value { return Value{Type: TypeFloatArray, Floats: v} }

// IntArray returns an int array value.
func IntArray(v ...int) Value { return Value{Type: TypeIntArray, Ints: v} }

// TokenArray returns a token array value.
func TokenArray(v ...string) Value { return Value{Type: TypeTokenArray, Tokens: v} }

// PointArray returns an array of positions.
func PointArray(v ...mgl64.Vec3) Value { return Value{Type: TypePointArray, Vectors: v} }

// VectorArray returns an array of offsets or directions.
func VectorArray(v ...mgl64.Vec3) Value { return Value{Type: TypeVectorArray, Vectors: v} }

// MatrixArray returns an array of 4x4 transforms.
func MatrixArray(v ...mgl64.Mat4) Value { return Value{Type: TypeMatrixArray, Matrices: v} }

// QuatArray returns an array of rotations.
func QuatArray(v ...mgl64.Quat) Value { return Value{Type: TypeQuatArray, Quats: v} }

// Len returns the element count of an array value, or 1 for a scalar.
func (v Value) Len() int {
	switch v.Type {
	case TypeFloat:
		return 1
	case TypeFloatArray:
		return len(v.Floats)
	case TypeIntArray:
		return len(v.Ints)
	case TypeTokenArray:
		return len(v.Tokens)
	case TypePointArray, TypeVectorArray:
		return len(v.Vectors)
	case TypeMatrixArray:
		return len(v.Matrices)
	case TypeQuatArray:
		return len(v.Quats)
	}
	return 0
}

func (v Value) check() error {
	switch v.Type {
	case TypeFloat, TypeFloatArray, TypeIntArray, TypeTokenArray,
		TypePointArray, TypeVectorArray, TypeMatrixArray, TypeQuatArray:
		return nil
	}
	return fmt.Errorf("%w: unknown type %q", ErrValueType, v.Type)
}

// TimeSample is an attribute value at a time code.
type TimeSample struct {
	Time  float64 `yaml:"time"`
	Value Value   `yaml:"value"`
}

// Attribute is a named property holding a default value and/or time samples.
// When samples exist they take precedence over the default.
type Attribute struct {
	Name    string       `yaml:"name"`
	Default *Value       `yaml:"default,omitempty"`
	Samples []TimeSample `yaml:"samples,omitempty"`
}

// Get resolves the attribute at time t. Samples are held before the first
// and after the last key; floats and equal-length float arrays are linearly
// interpolated between keys, every other type holds the earlier key.
func (a Attribute) Get(t float64) (Value, bool) {
	if len(a.Samples) == 0 {
		if a.Default == nil {
			return Value{}, false
		}
		return *a.Default, true
	}

	// Find surrounding samples (samples are sorted by time)
	var prev, next int
	for i := range a.Samples {
		if a.Samples[i].Time > t {
			next = i
			break
		}
		prev = i
		next = i
	}

	// Before the first or at/after the last sample
	if prev == next {
		return a.Samples[prev].Value, true
	}

	s0, s1 := a.Samples[prev], a.Samples[next]
	if s0.Value.Type != s1.Value.Type || !lerpable(s0.Value, s1.Value) {
		return s0.Value, true
	}

	f := (t - s0.Time) / (s1.Time - s0.Time)
	switch s0.Value.Type {
	case TypeFloat:
		return Float(s0.Value.Float + f*(s1.Value.Float-s0.Value.Float)), true
	default:
		out := make([]float64, len(s0.Value.Floats))
		for i := range out {
			out[i] = s0.Value.Floats[i] + f*(s1.Value.Floats[i]-s0.Value.Floats[i])
		}
		return FloatArray(out...), true
	}
}

func lerpable(a, b Value) bool {
	switch a.Type {
	case TypeFloat:
		return true
	case TypeFloatArray:
		return len(a.Floats) == len(b.Floats)
	}
	return false
}
