package scene

import "errors"

// Scene document errors.
var (
	ErrInvalidPath       = errors.New("invalid prim path")
	ErrPrimNotFound      = errors.New("prim not found")
	ErrNoParent          = errors.New("parent prim not defined")
	ErrValueType         = errors.New("invalid attribute value")
	ErrUnsortedSamples   = errors.New("time samples must be strictly increasing")
	ErrInvalidDefaultRef = errors.New("default prim must be a defined root prim")
)

// Prim type names used by skeletal blend-shape rigs.
const (
	TypeXform         = "Xform"
	TypeMesh          = "Mesh"
	TypeSkelRoot      = "SkelRoot"
	TypeSkeleton      = "Skeleton"
	TypeSkelAnimation = "SkelAnimation"
	TypeBlendShape    = "BlendShape"
)

// SkelBindingAPI is the schema applied to prims that carry skeletal bindings.
const SkelBindingAPI = "SkelBindingAPI"

// Document is a hierarchical scene. Define and the Set methods replace
// whatever a previous call wrote at the same path or name, so callers can
// re-run an authoring step without accumulating state.
type Document interface {
	// DefaultPrim returns the root prim tools operate under, or "" if unset.
	DefaultPrim() Path
	// IsValid reports whether a prim is defined at p.
	IsValid(p Path) bool
	// TypeName returns the declared type of the prim at p.
	TypeName(p Path) string
	// Children returns the child prims of p in authoring order.
	Children(p Path) []Path
	// Attribute returns a copy of the named attribute. A missing attribute
	// is reported with false and is not an error.
	Attribute(p Path, name string) (Attribute, bool)
	// Relationship returns the targets of the named relationship.
	Relationship(p Path, name string) ([]Path, bool)

	Define(p Path, typeName string) error
	ApplyAPI(p Path, schema string) error
	SetAttribute(p Path, name string, v Value) error
	SetTimeSamples(p Path, name string, samples []TimeSample) error
	SetRelationship(p Path, name string, targets ...Path) error
}
