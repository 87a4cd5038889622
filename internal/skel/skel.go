// Package skel authors the wind rig: a joint-less skeleton with one
// animation per wind scenario, and directional blend shapes on every mesh
// placed under it.
package skel

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/windsway/internal/logger"
	"github.com/Faultbox/windsway/pkg/scene"
	"github.com/Faultbox/windsway/pkg/wind"
)

// Rig errors.
var (
	ErrNoDefaultPrim      = errors.New("scene has no default prim")
	ErrSkelRootNotFound   = errors.New("SkelRoot not found")
	ErrSkeletonNotFound   = errors.New("Skeleton not found")
	ErrAnimationNotFound  = errors.New("animation not found")
	ErrInvalidPoints      = errors.New("mesh points are not a point array")
	ErrInvalidWeightCount = errors.New("blend shape weights do not match the wind blend shapes")
)

// Prim names created under the default prim.
const (
	SkelRootName = "SkelRoot"
	SkeletonName = "Skeleton"
)

// Attribute and relationship names.
const (
	AttrJoints            = "joints"
	AttrJointNames        = "jointNames"
	AttrBindTransforms    = "bindTransforms"
	AttrRestTransforms    = "restTransforms"
	AttrBlendShapes       = "blendShapes"
	AttrBlendShapeWeights = "blendShapeWeights"
	AttrRotations         = "rotations"
	AttrScales            = "scales"
	AttrTranslations      = "translations"
	AttrPoints            = "points"
	AttrPointIndices      = "pointIndices"
	AttrOffsets           = "offsets"
	AttrNormalOffsets     = "normalOffsets"
	AttrUnitsResolve      = "xformOp:rotateX:unitsResolve"

	AttrSkelBlendShapes = "skel:blendShapes"

	RelAnimationSource   = "skel:animationSource"
	RelBlendShapeTargets = "skel:blendShapeTargets"
	RelSkeleton          = "skel:skeleton"
)

type namedValue struct {
	name  string
	value scene.Value
}

// Setup creates (or redefines) SkelRoot and its joint-less Skeleton under
// defaultPrim, authors one animation per wind scenario and binds the
// no-wind animation. It returns the skeleton path.
func Setup(doc scene.Document, defaultPrim scene.Path) (scene.Path, error) {
	if defaultPrim == "" || !doc.IsValid(defaultPrim) {
		return "", fmt.Errorf("%w: %q", ErrNoDefaultPrim, defaultPrim)
	}

	skelRoot := defaultPrim.AppendChild(SkelRootName)
	if err := doc.Define(skelRoot, scene.TypeSkelRoot); err != nil {
		return "", fmt.Errorf("defining skel root: %w", err)
	}

	skeleton := skelRoot.AppendChild(SkeletonName)
	if err := doc.Define(skeleton, scene.TypeSkeleton); err != nil {
		return "", fmt.Errorf("defining skeleton: %w", err)
	}
	if err := doc.ApplyAPI(skeleton, scene.SkelBindingAPI); err != nil {
		return "", err
	}

	// The rig is driven by blend shapes only.
	for _, a := range []namedValue{
		{AttrBindTransforms, scene.MatrixArray()},
		{AttrRestTransforms, scene.MatrixArray()},
		{AttrJoints, scene.TokenArray()},
		{AttrJointNames, scene.TokenArray()},
	} {
		if err := doc.SetAttribute(skeleton, a.name, a.value); err != nil {
			return "", fmt.Errorf("setting skeleton %s: %w", a.name, err)
		}
	}

	for _, sc := range wind.Scenarios() {
		if _, err := BuildAnimation(doc, skeleton, sc.Name, sc.Weights); err != nil {
			return "", err
		}
	}

	if err := BindAnimation(doc, skeleton, wind.DefaultScenario); err != nil {
		return "", err
	}

	logger.Info("skeleton ready",
		zap.Stringer("skeleton", skeleton),
		zap.Int("animations", len(wind.Scenarios())),
		zap.String("bound", wind.DefaultScenario))
	return skeleton, nil
}

// BuildAnimation authors a SkelAnimation named name under skeleton that
// drives the four wind blend shapes with spec. A schedule whose times are
// not strictly increasing is rejected before anything is written.
func BuildAnimation(doc scene.Document, skeleton scene.Path, name string, spec wind.WeightSpec) (scene.Path, error) {
	if err := spec.Validate(); err != nil {
		return "", fmt.Errorf("animation %s: %w", name, err)
	}

	anim := skeleton.AppendChild(name)
	if err := doc.Define(anim, scene.TypeSkelAnimation); err != nil {
		return "", fmt.Errorf("defining animation %s: %w", name, err)
	}

	attrs := []namedValue{
		{AttrBlendShapes, scene.TokenArray(wind.BlendShapeNames()...)},
		{AttrJoints, scene.TokenArray()},
		{AttrRotations, scene.QuatArray()},
		{AttrScales, scene.VectorArray()},
		{AttrTranslations, scene.VectorArray()},
	}
	for _, a := range attrs {
		if err := doc.SetAttribute(anim, a.name, a.value); err != nil {
			return "", fmt.Errorf("animation %s %s: %w", name, a.name, err)
		}
	}

	var err error
	switch spec.Kind {
	case wind.Constant:
		w := spec.Value
		err = doc.SetAttribute(anim, AttrBlendShapeWeights, scene.FloatArray(w[:]...))
	case wind.TimeSampled:
		samples := make([]scene.TimeSample, len(spec.Keyframes))
		for i, k := range spec.Keyframes {
			w := k.Weights
			samples[i] = scene.TimeSample{Time: k.Time, Value: scene.FloatArray(w[:]...)}
		}
		err = doc.SetTimeSamples(anim, AttrBlendShapeWeights, samples)
	}
	if err != nil {
		return "", fmt.Errorf("animation %s weights: %w", name, err)
	}

	logger.Debug("animation authored", zap.Stringer("path", anim), zap.Int("keyframes", len(spec.Keyframes)))
	return anim, nil
}

// BindAnimation points the skeleton's animation source at its child animation name.
func BindAnimation(doc scene.Document, skeleton scene.Path, name string) error {
	anim := skeleton.AppendChild(name)
	if !doc.IsValid(anim) || doc.TypeName(anim) != scene.TypeSkelAnimation {
		return fmt.Errorf("%w: %s", ErrAnimationNotFound, anim)
	}
	if err := doc.SetRelationship(skeleton, RelAnimationSource, anim); err != nil {
		return fmt.Errorf("binding %s: %w", name, err)
	}
	return nil
}

// BoundAnimation returns the skeleton's active animation source.
func BoundAnimation(doc scene.Document, skeleton scene.Path) (scene.Path, bool) {
	targets, ok := doc.Relationship(skeleton, RelAnimationSource)
	if !ok || len(targets) == 0 {
		return "", false
	}
	return targets[0], true
}

// WeightsAt evaluates an animation's blend shape weights at time t.
func WeightsAt(doc scene.Document, anim scene.Path, t float64) (wind.Weights, error) {
	var w wind.Weights
	a, ok := doc.Attribute(anim, AttrBlendShapeWeights)
	if !ok {
		return w, fmt.Errorf("%w: %s has no weights", ErrAnimationNotFound, anim)
	}
	v, ok := a.Get(t)
	if !ok || v.Type != scene.TypeFloatArray || len(v.Floats) != len(w) {
		return w, fmt.Errorf("%w: %s", ErrInvalidWeightCount, anim)
	}
	copy(w[:], v.Floats)
	return w, nil
}

// FindSkeleton locates the skeleton Setup created under the default prim.
func FindSkeleton(doc scene.Document) (scene.Path, error) {
	root := doc.DefaultPrim()
	if root == "" || !doc.IsValid(root) {
		return "", ErrNoDefaultPrim
	}
	skelRoot := root.AppendChild(SkelRootName)
	if !doc.IsValid(skelRoot) {
		return "", ErrSkelRootNotFound
	}
	skeleton := skelRoot.AppendChild(SkeletonName)
	if !doc.IsValid(skeleton) {
		return "", ErrSkeletonNotFound
	}
	return skeleton, nil
}
