package skel

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/windsway/internal/logger"
	"github.com/Faultbox/windsway/pkg/geom"
	"github.com/Faultbox/windsway/pkg/scene"
	"github.com/Faultbox/windsway/pkg/wind"
)

// restTime is the time code at which mesh positions and hints are read.
const restTime = 0

// AddBlendShapes finds the skeleton made by Setup and gives every mesh
// under the default prim its wind blend shapes. If the skeleton is
// missing, nothing is written. It returns the number of meshes processed.
func AddBlendShapes(doc scene.Document) (int, error) {
	skeleton, err := FindSkeleton(doc)
	if err != nil {
		logger.Warn("cannot add blend shapes, create the skeleton first", zap.Error(err))
		return 0, err
	}
	return Discover(doc, doc.DefaultPrim(), skeleton)
}

// Discover visits root and its descendants depth-first, left to right, and
// processes every mesh it meets. Children of a mesh are not visited: they
// hold the mesh's own blend shapes.
func Discover(doc scene.Document, root, skeleton scene.Path) (int, error) {
	meshes := 0
	stack := []scene.Path{root}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if doc.TypeName(p) == scene.TypeMesh {
			if err := ProcessMesh(doc, p, skeleton); err != nil {
				return meshes, err
			}
			meshes++
			continue
		}

		children := doc.Children(p)
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}

	logger.Info("blend shapes added", zap.Stringer("root", root), zap.Int("meshes", meshes))
	return meshes, nil
}

// ProcessMesh writes the four directional blend shapes as children of mesh
// and binds them, together with skeleton, on the mesh. Running it again
// overwrites the previous shapes and bindings.
func ProcessMesh(doc scene.Document, mesh, skeleton scene.Path) error {
	up := ResolveUpAxis(doc, mesh)

	points, err := meshPoints(doc, mesh)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(wind.Directions))
	targets := make([]scene.Path, 0, len(wind.Directions))
	for _, dir := range wind.Directions {
		bs := wind.BuildBlendShape(points, up, dir, dir.BlendShapeName())
		target, err := writeBlendShape(doc, mesh, bs)
		if err != nil {
			return err
		}
		names = append(names, bs.Name)
		targets = append(targets, target)
	}

	if err := doc.SetAttribute(mesh, AttrSkelBlendShapes, scene.TokenArray(names...)); err != nil {
		return fmt.Errorf("binding blend shapes on %s: %w", mesh, err)
	}
	if err := doc.SetRelationship(mesh, RelBlendShapeTargets, targets...); err != nil {
		return fmt.Errorf("binding blend shape targets on %s: %w", mesh, err)
	}
	if err := doc.ApplyAPI(mesh, scene.SkelBindingAPI); err != nil {
		return err
	}
	if err := doc.SetRelationship(mesh, RelSkeleton, skeleton); err != nil {
		return fmt.Errorf("binding skeleton on %s: %w", mesh, err)
	}

	logger.Debug("mesh processed",
		zap.Stringer("mesh", mesh),
		zap.Stringer("up", up),
		zap.Int("points", len(points)),
		zap.Float64("height", geom.MaxHeight(points, up)))
	return nil
}

// ResolveUpAxis reads the orientation hint on the mesh's parent transform.
// A missing hint means Y-up; an unrecognized one is logged and also
// treated as Y-up.
func ResolveUpAxis(doc scene.Document, mesh scene.Path) geom.UpAxis {
	parent := mesh.Parent()
	a, ok := doc.Attribute(parent, AttrUnitsResolve)
	if !ok {
		return geom.UpY
	}
	v, ok := a.Get(restTime)
	if !ok {
		return geom.UpY
	}
	if v.Type != scene.TypeFloat {
		logger.Warn("orientation hint is not a number, assuming Y up",
			zap.Stringer("mesh", mesh), zap.String("type", string(v.Type)))
		return geom.UpY
	}

	up, known := geom.ResolveHint(v.Float)
	if !known {
		logger.Warn("unknown orientation hint, assuming Y up",
			zap.Stringer("mesh", mesh), zap.Float64("unitsResolve", v.Float))
	}
	return up
}

// meshPoints returns the rest positions of mesh. A mesh without points is
// degenerate, not an error.
func meshPoints(doc scene.Document, mesh scene.Path) ([]geom.Point3, error) {
	a, ok := doc.Attribute(mesh, AttrPoints)
	if !ok {
		return nil, nil
	}
	v, ok := a.Get(restTime)
	if !ok {
		return nil, nil
	}
	if v.Type != scene.TypePointArray && v.Type != scene.TypeVectorArray {
		return nil, fmt.Errorf("%w: %s is %s", ErrInvalidPoints, mesh, v.Type)
	}
	return v.Vectors, nil
}

func writeBlendShape(doc scene.Document, mesh scene.Path, bs wind.BlendShape) (scene.Path, error) {
	target := mesh.AppendChild(bs.Name)
	if err := doc.Define(target, scene.TypeBlendShape); err != nil {
		return "", fmt.Errorf("defining blend shape %s: %w", target, err)
	}
	for _, a := range []namedValue{
		{AttrPointIndices, scene.IntArray(bs.PointIndices...)},
		{AttrOffsets, scene.VectorArray(bs.Offsets...)},
		{AttrNormalOffsets, scene.VectorArray(bs.NormalOffsets...)},
	} {
		if err := doc.SetAttribute(target, a.name, a.value); err != nil {
			return "", fmt.Errorf("blend shape %s %s: %w", target, a.name, err)
		}
	}
	return target, nil
}
