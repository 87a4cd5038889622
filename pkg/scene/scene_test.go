package scene

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPath(t *testing.T) {
	p := Root.AppendChild("World").AppendChild("SkelRoot")
	if p != "/World/SkelRoot" {
		t.Fatalf("AppendChild = %q", p)
	}
	if p.Name() != "SkelRoot" {
		t.Errorf("Name() = %q", p.Name())
	}
	if p.Parent() != "/World" || p.Parent().Parent() != Root || Root.Parent() != Root {
		t.Errorf("Parent chain broken for %q", p)
	}

	tests := []struct {
		in    string
		valid bool
	}{
		{"/", true},
		{"/World", true},
		{"/World/Tree_01", true},
		{"World", false},
		{"/World/", false},
		{"//World", false},
		{"/World/../x", false},
		{"/has space", false},
	}
	for _, tt := range tests {
		_, err := ParsePath(tt.in)
		if (err == nil) != tt.valid {
			t.Errorf("ParsePath(%q) error = %v, valid = %v", tt.in, err, tt.valid)
		}
		if err != nil && !errors.Is(err, ErrInvalidPath) {
			t.Errorf("ParsePath(%q) error = %v, want ErrInvalidPath", tt.in, err)
		}
	}
}

func newTestStage(t *testing.T) *Stage {
	t.Helper()
	s := NewStage()
	for _, def := range []struct {
		path Path
		typ  string
	}{
		{"/World", TypeXform},
		{"/World/Tree", TypeXform},
		{"/World/Tree/Trunk", TypeMesh},
		{"/World/Rock", TypeMesh},
	} {
		if err := s.Define(def.path, def.typ); err != nil {
			t.Fatalf("Define(%s): %v", def.path, err)
		}
	}
	if err := s.SetDefaultPrim("/World"); err != nil {
		t.Fatalf("SetDefaultPrim: %v", err)
	}
	return s
}

func TestStageDefine(t *testing.T) {
	s := newTestStage(t)

	if !s.IsValid("/World/Tree/Trunk") || s.IsValid("/World/Bush") || s.IsValid(Root) {
		t.Error("IsValid mismatch")
	}
	if got := s.TypeName("/World/Rock"); got != TypeMesh {
		t.Errorf("TypeName = %q", got)
	}

	children := s.Children("/World")
	if len(children) != 2 || children[0] != "/World/Tree" || children[1] != "/World/Rock" {
		t.Errorf("Children(/World) = %v", children)
	}

	// Redefinition retypes in place without duplicating the child entry.
	if err := s.Define("/World/Rock", TypeXform); err != nil {
		t.Fatal(err)
	}
	if got := len(s.Children("/World")); got != 2 {
		t.Errorf("children after redefine = %d, want 2", got)
	}
	if got := s.TypeName("/World/Rock"); got != TypeXform {
		t.Errorf("TypeName after redefine = %q", got)
	}

	if err := s.Define("/Missing/Child", TypeXform); !errors.Is(err, ErrNoParent) {
		t.Errorf("Define without parent error = %v, want ErrNoParent", err)
	}
	if err := s.Define("bad", TypeXform); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("Define(bad) error = %v, want ErrInvalidPath", err)
	}
	if err := s.SetDefaultPrim("/World/Tree"); !errors.Is(err, ErrInvalidDefaultRef) {
		t.Errorf("SetDefaultPrim(non-root) error = %v", err)
	}
}

func TestStageAttributes(t *testing.T) {
	s := newTestStage(t)

	if _, ok := s.Attribute("/World/Rock", "points"); ok {
		t.Error("unset attribute reported present")
	}

	pts := []mgl64.Vec3{{0, 1, 0}, {1, 2, 3}}
	if err := s.SetAttribute("/World/Rock", "points", PointArray(pts...)); err != nil {
		t.Fatal(err)
	}
	pts[0] = mgl64.Vec3{9, 9, 9}

	a, ok := s.Attribute("/World/Rock", "points")
	if !ok || a.Default == nil {
		t.Fatal("points attribute missing")
	}
	if a.Default.Vectors[0] != (mgl64.Vec3{0, 1, 0}) {
		t.Errorf("stored value aliases caller slice: %v", a.Default.Vectors[0])
	}

	a.Default.Vectors[1] = mgl64.Vec3{}
	again, _ := s.Attribute("/World/Rock", "points")
	if again.Default.Vectors[1] != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("returned value aliases stored data: %v", again.Default.Vectors[1])
	}

	if err := s.SetAttribute("/World/Nope", "x", Float(1)); !errors.Is(err, ErrPrimNotFound) {
		t.Errorf("SetAttribute on missing prim error = %v", err)
	}
	if err := s.SetAttribute("/World/Rock", "x", Value{Type: "blob"}); !errors.Is(err, ErrValueType) {
		t.Errorf("SetAttribute with unknown type error = %v", err)
	}
}

func TestTimeSamples(t *testing.T) {
	s := newTestStage(t)
	p := Path("/World/Rock")

	samples := []TimeSample{
		{Time: 0, Value: FloatArray(0, 0)},
		{Time: 10, Value: FloatArray(1, 0.5)},
		{Time: 20, Value: FloatArray(0, 0)},
	}
	if err := s.SetTimeSamples(p, "w", samples); err != nil {
		t.Fatal(err)
	}
	a, _ := s.Attribute(p, "w")

	tests := []struct {
		time float64
		want []float64
	}{
		{-5, []float64{0, 0}},
		{0, []float64{0, 0}},
		{5, []float64{0.5, 0.25}},
		{10, []float64{1, 0.5}},
		{15, []float64{0.5, 0.25}},
		{20, []float64{0, 0}},
		{99, []float64{0, 0}},
	}
	for _, tt := range tests {
		v, ok := a.Get(tt.time)
		if !ok {
			t.Fatalf("Get(%v) not ok", tt.time)
		}
		for i := range tt.want {
			if v.Floats[i] != tt.want[i] {
				t.Errorf("Get(%v) = %v, want %v", tt.time, v.Floats, tt.want)
				break
			}
		}
	}

	// Setting a default drops the samples.
	if err := s.SetAttribute(p, "w", FloatArray(3, 3)); err != nil {
		t.Fatal(err)
	}
	a, _ = s.Attribute(p, "w")
	if len(a.Samples) != 0 {
		t.Errorf("samples kept after SetAttribute: %v", a.Samples)
	}
	if v, _ := a.Get(10); v.Floats[0] != 3 {
		t.Errorf("Get after SetAttribute = %v", v.Floats)
	}

	bad := []TimeSample{{Time: 5, Value: Float(0)}, {Time: 5, Value: Float(1)}}
	if err := s.SetTimeSamples(p, "w", bad); !errors.Is(err, ErrUnsortedSamples) {
		t.Errorf("SetTimeSamples(repeated time) error = %v", err)
	}
}

func TestTimeSamplesHeldTypes(t *testing.T) {
	a := Attribute{Samples: []TimeSample{
		{Time: 0, Value: TokenArray("a")},
		{Time: 10, Value: TokenArray("b")},
	}}
	if v, _ := a.Get(7); v.Tokens[0] != "a" {
		t.Errorf("token sample not held: %v", v.Tokens)
	}
	if _, ok := (Attribute{}).Get(0); ok {
		t.Error("empty attribute reported a value")
	}
}

func TestRelationshipsAndAPIs(t *testing.T) {
	s := newTestStage(t)
	p := Path("/World/Rock")

	if err := s.SetRelationship(p, "skel:skeleton", "/World/A", "/World/B"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetRelationship(p, "skel:skeleton", "/World/C"); err != nil {
		t.Fatal(err)
	}
	targets, ok := s.Relationship(p, "skel:skeleton")
	if !ok || len(targets) != 1 || targets[0] != "/World/C" {
		t.Errorf("Relationship = %v, %v", targets, ok)
	}

	for i := 0; i < 3; i++ {
		if err := s.ApplyAPI(p, SkelBindingAPI); err != nil {
			t.Fatal(err)
		}
	}
	if apis := s.APISchemas(p); len(apis) != 1 {
		t.Errorf("APISchemas = %v, want one entry", apis)
	}
}

func TestWalkOrder(t *testing.T) {
	s := newTestStage(t)
	var got []Path
	s.Walk(func(p Path) { got = append(got, p) })

	want := []Path{"/World", "/World/Tree", "/World/Tree/Trunk", "/World/Rock"}
	if len(got) != len(want) {
		t.Fatalf("Walk visited %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Walk[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEncodeDecode(t *testing.T) {
	s := newTestStage(t)
	p := Path("/World/Tree/Trunk")
	mustNil(t, s.SetAttribute(p, "points", PointArray(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 2, 0})))
	mustNil(t, s.SetAttribute(p, "joints", TokenArray()))
	mustNil(t, s.SetAttribute("/World/Tree", "xformOp:rotateX:unitsResolve", Float(-90)))
	mustNil(t, s.SetTimeSamples(p, "w", []TimeSample{
		{Time: 0, Value: FloatArray(0, 1)},
		{Time: 4, Value: FloatArray(1, 0)},
	}))
	mustNil(t, s.SetRelationship(p, "skel:skeleton", "/World/Skel"))
	mustNil(t, s.ApplyAPI(p, SkelBindingAPI))

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.DefaultPrim() != "/World" {
		t.Errorf("DefaultPrim = %q", got.DefaultPrim())
	}
	if got.TypeName(p) != TypeMesh {
		t.Errorf("TypeName = %q", got.TypeName(p))
	}
	pts, ok := got.Attribute(p, "points")
	if !ok || pts.Default.Type != TypePointArray || pts.Default.Vectors[1] != (mgl64.Vec3{0, 2, 0}) {
		t.Errorf("points = %+v", pts)
	}
	joints, ok := got.Attribute(p, "joints")
	if !ok || joints.Default.Type != TypeTokenArray || joints.Default.Len() != 0 {
		t.Errorf("joints = %+v", joints)
	}
	hint, _ := got.Attribute("/World/Tree", "xformOp:rotateX:unitsResolve")
	if hint.Default == nil || hint.Default.Float != -90 {
		t.Errorf("hint = %+v", hint)
	}
	w, _ := got.Attribute(p, "w")
	if v, _ := w.Get(2); v.Floats[0] != 0.5 || v.Floats[1] != 0.5 {
		t.Errorf("w(2) = %v", v.Floats)
	}
	if rel, _ := got.Relationship(p, "skel:skeleton"); len(rel) != 1 || rel[0] != "/World/Skel" {
		t.Errorf("relationship = %v", rel)
	}
	if apis := got.APISchemas(p); len(apis) != 1 || apis[0] != SkelBindingAPI {
		t.Errorf("apis = %v", apis)
	}
}

func TestSaveOpen(t *testing.T) {
	s := newTestStage(t)
	path := filepath.Join(t.TempDir(), "nested", "scene.yaml")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if len(got.Children("/World")) != 2 {
		t.Errorf("children = %v", got.Children("/World"))
	}

	if _, err := Open(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Open(missing) returned nil error")
	}
}

func mustNil(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
