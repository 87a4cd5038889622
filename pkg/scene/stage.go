package scene

import (
	"fmt"
	"slices"

	"github.com/tiendc/go-deepcopy"
)

type prim struct {
	typeName  string
	apis      []string
	attrs     map[string]*Attribute
	attrNames []string
	rels      map[string][]Path
	relNames  []string
	children  []Path
}

func newPrim(typeName string) *prim {
	return &prim{
		typeName: typeName,
		attrs:    make(map[string]*Attribute),
		rels:     make(map[string][]Path),
	}
}

// Stage is an in-memory Document. It is not safe for concurrent use.
type Stage struct {
	defaultPrim Path
	prims       map[Path]*prim
}

var _ Document = (*Stage)(nil)

// NewStage returns an empty stage holding only the pseudo-root.
func NewStage() *Stage {
	return &Stage{prims: map[Path]*prim{Root: newPrim("")}}
}

// DefaultPrim returns the default prim path, or "" if none is set.
func (s *Stage) DefaultPrim() Path {
	return s.defaultPrim
}

// SetDefaultPrim marks a defined root prim as the stage's default prim.
func (s *Stage) SetDefaultPrim(p Path) error {
	if p == Root || p.Parent() != Root || !s.IsValid(p) {
		return fmt.Errorf("%w: %s", ErrInvalidDefaultRef, p)
	}
	s.defaultPrim = p
	return nil
}

func (s *Stage) IsValid(p Path) bool {
	_, ok := s.prims[p]
	return ok && p != Root
}

func (s *Stage) TypeName(p Path) string {
	if pr, ok := s.prims[p]; ok {
		return pr.typeName
	}
	return ""
}

func (s *Stage) Children(p Path) []Path {
	pr, ok := s.prims[p]
	if !ok {
		return nil
	}
	return slices.Clone(pr.children)
}

// APISchemas returns the schemas applied to p.
func (s *Stage) APISchemas(p Path) []string {
	pr, ok := s.prims[p]
	if !ok {
		return nil
	}
	return slices.Clone(pr.apis)
}

// Attribute returns a deep copy so callers cannot mutate stored data.
func (s *Stage) Attribute(p Path, name string) (Attribute, bool) {
	pr, ok := s.prims[p]
	if !ok {
		return Attribute{}, false
	}
	a, ok := pr.attrs[name]
	if !ok {
		return Attribute{}, false
	}
	var out Attribute
	// Attributes hold only plain data, so copying cannot fail.
	if err := deepcopy.Copy(&out, a); err != nil {
		panic(fmt.Sprintf("scene: copying attribute %s.%s: %v", p, name, err))
	}
	return out, true
}

// AttributeNames returns the attribute names of p in authoring order.
func (s *Stage) AttributeNames(p Path) []string {
	pr, ok := s.prims[p]
	if !ok {
		return nil
	}
	return slices.Clone(pr.attrNames)
}

func (s *Stage) Relationship(p Path, name string) ([]Path, bool) {
	pr, ok := s.prims[p]
	if !ok {
		return nil, false
	}
	targets, ok := pr.rels[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(targets), true
}

// Define creates the prim at p, or retypes it in place if it exists.
// Existing children and properties are kept.
func (s *Stage) Define(p Path, typeName string) error {
	if _, err := ParsePath(string(p)); err != nil {
		return err
	}
	if p == Root {
		return fmt.Errorf("%w: cannot define the pseudo-root", ErrInvalidPath)
	}
	if pr, ok := s.prims[p]; ok {
		pr.typeName = typeName
		return nil
	}
	parent, ok := s.prims[p.Parent()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoParent, p)
	}
	s.prims[p] = newPrim(typeName)
	parent.children = append(parent.children, p)
	return nil
}

// ApplyAPI records schema on p once.
func (s *Stage) ApplyAPI(p Path, schema string) error {
	pr, err := s.lookup(p)
	if err != nil {
		return err
	}
	if !slices.Contains(pr.apis, schema) {
		pr.apis = append(pr.apis, schema)
	}
	return nil
}

// SetAttribute sets the default value of an attribute and drops its samples.
func (s *Stage) SetAttribute(p Path, name string, v Value) error {
	pr, err := s.lookup(p)
	if err != nil {
		return err
	}
	if err := v.check(); err != nil {
		return fmt.Errorf("%s.%s: %w", p, name, err)
	}
	var stored Value
	if err := deepcopy.Copy(&stored, &v); err != nil {
		return fmt.Errorf("%s.%s: %w", p, name, err)
	}
	a := pr.attr(name)
	a.Default = &stored
	a.Samples = nil
	return nil
}

// SetTimeSamples replaces the samples of an attribute and drops its default.
func (s *Stage) SetTimeSamples(p Path, name string, samples []TimeSample) error {
	pr, err := s.lookup(p)
	if err != nil {
		return err
	}
	for i, ts := range samples {
		if err := ts.Value.check(); err != nil {
			return fmt.Errorf("%s.%s sample %d: %w", p, name, i, err)
		}
		if i > 0 && ts.Time <= samples[i-1].Time {
			return fmt.Errorf("%s.%s: %w: %v after %v", p, name, ErrUnsortedSamples, ts.Time, samples[i-1].Time)
		}
	}
	var stored []TimeSample
	if err := deepcopy.Copy(&stored, &samples); err != nil {
		return fmt.Errorf("%s.%s: %w", p, name, err)
	}
	a := pr.attr(name)
	a.Default = nil
	a.Samples = stored
	return nil
}

func (s *Stage) SetRelationship(p Path, name string, targets ...Path) error {
	pr, err := s.lookup(p)
	if err != nil {
		return err
	}
	if _, ok := pr.rels[name]; !ok {
		pr.relNames = append(pr.relNames, name)
	}
	pr.rels[name] = slices.Clone(targets)
	return nil
}

// Walk visits Root's descendants depth-first in authoring order.
func (s *Stage) Walk(fn func(p Path)) {
	stack := slices.Clone(s.prims[Root].children)
	slices.Reverse(stack)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		fn(p)
		children := s.prims[p].children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, children[i])
		}
	}
}

func (s *Stage) lookup(p Path) (*prim, error) {
	pr, ok := s.prims[p]
	if !ok || p == Root {
		return nil, fmt.Errorf("%w: %s", ErrPrimNotFound, p)
	}
	return pr, nil
}

func (pr *prim) attr(name string) *Attribute {
	a, ok := pr.attrs[name]
	if !ok {
		a = &Attribute{Name: name}
		pr.attrs[name] = a
		pr.attrNames = append(pr.attrNames, name)
	}
	return a
}
