package scene

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// stageFile is the YAML layout of a stage. Prims are listed depth-first so
// every parent precedes its children.
type stageFile struct {
	DefaultPrim Path       `yaml:"defaultPrim,omitempty"`
	Prims       []primFile `yaml:"prims"`
}

type primFile struct {
	Path          Path           `yaml:"path"`
	Type          string         `yaml:"type,omitempty"`
	APISchemas    []string       `yaml:"apiSchemas,flow,omitempty"`
	Attributes    []Attribute    `yaml:"attributes,omitempty"`
	Relationships []relationship `yaml:"relationships,omitempty"`
}

type relationship struct {
	Name    string `yaml:"name"`
	Targets []Path `yaml:"targets,flow"`
}

// Encode writes the stage as YAML.
func (s *Stage) Encode(w io.Writer) error {
	doc := stageFile{DefaultPrim: s.defaultPrim}
	s.Walk(func(p Path) {
		pr := s.prims[p]
		pf := primFile{Path: p, Type: pr.typeName, APISchemas: pr.apis}
		for _, name := range pr.attrNames {
			pf.Attributes = append(pf.Attributes, *pr.attrs[name])
		}
		for _, name := range pr.relNames {
			pf.Relationships = append(pf.Relationships, relationship{Name: name, Targets: pr.rels[name]})
		}
		doc.Prims = append(doc.Prims, pf)
	})

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return fmt.Errorf("encoding stage: %w", err)
	}
	return enc.Close()
}

// Decode reads a stage written by Encode.
func Decode(r io.Reader) (*Stage, error) {
	var doc stageFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decoding stage: %w", err)
	}

	s := NewStage()
	for i, pf := range doc.Prims {
		if err := s.Define(pf.Path, pf.Type); err != nil {
			return nil, fmt.Errorf("prim %d: %w", i, err)
		}
		for _, api := range pf.APISchemas {
			if err := s.ApplyAPI(pf.Path, api); err != nil {
				return nil, err
			}
		}
		for _, a := range pf.Attributes {
			if err := s.decodeAttribute(pf.Path, a); err != nil {
				return nil, err
			}
		}
		for _, rel := range pf.Relationships {
			if err := s.SetRelationship(pf.Path, rel.Name, rel.Targets...); err != nil {
				return nil, err
			}
		}
	}

	if doc.DefaultPrim != "" {
		if err := s.SetDefaultPrim(doc.DefaultPrim); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Stage) decodeAttribute(p Path, a Attribute) error {
	switch {
	case len(a.Samples) > 0:
		return s.SetTimeSamples(p, a.Name, a.Samples)
	case a.Default != nil:
		return s.SetAttribute(p, a.Name, *a.Default)
	}
	return nil
}

// Open loads a stage from a YAML file.
func Open(path string) (*Stage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return s, nil
}

// Save writes the stage to path, creating parent directories as needed.
func (s *Stage) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
