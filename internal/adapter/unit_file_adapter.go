package adapter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	m "bytemut.dev/pkg/bytemut/internal/model"
)

// UnitFileAdapter converts between unit files and the in-memory unit model so
// the domain layer never deals with the file format.
type UnitFileAdapter interface {
	// Decode parses a unit file. origin is recorded on the unit and used in errors.
	Decode(origin m.Path, content []byte) (m.Unit, error)
	// Encode renders a unit in the same format Decode accepts.
	Encode(unit m.Unit) ([]byte, error)
}

// unitDocument is the on-disk shape of a unit file:
//
//	class: com/example/Account
//	source: Account.java
//	annotations: [Generated]
//	methods:
//	  - name: check
//	    descriptor: (I)Z
//	    code:
//	      - LINE 10
//	      - IFEQ L1
type unitDocument struct {
	Class       string           `yaml:"class"`
	Source      string           `yaml:"source,omitempty"`
	Annotations []string         `yaml:"annotations,omitempty"`
	Methods     []methodDocument `yaml:"methods"`
}

type methodDocument struct {
	Name        string   `yaml:"name"`
	Descriptor  string   `yaml:"descriptor"`
	Annotations []string `yaml:"annotations,omitempty"`
	Code        []string `yaml:"code"`
}

// LocalUnitFileAdapter is the YAML implementation of UnitFileAdapter.
type LocalUnitFileAdapter struct{}

// NewLocalUnitFileAdapter constructs a LocalUnitFileAdapter.
func NewLocalUnitFileAdapter() *LocalUnitFileAdapter {
	return &LocalUnitFileAdapter{}
}

// Decode implements UnitFileAdapter.
func (a *LocalUnitFileAdapter) Decode(origin m.Path, content []byte) (m.Unit, error) {
	var doc unitDocument

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	if err := decoder.Decode(&doc); err != nil {
		return m.Unit{}, fmt.Errorf("decode %s: %w", origin, err)
	}

	if doc.Class == "" {
		return m.Unit{}, fmt.Errorf("decode %s: missing class", origin)
	}

	unit := m.Unit{
		Name:        doc.Class,
		SourceFile:  doc.Source,
		Annotations: doc.Annotations,
		Methods:     make([]m.Method, 0, len(doc.Methods)),
		Origin:      origin,
	}

	for _, md := range doc.Methods {
		if md.Name == "" {
			return m.Unit{}, fmt.Errorf("decode %s: method without name", origin)
		}

		code, err := m.ParseListing(md.Code)
		if err != nil {
			return m.Unit{}, fmt.Errorf("decode %s: method %s%s: %w", origin, md.Name, md.Descriptor, err)
		}

		unit.Methods = append(unit.Methods, m.Method{
			Name:        md.Name,
			Descriptor:  md.Descriptor,
			Annotations: md.Annotations,
			Code:        code,
		})
	}

	if err := unit.CheckMethods(); err != nil {
		return m.Unit{}, fmt.Errorf("decode %s: %w", origin, err)
	}

	return unit, nil
}

// Encode implements UnitFileAdapter.
func (a *LocalUnitFileAdapter) Encode(unit m.Unit) ([]byte, error) {
	doc := unitDocument{
		Class:       unit.Name,
		Source:      unit.SourceFile,
		Annotations: unit.Annotations,
		Methods:     make([]methodDocument, 0, len(unit.Methods)),
	}

	for _, method := range unit.Methods {
		doc.Methods = append(doc.Methods, methodDocument{
			Name:        method.Name,
			Descriptor:  method.Descriptor,
			Annotations: method.Annotations,
			Code:        m.Listing(method.Code),
		})
	}

	var buf bytes.Buffer

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode %s: %w", unit.Name, err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", unit.Name, err)
	}

	return buf.Bytes(), nil
}
