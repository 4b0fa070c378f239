package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDuplicateMethod is returned for a unit declaring the same name and
// descriptor twice. Candidates in both bodies would share identifiers.
var ErrDuplicateMethod = errors.New("duplicate method")

// Path represents a file system path.
type Path string

// Method is one method body of a unit.
type Method struct {
	Name        string
	Descriptor  string
	Annotations []string
	Code        []Instruction
}

// Unit is a processed unit: one compiled class and its methods.
type Unit struct {
	// Name is the internal (slash separated) class name, e.g. com/example/Foo.
	Name        string
	SourceFile  string
	Annotations []string
	Methods     []Method
	// Origin is the file the unit was loaded from, empty for in-memory units.
	Origin Path
}

// ClassName returns the dotted form of the unit name.
func (u Unit) ClassName() string {
	return strings.ReplaceAll(u.Name, "/", ".")
}

// CheckMethods returns ErrDuplicateMethod when two methods share a name and
// descriptor.
func (u Unit) CheckMethods() error {
	seen := make(map[string]struct{}, len(u.Methods))

	for _, method := range u.Methods {
		key := method.Name + method.Descriptor
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: %s.%s", ErrDuplicateMethod, u.ClassName(), key)
		}

		seen[key] = struct{}{}
	}

	return nil
}

// Clone returns a deep copy whose instruction slices can be rewritten freely.
func (u Unit) Clone() Unit {
	out := u
	out.Annotations = append([]string(nil), u.Annotations...)
	out.Methods = make([]Method, len(u.Methods))

	for i, method := range u.Methods {
		out.Methods[i] = method.Clone()
	}

	return out
}

// Clone returns a deep copy of the method.
func (m Method) Clone() Method {
	out := m
	out.Annotations = append([]string(nil), m.Annotations...)
	out.Code = append([]Instruction(nil), m.Code...)

	return out
}

// HasAnnotation reports whether name is present, ignoring a leading '@' and
// any package qualifier.
func HasAnnotation(annotations []string, name string) bool {
	for _, a := range annotations {
		if simpleAnnotationName(a) == simpleAnnotationName(name) {
			return true
		}
	}

	return false
}

func simpleAnnotationName(a string) string {
	a = strings.TrimPrefix(strings.TrimSpace(a), "@")
	if i := strings.LastIndexAny(a, "./$"); i >= 0 {
		a = a[i+1:]
	}

	return strings.ToLower(a)
}
