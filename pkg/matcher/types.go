package matcher

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// Type is a node in the type hierarchy used by BeInstanceOf and
// BeA. Concrete Go types are leaves; classes group them.
type Type interface {
	// Name is the display name of the type.
	Name() string

	// IsExactly reports whether t is precisely this type.
	IsExactly(t reflect.Type) bool

	// Accepts reports whether values of type t are instances of
	// this type or of one of its descendants.
	Accepts(t reflect.Type) bool
}

type goType struct {
	rt reflect.Type
}

// TypeFor returns the Type for T. Interface types accept every
// type that implements them.
func TypeFor[T any]() Type {
	return goType{rt: reflect.TypeFor[T]()}
}

// TypeOf returns the dynamic Type of v.
func TypeOf(v any) Type {
	return goType{rt: reflect.TypeOf(v)}
}

func (g goType) Name() string {
	if g.rt == nil {
		return "nil"
	}
	return g.rt.String()
}

func (g goType) IsExactly(t reflect.Type) bool {
	return g.rt != nil && t == g.rt
}

func (g goType) Accepts(t reflect.Type) bool {
	if g.rt == nil || t == nil {
		return false
	}
	if t == g.rt {
		return true
	}
	if g.rt.Kind() == reflect.Interface {
		return t.Implements(g.rt)
	}
	return t.AssignableTo(g.rt)
}

// Class is an abstract type: it has no instances of its own and
// accepts the types it groups.
type Class struct {
	name    string
	accepts func(reflect.Type) bool
}

// NewClass creates a class whose descendants are the given types
// and everything they accept.
func NewClass(name string, members ...Type) *Class {
	return &Class{
		name: name,
		accepts: func(t reflect.Type) bool {
			for _, m := range members {
				if m.Accepts(t) {
					return true
				}
			}
			return false
		},
	}
}

// NewKindClass creates a class accepting every type whose
// underlying kind is one of kinds.
func NewKindClass(name string, kinds ...reflect.Kind) *Class {
	set := make(map[reflect.Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return &Class{
		name: name,
		accepts: func(t reflect.Type) bool {
			return t != nil && set[t.Kind()]
		},
	}
}

func (c *Class) Name() string { return c.name }

// IsExactly is always false: a class is never a value's concrete
// type.
func (c *Class) IsExactly(reflect.Type) bool { return false }

func (c *Class) Accepts(t reflect.Type) bool { return c.accepts(t) }

var (
	// Integer groups the signed and unsigned integer kinds.
	Integer = NewKindClass("Integer",
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Int64, reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Uintptr,
	)

	// FloatingPoint groups float32 and float64 kinds.
	FloatingPoint = NewKindClass("FloatingPoint",
		reflect.Float32, reflect.Float64,
	)

	// Complex groups the complex kinds.
	Complex = NewKindClass("Complex",
		reflect.Complex64, reflect.Complex128,
	)

	// Numeric is the root of the number hierarchy.
	Numeric = NewClass("Numeric", Integer, FloatingPoint, Complex)
)

var (
	typesMu    sync.RWMutex
	namedTypes = map[string]Type{
		"int":            TypeFor[int](),
		"int8":           TypeFor[int8](),
		"int16":          TypeFor[int16](),
		"int32":          TypeFor[int32](),
		"int64":          TypeFor[int64](),
		"uint":           TypeFor[uint](),
		"uint8":          TypeFor[uint8](),
		"uint16":         TypeFor[uint16](),
		"uint32":         TypeFor[uint32](),
		"uint64":         TypeFor[uint64](),
		"float32":        TypeFor[float32](),
		"float64":        TypeFor[float64](),
		"string":         TypeFor[string](),
		"bool":           TypeFor[bool](),
		"error":          TypeFor[error](),
		"map":            NewKindClass("Map", reflect.Map),
		"slice":          NewKindClass("Slice", reflect.Slice),
		"integer":        Integer,
		"floating_point": FloatingPoint,
		"complex":        Complex,
		"numeric":        Numeric,
	}
)

// LookupType resolves a type by its declarative name, e.g.
// "float64" or "numeric". Names are case-insensitive.
func LookupType(name string) (Type, bool) {
	typesMu.RLock()
	defer typesMu.RUnlock()
	t, ok := namedTypes[strings.ToLower(strings.TrimSpace(name))]
	return t, ok
}

// RegisterType makes t resolvable by name. Returns an error if the
// name is taken.
func RegisterType(name string, t Type) error {
	key := strings.ToLower(strings.TrimSpace(name))

	typesMu.Lock()
	defer typesMu.Unlock()

	if _, exists := namedTypes[key]; exists {
		return fmt.Errorf("type already registered: %s", name)
	}
	namedTypes[key] = t
	return nil
}

type typeMatcher struct {
	t     Type
	exact bool
}

// BeInstanceOf matches subjects whose concrete type is exactly t.
// Classes and interfaces never match.
func BeInstanceOf(t Type) Matcher {
	return &typeMatcher{t: t, exact: true}
}

// BeA matches subjects that are instances of t or of any of its
// descendants, including types implementing an interface t.
func BeA(t Type) Matcher {
	return &typeMatcher{t: t}
}

// BeAn is BeA.
func BeAn(t Type) Matcher { return BeA(t) }

// BeKindOf is BeA.
func BeKindOf(t Type) Matcher { return BeA(t) }

func (m *typeMatcher) Name() string {
	if m.exact {
		return "be_an_instance_of"
	}
	return "be_a"
}

func (m *typeMatcher) Match(subject any) (bool, error) {
	rt := reflect.TypeOf(subject)
	if rt == nil {
		return false, nil
	}
	if m.exact {
		return m.t.IsExactly(rt), nil
	}
	return m.t.Accepts(rt), nil
}

func (m *typeMatcher) Describe(subject any, negated bool) string {
	return fmt.Sprintf(
		"%s (its type is %s)",
		expectation(subject, negated, m.String()),
		TypeOf(subject).Name(),
	)
}

func (m *typeMatcher) String() string {
	if m.exact {
		return "be an instance of " + m.t.Name()
	}
	return "be a kind of " + m.t.Name()
}
