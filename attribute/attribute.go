// Package attribute implements the named, typed attribute registry
// (component D of the spec): value functions over nodes/edges/components,
// plus min/max/shared-value bookkeeping.
package attribute

import (
	"errors"
	"fmt"
	"regexp"
)

var nameRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_ ]*$`)

// Sentinel errors.
var (
	ErrInvalidName = errors.New("attribute: name does not match [A-Za-z_][A-Za-z0-9_ ]*")
	ErrDuplicate   = errors.New("attribute: name already registered")
	ErrNotFound    = errors.New("attribute: not found")
)

// ElementType is the kind of graph element an Attribute is defined over.
type ElementType int

const (
	None ElementType = iota
	Node
	Edge
	Component
)

// ValueType is the scalar type an Attribute's values take.
type ValueType int

const (
	Int ValueType = iota
	Float
	String
)

// Flag is one of the boolean behavior toggles an Attribute can carry.
type Flag string

const (
	FindShared           Flag = "FindShared"
	Searchable           Flag = "Searchable"
	VisualiseByComponent Flag = "VisualiseByComponent"
	AutoRange            Flag = "AutoRange"
)

// Value is a tagged union holding one of Int/Float/String, matching
// ValueType.
type Value struct {
	Type   ValueType
	Int    int64
	Float  float64
	String string
}

func IntValue(v int64) Value      { return Value{Type: Int, Int: v} }
func FloatValue(v float64) Value  { return Value{Type: Float, Float: v} }
func StringValue(v string) Value  { return Value{Type: String, String: v} }

// AsFloat coerces any Value to a float64 for numeric comparisons
// (condition evaluation, range bookkeeping); strings coerce to 0.
func (v Value) AsFloat() float64 {
	switch v.Type {
	case Int:
		return float64(v.Int)
	case Float:
		return v.Float
	default:
		return 0
	}
}

func (v Value) String2() string {
	switch v.Type {
	case String:
		return v.String
	case Int:
		return fmt.Sprintf("%d", v.Int)
	default:
		return fmt.Sprintf("%g", v.Float)
	}
}

// ValueFunc maps an element id (NodeId/EdgeId/ComponentId as a raw uint32)
// to a Value. MissingFunc, if non-nil, reports whether the element has no
// meaningful value (e.g. an attribute synthesised only for a subset).
type ValueFunc func(id uint32) Value
type MissingFunc func(id uint32) bool

// Range holds an explicit or auto-computed numeric range.
type Range struct {
	Min, Max float64
	Valid    bool
}

// Attribute is a named, typed value function over nodes, edges, or
// components, per §3.
type Attribute struct {
	Name        string
	Elements    ElementType
	ValueType   ValueType
	Range       Range
	flags       map[Flag]bool
	valueFn     ValueFunc
	missingFn   MissingFunc
}

// HasFlag reports whether f is set on this Attribute.
func (a *Attribute) HasFlag(f Flag) bool { return a.flags[f] }

// Value returns the attribute's value for id.
func (a *Attribute) Value(id uint32) Value { return a.valueFn(id) }

// IsMissing reports whether id has no meaningful value for this attribute.
func (a *Attribute) IsMissing(id uint32) bool {
	if a.missingFn == nil {
		return false
	}
	return a.missingFn(id)
}

// Registry is an insertion-ordered, name-keyed store of Attributes.
type Registry struct {
	order []string
	byName map[string]*Attribute
}

// NewRegistry creates an empty attribute registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Attribute)}
}

// Builder accumulates fields for Register.
type Builder struct {
	name      string
	elements  ElementType
	valueType ValueType
	rng       Range
	flags     map[Flag]bool
	valueFn   ValueFunc
	missingFn MissingFunc
}

// NewAttribute starts building an Attribute named name, over the given
// element type and value type. The value function must be supplied via
// WithValueFunc before Register.
func NewAttribute(name string, elements ElementType, valueType ValueType) *Builder {
	return &Builder{name: name, elements: elements, valueType: valueType, flags: make(map[Flag]bool)}
}

func (b *Builder) WithValueFunc(fn ValueFunc) *Builder { b.valueFn = fn; return b }
func (b *Builder) WithMissingFunc(fn MissingFunc) *Builder { b.missingFn = fn; return b }
func (b *Builder) WithRange(min, max float64) *Builder {
	b.rng = Range{Min: min, Max: max, Valid: true}
	return b
}
func (b *Builder) WithFlags(flags ...Flag) *Builder {
	for _, f := range flags {
		b.flags[f] = true
	}
	return b
}

// Register validates and inserts the built Attribute into reg, returning
// ErrInvalidName, ErrDuplicate, or the registered *Attribute.
func (reg *Registry) Register(b *Builder) (*Attribute, error) {
	if !nameRE.MatchString(b.name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, b.name)
	}
	if _, exists := reg.byName[b.name]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicate, b.name)
	}
	if b.valueFn == nil {
		b.valueFn = func(uint32) Value { return Value{} }
	}
	attr := &Attribute{
		Name:      b.name,
		Elements:  b.elements,
		ValueType: b.valueType,
		Range:     b.rng,
		flags:     b.flags,
		valueFn:   b.valueFn,
		missingFn: b.missingFn,
	}
	reg.byName[b.name] = attr
	reg.order = append(reg.order, b.name)
	return attr, nil
}

// Remove deletes the attribute named name, if present (e.g. when a
// transform adding it is removed and the pipeline replays, §3).
func (reg *Registry) Remove(name string) {
	if _, ok := reg.byName[name]; !ok {
		return
	}
	delete(reg.byName, name)
	for i, n := range reg.order {
		if n == name {
			reg.order = append(reg.order[:i], reg.order[i+1:]...)
			break
		}
	}
}

// Get returns the attribute named name, or ErrNotFound.
func (reg *Registry) Get(name string) (*Attribute, error) {
	attr, ok := reg.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return attr, nil
}

// Names returns attribute names in registration order.
func (reg *Registry) Names() []string {
	out := make([]string, len(reg.order))
	copy(out, reg.order)
	return out
}

// NamesFor returns, in registration order, the names of attributes defined
// over the given element type.
func (reg *Registry) NamesFor(elements ElementType) []string {
	var out []string
	for _, name := range reg.order {
		if reg.byName[name].Elements == elements {
			out = append(out, name)
		}
	}
	return out
}

// SharedValue returns the value shared by every id in ids for attribute
// name, and true, if all ids agree and the attribute carries FindShared;
// otherwise returns the zero Value and false.
func (reg *Registry) SharedValue(name string, elementIds []uint32) (Value, bool) {
	attr, err := reg.Get(name)
	if err != nil || !attr.HasFlag(FindShared) || len(elementIds) == 0 {
		return Value{}, false
	}
	first := attr.Value(elementIds[0])
	for _, id := range elementIds[1:] {
		if attr.Value(id) != first {
			return Value{}, false
		}
	}
	return first, true
}

// ComputeAutoRange scans every id in elementIds and returns the observed
// min/max for attribute name, used when the AutoRange flag is set instead
// of an explicit Range.
func (reg *Registry) ComputeAutoRange(name string, elementIds []uint32) (Range, error) {
	attr, err := reg.Get(name)
	if err != nil {
		return Range{}, err
	}
	if len(elementIds) == 0 {
		return Range{}, nil
	}
	min := attr.Value(elementIds[0]).AsFloat()
	max := min
	for _, id := range elementIds[1:] {
		v := attr.Value(id).AsFloat()
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return Range{Min: min, Max: max, Valid: true}, nil
}
