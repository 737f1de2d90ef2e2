package ids

// Resizable is implemented by every GraphArray so that an owning graph can
// resize all of its registered arrays in one pass when the highest-issued id
// grows. Grounded on original_source/graph/grapharray.h's
// ResizableGraphArray interface.
type Resizable interface {
	Resize(size int)
}

// Index is any of NodeId, EdgeId, ComponentId: the dense handle types a
// GraphArray can be keyed by.
type Index interface {
	~uint32
}

// GraphArray is a densely indexed, automatically resized container keyed by
// an id of kind I, holding values of type E. It mirrors
// original_source/graph/grapharray.h's template, generalised with Go
// generics; NodeArray/EdgeArray in package graph instantiate
// it and handle registration against the owning graph.
type GraphArray[I Index, E any] struct {
	values []E
}

// NewGraphArray creates an array of the given initial size (typically the
// owning allocator's current HighWater).
func NewGraphArray[I Index, E any](size int) *GraphArray[I, E] {
	return &GraphArray[I, E]{values: make([]E, size)}
}

// Resize grows (or shrinks) the backing slice to size, preserving existing
// entries. Implements Resizable.
func (a *GraphArray[I, E]) Resize(size int) {
	if size <= len(a.values) {
		a.values = a.values[:size]
		return
	}
	grown := make([]E, size)
	copy(grown, a.values)
	a.values = grown
}

// Size returns the current backing length.
func (a *GraphArray[I, E]) Size() int { return len(a.values) }

// Get returns the value stored at id.
func (a *GraphArray[I, E]) Get(id I) E { return a.values[uint32(id)] }

// Set stores value at id.
func (a *GraphArray[I, E]) Set(id I, value E) { a.values[uint32(id)] = value }

// Fill overwrites every slot with value.
func (a *GraphArray[I, E]) Fill(value E) {
	for i := range a.values {
		a.values[i] = value
	}
}

// Range calls fn for every currently-sized slot, in index order.
func (a *GraphArray[I, E]) Range(fn func(id I, value E)) {
	for i, v := range a.values {
		fn(I(uint32(i)), v)
	}
}

// ElementIdArray maps ids of kind I to ids of kind E, e.g. head-of-merge-set
// lookups (NodeId -> NodeId) or component membership (NodeId -> ComponentId).
type ElementIdArray[I Index, E Index] struct {
	*GraphArray[I, E]
}

// NewElementIdArray creates an ElementIdArray of the given size, with every
// slot initialised to Null.
func NewElementIdArray[I Index, E Index](size int) *ElementIdArray[I, E] {
	a := &ElementIdArray[I, E]{GraphArray: NewGraphArray[I, E](size)}
	a.Fill(E(Null))
	return a
}
