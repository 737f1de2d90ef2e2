package transform

import (
	"fmt"

	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// graphResolver implements Resolver by checking the attribute registry
// first, then a small set of built-in structural pseudo-attributes
// ($degree, $weight) computed directly from the working graph, matching
// scenario 2 of §8 ("filter node where $degree < 2").
type graphResolver struct {
	g    *graph.MutableGraph
	reg  *attribute.Registry
}

func newGraphResolver(g *graph.MutableGraph, reg *attribute.Registry) *graphResolver {
	return &graphResolver{g: g, reg: reg}
}

func (r *graphResolver) Resolve(name string, id uint32) (attribute.Value, error) {
	switch name {
	case "$degree":
		return attribute.IntValue(int64(r.g.Degree(ids.NodeId(id)))), nil
	case "$weight":
		attr, err := r.reg.Get("weight")
		if err == nil {
			return attr.Value(id), nil
		}
		return attribute.FloatValue(1), nil
	default:
		attr, err := r.reg.Get(name)
		if err != nil {
			return attribute.Value{}, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
		}
		return attr.Value(id), nil
	}
}
