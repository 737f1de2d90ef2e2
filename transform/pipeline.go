package transform

import (
	"context"
	"fmt"

	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/internal/workerpool"
	"github.com/rs/zerolog"
)

// StepResult reports what one pipeline position did, used for progress
// reporting (§4.3: "progress is reported as (position, total)").
type StepResult struct {
	Position  int
	Total     int
	CacheHit  bool
	Alerts    []Alert
}

// Pipeline runs an ordered list of TransformConfig steps against a graph,
// consulting a Cache at each position and aborting on the first Error-level
// Alert (§4.3).
type Pipeline struct {
	Steps    []TransformConfig
	Registry *attribute.Registry
	Cache    *Cache
	Pool     *workerpool.Pool
	log      zerolog.Logger
}

// NewPipeline creates a Pipeline over the given attribute registry, with
// its own cache and worker pool.
func NewPipeline(reg *attribute.Registry, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		Registry: reg,
		Cache:    NewCache(),
		Pool:     workerpool.New(),
		log:      log,
	}
}

// Run executes the pipeline's steps in order against a copy of input,
// reporting progress via onProgress (which may be nil), and returns the
// resulting graph together with the AlertList accumulated across steps. A
// step that raises an Error-level alert stops the pipeline at that step,
// and the last graph known consistent (the input to the failing step) is
// returned, per the "committed only up to the last successful step"
// semantics of §4.3.
func (p *Pipeline) Run(ctx context.Context, input *graph.MutableGraph, onProgress func(StepResult)) (*graph.MutableGraph, *AlertList, error) {
	alerts := &AlertList{}
	current := cloneGraph(input)
	inputDigest := ComputeDigest(current)

	for position, cfg := range p.Steps {
		select {
		case <-ctx.Done():
			return current, alerts, ctx.Err()
		default:
		}

		if cached, added, changed, ok := p.Cache.Lookup(position, cfg, inputDigest); ok {
			current = cached
			inputDigest, _ = p.Cache.OutputDigestAt(position)
			p.log.Debug().Int("position", position).Str("action", string(cfg.Action)).Msg("cache hit")
			if onProgress != nil {
				onProgress(StepResult{Position: position, Total: len(p.Steps), CacheHit: true})
			}
			_ = added
			_ = changed
			continue
		}

		added, changed, err := p.applyStep(ctx, current, cfg)
		if err != nil {
			alerts.Add(Error, fmt.Sprintf("step %d (%s): %v", position, cfg.Action, err))
			return current, alerts, err
		}

		p.Cache.Store(position, cfg, inputDigest, current, added, changed)
		inputDigest = ComputeDigest(current)

		if onProgress != nil {
			onProgress(StepResult{Position: position, Total: len(p.Steps), CacheHit: false, Alerts: alerts.All()})
		}
		if alerts.HasError() {
			return current, alerts, fmt.Errorf("%w: step %d raised an error alert", ErrBadCondition, position)
		}
	}
	return current, alerts, nil
}

// applyStep mutates g in place according to cfg and returns the names of
// attributes it added or changed.
func (p *Pipeline) applyStep(ctx context.Context, g *graph.MutableGraph, cfg TransformConfig) (added, changed []string, err error) {
	resolver := newGraphResolver(g, p.Registry)

	switch cfg.Action {
	case ActionFilterNode:
		predicate, cerr := Compile(cfg.Condition, resolver)
		if cerr != nil {
			return nil, nil, cerr
		}
		return nil, nil, runFilterNode(g, predicate, cfg.HasFlag(Invert))

	case ActionFilterEdge:
		predicate, cerr := Compile(cfg.Condition, resolver)
		if cerr != nil {
			return nil, nil, cerr
		}
		return nil, nil, runFilterEdge(g, predicate, cfg.HasFlag(Invert))

	case ActionFilterComponent:
		predicate, cerr := Compile(cfg.Condition, resolver)
		if cerr != nil {
			return nil, nil, cerr
		}
		componentOf := localComponentIndex(g)
		return nil, nil, runFilterComponent(g, componentOf, predicate, cfg.HasFlag(Invert))

	case ActionContractEdges:
		predicate, cerr := Compile(cfg.Condition, resolver)
		if cerr != nil {
			return nil, nil, cerr
		}
		return nil, nil, runContractEdges(g, predicate)

	case ActionSynthesise:
		elementType, elementIds := synthesiseTargets(g, cfg)
		if err := runSynthesiseAttribute(p.Registry, cfg, elementType, elementIds, resolver); err != nil {
			return nil, nil, err
		}
		return []string{cfg.NewAttributeName}, nil, nil

	case ActionPageRank:
		if err := runPageRank(ctx, p.Registry, g, p.Pool); err != nil {
			return nil, nil, err
		}
		return []string{"pagerank"}, nil, nil

	case ActionEccentricity:
		if err := runEccentricity(ctx, p.Registry, g, p.Pool); err != nil {
			return nil, nil, err
		}
		return []string{"eccentricity"}, nil, nil

	case ActionMCL:
		return nil, nil, runMCL(g)

	case ActionKCore:
		k := int(cfg.Parameters["k"].Number)
		runKCore(g, k)
		return nil, nil, nil

	case ActionGiantComponent:
		runGiantComponent(g)
		return nil, nil, nil

	case ActionRemoveLeaves:
		runRemoveLeaves(g, cfg.HasFlag(Repeating))
		return nil, nil, nil

	default:
		return nil, nil, fmt.Errorf("%w: unknown action %q", ErrBadCondition, cfg.Action)
	}
}

// synthesiseTargets picks the element-id universe a synthesise step writes
// over: always the graph's live (head) nodes. cfg is not consulted, and
// edges are never chosen.
func synthesiseTargets(g *graph.MutableGraph, cfg TransformConfig) (attribute.ElementType, []uint32) {
	nodeIds := g.NodeIds()
	out := make([]uint32, len(nodeIds))
	for i, n := range nodeIds {
		out[i] = uint32(n)
	}
	return attribute.Node, out
}

// localComponentIndex computes a disposable per-call component id (as the
// index of each node's union-find root) for ActionFilterComponent, without
// requiring a live component.ComponentManager to be wired into the
// pipeline.
func localComponentIndex(g *graph.MutableGraph) func(ids.NodeId) uint32 {
	nodeIds := g.NodeIds()
	n := len(nodeIds)
	index := make(map[ids.NodeId]int, n)
	for i, id := range nodeIds {
		index[id] = i
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for _, e := range g.EdgeIds() {
		src, tgt := g.Endpoints(e)
		union(index[g.HeadOf(src)], index[g.HeadOf(tgt)])
	}
	return func(n ids.NodeId) uint32 {
		i, ok := index[n]
		if !ok {
			return 0
		}
		return uint32(find(i))
	}
}
