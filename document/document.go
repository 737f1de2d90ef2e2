// Package document is the single owner (Design Notes §9) binding every
// other package into one cohesive session: the mutable graph, its
// incrementally-maintained component table, the attribute registry, the
// transform pipeline, per-node layout positions and per-component
// force-directed layouts, component packing, the selection set, one
// camera per component plus a default, and the ambient logging/config
// wiring. The original's Graph and ComponentManager held back-pointers to
// each other; here Document owns both and is the only thing that calls
// across the seam, which keeps each package's dependency graph acyclic.
package document

import (
	"context"
	"fmt"

	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/camera"
	"github.com/graphia-app/graphia-sub005/component"
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/internal/config"
	"github.com/graphia-app/graphia-sub005/internal/logging"
	"github.com/graphia-app/graphia-sub005/internal/workerpool"
	"github.com/graphia-app/graphia-sub005/layout/forcedirected"
	"github.com/graphia-app/graphia-sub005/layout/packing"
	"github.com/graphia-app/graphia-sub005/layout/positions"
	"github.com/graphia-app/graphia-sub005/selection"
	"github.com/graphia-app/graphia-sub005/transform"
	"github.com/graphia-app/graphia-sub005/view"
	"github.com/rs/zerolog"
)

// Document is a single loaded graph together with every piece of state a
// session over it needs: topology, derived attributes, the transform
// pipeline and its committed TransformedGraph view, layout, packing,
// selection and cameras.
type Document struct {
	source     *graph.MutableGraph
	components *component.ComponentManager
	registry   *attribute.Registry
	pipeline   *transform.Pipeline
	view       *view.TransformedGraph

	pool *workerpool.Pool
	log  zerolog.Logger
	cfg  config.Defaults

	positions *positions.NodePositions
	layouts   map[ids.ComponentId]*forcedirected.Layout
	placement packing.Placement

	sel *selection.NodeIdSet

	defaultCamera *camera.Camera
	cameras       map[ids.ComponentId]*camera.Camera

	alerts          []DocumentAlert
	onAlertsChanged []func([]DocumentAlert)
}

// New creates an empty Document: no nodes, no transform steps, a default
// camera, and logging/config sourced from cfg (the zero Defaults is a
// valid starting point).
func New(cfg config.Defaults) *Document {
	g := graph.New()
	log := logging.New(nil, "document")

	pool := workerpool.New()
	if cfg.LayoutThreads > 0 {
		pool = workerpool.NewSized(cfg.LayoutThreads)
	}

	reg := attribute.NewRegistry()
	cm := component.New(g)

	d := &Document{
		source:        g,
		components:    cm,
		registry:      reg,
		pipeline:      transform.NewPipeline(reg, logging.New(nil, "pipeline")),
		view:          view.New(),
		pool:          pool,
		log:           log,
		cfg:           cfg,
		positions:     positions.New(g),
		layouts:       make(map[ids.ComponentId]*forcedirected.Layout),
		sel:           selection.New(),
		defaultCamera: camera.New(),
		cameras:       make(map[ids.ComponentId]*camera.Camera),
	}

	cm.OnComponentAdded(func(c ids.ComponentId) {
		d.cameras[c] = camera.New()
	})
	cm.OnComponentRemoved(func(c ids.ComponentId) {
		delete(d.cameras, c)
		delete(d.layouts, c)
	})
	cm.OnComponentsWillMerge(func(losers []ids.ComponentId, winner ids.ComponentId) {
		for _, l := range losers {
			delete(d.cameras, l)
			delete(d.layouts, l)
		}
	})

	return d
}

// Graph returns the underlying mutable graph that AddNode/AddEdge/RemoveNode
// calls made through the document-level mutators below operate on.
func (d *Document) Graph() *graph.MutableGraph { return d.source }

// Components returns the live component manager.
func (d *Document) Components() *component.ComponentManager { return d.components }

// Registry returns the attribute registry shared by every attribute a
// loader, a transform step, or an adapter registers.
func (d *Document) Registry() *attribute.Registry { return d.registry }

// Selection returns the document's selection set.
func (d *Document) Selection() *selection.NodeIdSet { return d.sel }

// View returns the committed transform-pipeline output graph.
func (d *Document) View() *view.TransformedGraph { return d.view }

// AddNode adds a node to the underlying graph and informs the component
// manager, matching the single-owner call order Design Notes §9 requires:
// mutate the graph, then tell ComponentManager what happened.
func (d *Document) AddNode() ids.NodeId {
	n := d.source.AddNode()
	d.components.OnNodeAdded(n)
	return n
}

// AddEdge adds an edge between src and tgt and informs the component
// manager, possibly triggering a merge of their components.
func (d *Document) AddEdge(src, tgt ids.NodeId) ids.EdgeId {
	e := d.source.AddEdge(src, tgt)
	d.components.OnEdgeAdded(src, tgt)
	return e
}

// RemoveEdge removes e, informing the component manager so it can
// repartition the owning component if e was a bridge.
func (d *Document) RemoveEdge(ctx context.Context, e ids.EdgeId) error {
	src, tgt := d.source.Endpoints(e)
	d.source.RemoveEdge(e)
	return d.components.OnEdgeRemoved(ctx, src, tgt, func(n ids.NodeId) []ids.NodeId {
		var out []ids.NodeId
		for _, oe := range d.source.OutEdges(n) {
			_, t := d.source.Endpoints(oe)
			out = append(out, t)
		}
		for _, ie := range d.source.InEdges(n) {
			s, _ := d.source.Endpoints(ie)
			out = append(out, s)
		}
		return out
	})
}

// RemoveNode removes n and informs the component manager.
func (d *Document) RemoveNode(n ids.NodeId) {
	d.source.RemoveNode(n)
	d.components.OnNodeRemoved(n)
	d.sel.Deselect([]ids.NodeId{n})
}

// CameraFor returns the Camera bound to component c, creating one on first
// use (covers components that existed before a camera observer was wired,
// e.g. a freshly loaded graph's initial partition).
func (d *Document) CameraFor(c ids.ComponentId) *camera.Camera {
	cam, ok := d.cameras[c]
	if !ok {
		cam = camera.New()
		d.cameras[c] = cam
	}
	return cam
}

// DefaultCamera returns the camera used when no single component is in
// focus (the whole-graph overview viewpoint).
func (d *Document) DefaultCamera() *camera.Camera { return d.defaultCamera }

// Placement returns the most recently computed component packing.
func (d *Document) Placement() packing.Placement { return d.placement }

// RepackComponents lays out every live component's bounding circle via
// CirclePack, sized by node count. It calls layout/packing.Interpolate with
// t=1, which returns the new packing unchanged, so the previous placement
// is replaced outright; Document does not animate the transition.
func (d *Document) RepackComponents() {
	componentIds := d.components.ComponentIds()
	next := packing.CirclePack(componentIds, func(c ids.ComponentId) int {
		return d.components.Size(c)
	})
	d.placement = packing.Interpolate(d.placement, next, 1)
}

// LayoutFor returns the force-directed layout driving component c,
// creating one (in its Initial phase) on first use.
func (d *Document) LayoutFor(c ids.ComponentId) *forcedirected.Layout {
	l, ok := d.layouts[c]
	if !ok {
		dimensionality := forcedirected.ThreeDee
		if d.cfg.DefaultLayout == "2d" {
			dimensionality = forcedirected.TwoDee
		}
		l = forcedirected.New(d.positions, forcedirected.DefaultSettings(), dimensionality)
		d.layouts[c] = l
		d.log.Debug().Uint32("component", uint32(c)).Msg("layout created")
	}
	return l
}

// StepLayout advances every live component's force-directed layout by one
// iteration over the committed view's topology, skipping components
// already Finished, mirroring the original's incremental-layout render
// loop (one step per displayed frame until convergence).
func (d *Document) StepLayout(ctx context.Context, firstIteration bool) error {
	edges := forcedirected.EdgesOf(d.effectiveGraph())
	for _, c := range d.components.ComponentIds() {
		l := d.LayoutFor(c)
		if l.Finished() {
			continue
		}
		nodeIds := d.components.NodesOf(c)
		if err := l.Execute(ctx, d.pool, nodeIds, edges, firstIteration, l.Dimensionality()); err != nil {
			return fmt.Errorf("document: layout step for component %d: %w", c, err)
		}
	}
	return nil
}

// Positions returns the node position store shared by every component's
// layout.
func (d *Document) Positions() *positions.NodePositions { return d.positions }

func (d *Document) effectiveGraph() *graph.MutableGraph {
	if d.view.Internal() != nil && d.view.Internal().NumNodes() > 0 {
		return d.view.Internal()
	}
	return d.source
}
