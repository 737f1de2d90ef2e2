// Package adapter defines the interfaces external graph-file formats and
// the save/load hook would implement. No format is parsed here — §1's
// scope line excludes file format parsing from this core, and §6 asks only
// for the interfaces adapters plug into. A concrete adapter
// (GML, GraphML, DOT, JSON Graph, Cytoscape CX, edge-list, adjacency
// matrix) lives outside this module and is discovered by the CLI surface
// via Registry.
package adapter

import (
	"context"
	"io"

	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
)

// UserData is a string-keyed table of string values indexed by the dense
// id a loader assigned, the shape §6 specifies for UserNodeData/
// UserEdgeData before they become typed attributes.
type UserData map[uint32]map[string]string

// Progress reports how far a GraphAdapter has gotten loading or saving,
// for a caller to render a progress bar; Of and Total are adapter-defined
// units (bytes, records, whatever is cheapest for that format to report).
type Progress struct {
	Of, Total int64
}

// GraphAdapter reads or writes one external graph file format. Load
// produces a freshly populated MutableGraph plus the raw string attribute
// tables for nodes and edges (the caller registers these as typed
// attributes); Save writes g (with the given per-node/edge data, if any)
// back out in the adapter's format.
//
// Implementations must be cancellable via ctx and report progress through
// onProgress (which may be nil).
type GraphAdapter interface {
	// Name identifies the format, e.g. "graphml", "dot".
	Name() string
	// Extensions lists the file extensions this adapter claims for
	// extension-based format auto-detection (§6: "auto-detected by
	// extension then content sniff").
	Extensions() []string
	// Sniff reports whether data looks like this adapter's format, used
	// as the fallback when extension-based detection is inconclusive.
	Sniff(data []byte) bool

	Load(ctx context.Context, r io.Reader, onProgress func(Progress)) (*graph.MutableGraph, UserData, UserData, error)
	Save(ctx context.Context, w io.Writer, g *graph.MutableGraph, nodeData, edgeData UserData, onProgress func(Progress)) error
}

// Registry resolves a file to the GraphAdapter that should handle it, by
// extension first and content-sniffing second (§6).
type Registry struct {
	adapters []GraphAdapter
}

// NewRegistry creates an empty Registry; the CLI/app layer registers
// concrete adapters into it at startup.
func NewRegistry() *Registry { return &Registry{} }

// Register adds a to the set of adapters this Registry can resolve to.
func (r *Registry) Register(a GraphAdapter) { r.adapters = append(r.adapters, a) }

// ForExtension returns the adapter claiming ext (without the leading
// dot), if any is registered.
func (r *Registry) ForExtension(ext string) (GraphAdapter, bool) {
	for _, a := range r.adapters {
		for _, e := range a.Extensions() {
			if e == ext {
				return a, true
			}
		}
	}
	return nil, false
}

// Sniff returns the first registered adapter whose Sniff matches data.
func (r *Registry) Sniff(data []byte) (GraphAdapter, bool) {
	for _, a := range r.adapters {
		if a.Sniff(data) {
			return a, true
		}
	}
	return nil, false
}

// SaveFormat is the opaque save/load hook for this core's own binary
// format (§6: magic + version + gzip-compressed payload of node/edge/
// attribute/transform-pipeline/camera/selection records). Concrete
// encoding lives in cmd/graphia-core; this interface is what a Document
// is handed to persist or restore itself without either package importing
// the other's concrete types.
type SaveFormat interface {
	// Write serialises snapshot to w.
	Write(w io.Writer, snapshot Snapshot) error
	// Read deserialises a Snapshot from r.
	Read(r io.Reader) (Snapshot, error)
}

// CameraSnapshot is a camera's persisted viewpoint: focus, rotation
// (as a quaternion), and distance. Kept as plain floats rather than
// package camera's Quaternion/Vec3 types so adapter has no dependency on
// that package.
type CameraSnapshot struct {
	FocusX, FocusY, FocusZ float64
	RotW, RotX, RotY, RotZ float64
	Distance               float64
}

// Snapshot is everything the save format's payload schema (§6) names:
// enough to reconstruct a Document without re-running adapters or the
// transform pipeline from scratch.
type Snapshot struct {
	Graph *graph.MutableGraph

	// NodePosition mirrors the save format's per-node position fields,
	// which are not reachable from Graph itself.
	NodePosition map[ids.NodeId][3]float64

	NodeAttributes UserData
	EdgeAttributes UserData

	// TransformPipeline is the ordered list of transform records, kept as
	// opaque string-keyed maps here (package transform defines the typed
	// TransformConfig) so this package has no dependency on it.
	TransformPipeline []map[string]any

	Selection []ids.NodeId

	DefaultCamera CameraSnapshot
	// Cameras maps each component's raw ComponentId to its persisted
	// viewpoint.
	Cameras map[uint32]CameraSnapshot
}
