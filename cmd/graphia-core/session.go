package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/graphia-app/graphia-sub005/adapter"
	"github.com/graphia-app/graphia-sub005/attribute"
	"github.com/graphia-app/graphia-sub005/camera"
	"github.com/graphia-app/graphia-sub005/document"
	"github.com/graphia-app/graphia-sub005/graph"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/internal/config"
	"github.com/graphia-app/graphia-sub005/layout/positions"
	"github.com/graphia-app/graphia-sub005/transform"
)

// saveMagic and saveVersion are the save format's 4-byte magic and 2-byte
// version (§6): "a 4-byte magic, a 2-byte version, a gzip-compressed
// payload".
var saveMagic = [4]byte{'G', 'P', 'H', 'A'}

const saveVersion uint16 = 1

// payload is the gzip-compressed record schema §6 names: header counts
// (implicit in slice lengths), node/edge/attribute records, the transform
// pipeline, and camera/selection snapshots. It is gob-encoded rather than
// modeled on adapter.Snapshot directly: a TransformConfig's Condition
// field is an interface, and this CLI's round-trip does not attempt to
// serialise condition trees (transformRecord below) — a production save
// format would register every Condition variant with gob, or use a typed
// wire encoding, instead of accepting that loss.
type payload struct {
	DocumentID uuid.UUID

	Nodes []nodeRecord
	Edges []edgeRecord

	Attributes []attributeRecord

	Transforms []transformRecord

	Selection []uint32

	DefaultCamera cameraRecord
	Cameras       map[uint32]cameraRecord
}

type nodeRecord struct {
	ID        uint32
	MergeHead uint32
	X, Y, Z   float64
}

type edgeRecord struct {
	ID        uint32
	Src, Tgt  uint32
	MergeHead uint32
}

// attributeRecord mirrors §6's "name, elementType, valueType, flags, then
// values" schema; Values holds each element's value in its string form.
// binarySaveFormat.Write fills only Name, ElementType and Values, and
// loadSession does not re-register attributes from these records.
type attributeRecord struct {
	Name        string
	ElementType int
	ValueType   int
	Flags       []string
	Values      map[uint32]string
}

// transformRecord mirrors transform.TransformConfig minus Condition (see
// payload's doc comment).
type transformRecord struct {
	Action              string
	Parameters          map[string]paramRecord
	AttributeParameters map[string]string
	Flags               []string
	NewAttributeName    string
	NewAttributeType    int
}

// paramRecord mirrors transform.Param.
type paramRecord struct {
	IsString bool
	Number   float64
	String   string
}

type cameraRecord struct {
	FocusX, FocusY, FocusZ float64
	RotW, RotX, RotY, RotZ float64
	Distance               float64
}

func cameraRecordFromSnapshot(cs adapter.CameraSnapshot) cameraRecord {
	return cameraRecord{
		FocusX: cs.FocusX, FocusY: cs.FocusY, FocusZ: cs.FocusZ,
		RotW: cs.RotW, RotX: cs.RotX, RotY: cs.RotY, RotZ: cs.RotZ,
		Distance: cs.Distance,
	}
}

func snapshotFromCameraRecord(r cameraRecord) adapter.CameraSnapshot {
	return adapter.CameraSnapshot{
		FocusX: r.FocusX, FocusY: r.FocusY, FocusZ: r.FocusZ,
		RotW: r.RotW, RotX: r.RotX, RotY: r.RotY, RotZ: r.RotZ,
		Distance: r.Distance,
	}
}

func cameraRecordFromCamera(c *camera.Camera) cameraRecord {
	focus := c.Focus()
	rot := c.Rotation()
	return cameraRecord{
		FocusX: focus.X, FocusY: focus.Y, FocusZ: focus.Z,
		RotW: rot.W, RotX: rot.X, RotY: rot.Y, RotZ: rot.Z,
		Distance: c.Distance(),
	}
}

func applyCameraRecord(c *camera.Camera, r cameraRecord) {
	c.SetFocus(positions.Vec3{X: r.FocusX, Y: r.FocusY, Z: r.FocusZ})
	c.SetRotation(camera.Quaternion{W: r.RotW, X: r.RotX, Y: r.RotY, Z: r.RotZ})
	c.SetDistance(r.Distance)
}

// transformRecordFromMap and mapFromTransformRecord translate between the
// opaque string-keyed form adapter.Snapshot.TransformPipeline holds (so
// package adapter need not import package transform) and the gob-encoded
// transformRecord. The map keys mirror transformRecord's field names.
func transformRecordFromMap(m map[string]any) transformRecord {
	r := transformRecord{}
	if v, ok := m["action"].(string); ok {
		r.Action = v
	}
	if v, ok := m["parameters"].(map[string]paramRecord); ok {
		r.Parameters = v
	}
	if v, ok := m["attributeParameters"].(map[string]string); ok {
		r.AttributeParameters = v
	}
	if v, ok := m["flags"].([]string); ok {
		r.Flags = v
	}
	if v, ok := m["newAttributeName"].(string); ok {
		r.NewAttributeName = v
	}
	if v, ok := m["newAttributeType"].(int); ok {
		r.NewAttributeType = v
	}
	return r
}

func mapFromTransformRecord(r transformRecord) map[string]any {
	return map[string]any{
		"action":              r.Action,
		"parameters":          r.Parameters,
		"attributeParameters": r.AttributeParameters,
		"flags":               r.Flags,
		"newAttributeName":    r.NewAttributeName,
		"newAttributeType":    r.NewAttributeType,
	}
}

// transformConfigToMap and mapToTransformConfig translate between
// transform.TransformConfig and the same opaque map form, for the session
// layer (which, unlike package adapter, may import package transform
// freely). Condition is intentionally dropped (payload's doc comment).
func transformConfigToMap(cfg transform.TransformConfig) map[string]any {
	params := make(map[string]paramRecord, len(cfg.Parameters))
	for k, p := range cfg.Parameters {
		params[k] = paramRecord{IsString: p.IsString, Number: p.Number, String: p.String}
	}
	var flags []string
	for f, set := range cfg.Flags {
		if set {
			flags = append(flags, string(f))
		}
	}
	return map[string]any{
		"action":              string(cfg.Action),
		"parameters":          params,
		"attributeParameters": cfg.AttributeParameters,
		"flags":               flags,
		"newAttributeName":    cfg.NewAttributeName,
		"newAttributeType":    int(cfg.NewAttributeType),
	}
}

func mapToTransformConfig(m map[string]any) transform.TransformConfig {
	r := transformRecordFromMap(m)
	cfg := transform.TransformConfig{
		Action:              transform.Action(r.Action),
		AttributeParameters: r.AttributeParameters,
		NewAttributeName:    r.NewAttributeName,
		NewAttributeType:    attribute.ValueType(r.NewAttributeType),
	}
	if len(r.Parameters) > 0 {
		cfg.Parameters = make(map[string]transform.Param, len(r.Parameters))
		for k, p := range r.Parameters {
			cfg.Parameters[k] = transform.Param{IsString: p.IsString, Number: p.Number, String: p.String}
		}
	}
	if len(r.Flags) > 0 {
		cfg.Flags = make(map[transform.ConfigFlag]bool, len(r.Flags))
		for _, f := range r.Flags {
			cfg.Flags[transform.ConfigFlag(f)] = true
		}
	}
	return cfg
}

// binarySaveFormat implements adapter.SaveFormat over the payload schema
// above.
type binarySaveFormat struct{}

func (binarySaveFormat) Write(w io.Writer, snapshot adapter.Snapshot) error {
	p := payload{DocumentID: uuid.New()}

	if snapshot.Graph != nil {
		for _, n := range snapshot.Graph.NodeIds() {
			pos := snapshot.NodePosition[n]
			p.Nodes = append(p.Nodes, nodeRecord{
				ID: uint32(n), MergeHead: uint32(snapshot.Graph.HeadOf(n)),
				X: pos[0], Y: pos[1], Z: pos[2],
			})
		}
		for _, e := range snapshot.Graph.EdgeIds() {
			src, tgt := snapshot.Graph.Endpoints(e)
			p.Edges = append(p.Edges, edgeRecord{
				ID: uint32(e), Src: uint32(src), Tgt: uint32(tgt),
				MergeHead: uint32(snapshot.Graph.HeadOf(src)),
			})
		}
	}

	for name, byID := range snapshot.NodeAttributes {
		values := make(map[uint32]string, len(byID))
		for id, v := range byID {
			values[id] = v
		}
		p.Attributes = append(p.Attributes, attributeRecord{
			Name: name, ElementType: int(attribute.Node), Values: values,
		})
	}
	for name, byID := range snapshot.EdgeAttributes {
		values := make(map[uint32]string, len(byID))
		for id, v := range byID {
			values[id] = v
		}
		p.Attributes = append(p.Attributes, attributeRecord{
			Name: name, ElementType: int(attribute.Edge), Values: values,
		})
	}

	for _, n := range snapshot.Selection {
		p.Selection = append(p.Selection, uint32(n))
	}

	for _, step := range snapshot.TransformPipeline {
		p.Transforms = append(p.Transforms, transformRecordFromMap(step))
	}

	p.DefaultCamera = cameraRecordFromSnapshot(snapshot.DefaultCamera)
	if len(snapshot.Cameras) > 0 {
		p.Cameras = make(map[uint32]cameraRecord, len(snapshot.Cameras))
		for c, cs := range snapshot.Cameras {
			p.Cameras[c] = cameraRecordFromSnapshot(cs)
		}
	}

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gz).Encode(p); err != nil {
		return fmt.Errorf("cmd/graphia-core: encode session: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("cmd/graphia-core: flush session gzip: %w", err)
	}

	if _, err := w.Write(saveMagic[:]); err != nil {
		return err
	}
	var versionBytes [2]byte
	binary.BigEndian.PutUint16(versionBytes[:], saveVersion)
	if _, err := w.Write(versionBytes[:]); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}

var errBadMagic = errors.New("cmd/graphia-core: not a graphia session file")
var errUnsupportedVersion = errors.New("cmd/graphia-core: unsupported session version")

func (binarySaveFormat) Read(r io.Reader) (adapter.Snapshot, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return adapter.Snapshot{}, fmt.Errorf("%w: %v", errBadMagic, err)
	}
	if magic != saveMagic {
		return adapter.Snapshot{}, errBadMagic
	}
	var versionBytes [2]byte
	if _, err := io.ReadFull(r, versionBytes[:]); err != nil {
		return adapter.Snapshot{}, err
	}
	if binary.BigEndian.Uint16(versionBytes[:]) != saveVersion {
		return adapter.Snapshot{}, errUnsupportedVersion
	}

	gz, err := gzip.NewReader(r)
	if err != nil {
		return adapter.Snapshot{}, fmt.Errorf("cmd/graphia-core: open session gzip: %w", err)
	}
	defer gz.Close()

	var p payload
	if err := gob.NewDecoder(gz).Decode(&p); err != nil {
		return adapter.Snapshot{}, fmt.Errorf("cmd/graphia-core: decode session: %w", err)
	}

	g := graph.New()
	byOld := make(map[uint32]ids.NodeId, len(p.Nodes))
	for _, nr := range p.Nodes {
		byOld[nr.ID] = g.AddNode()
	}
	for _, er := range p.Edges {
		src, srcOk := byOld[er.Src]
		tgt, tgtOk := byOld[er.Tgt]
		if srcOk && tgtOk {
			g.AddEdge(src, tgt)
		}
	}

	nodePosition := make(map[ids.NodeId][3]float64, len(p.Nodes))
	for _, nr := range p.Nodes {
		nodePosition[byOld[nr.ID]] = [3]float64{nr.X, nr.Y, nr.Z}
	}

	nodeAttributes := make(adapter.UserData)
	edgeAttributes := make(adapter.UserData)
	for _, ar := range p.Attributes {
		dest := nodeAttributes
		if attribute.ElementType(ar.ElementType) == attribute.Edge {
			dest = edgeAttributes
		}
		for id, v := range ar.Values {
			if dest[id] == nil {
				dest[id] = make(map[string]string)
			}
			dest[id][ar.Name] = v
		}
	}

	var selection []ids.NodeId
	for _, s := range p.Selection {
		if n, ok := byOld[s]; ok {
			selection = append(selection, n)
		}
	}

	var pipeline []map[string]any
	for _, tr := range p.Transforms {
		pipeline = append(pipeline, mapFromTransformRecord(tr))
	}

	var cameras map[uint32]adapter.CameraSnapshot
	if len(p.Cameras) > 0 {
		cameras = make(map[uint32]adapter.CameraSnapshot, len(p.Cameras))
		for c, cr := range p.Cameras {
			cameras[c] = snapshotFromCameraRecord(cr)
		}
	}

	return adapter.Snapshot{
		Graph:             g,
		NodePosition:      nodePosition,
		NodeAttributes:    nodeAttributes,
		EdgeAttributes:    edgeAttributes,
		TransformPipeline: pipeline,
		Selection:         selection,
		DefaultCamera:     snapshotFromCameraRecord(p.DefaultCamera),
		Cameras:           cameras,
	}, nil
}

// documentToSnapshot gathers the pieces of d that the save format
// records: topology, raw node positions, every registered node attribute's
// values in string form (edge attributes are not gathered), the transform
// pipeline, the current selection, and every camera.
func documentToSnapshot(d *document.Document) adapter.Snapshot {
	nodePosition := make(map[ids.NodeId][3]float64)
	for _, n := range d.Graph().NodeIds() {
		v := d.Positions().Get(n)
		nodePosition[n] = [3]float64{v.X, v.Y, v.Z}
	}

	nodeAttributes := make(adapter.UserData)
	for _, name := range d.Registry().NamesFor(attribute.Node) {
		attr, err := d.Registry().Get(name)
		if err != nil {
			continue
		}
		for _, n := range d.Graph().NodeIds() {
			id := uint32(n)
			if nodeAttributes[id] == nil {
				nodeAttributes[id] = make(map[string]string)
			}
			nodeAttributes[id][name] = attr.Value(id).String2()
		}
	}

	var pipeline []map[string]any
	for _, step := range d.Transforms() {
		pipeline = append(pipeline, transformConfigToMap(step))
	}

	cameras := make(map[uint32]adapter.CameraSnapshot)
	for _, c := range d.Components().ComponentIds() {
		cameras[uint32(c)] = snapshotFromCameraRecord(cameraRecordFromCamera(d.CameraFor(c)))
	}

	return adapter.Snapshot{
		Graph:             d.Graph(),
		NodePosition:      nodePosition,
		NodeAttributes:    nodeAttributes,
		TransformPipeline: pipeline,
		Selection:         d.Selection().All(),
		DefaultCamera:     snapshotFromCameraRecord(cameraRecordFromCamera(d.DefaultCamera())),
		Cameras:           cameras,
	}
}

// loadSession reads path and rebuilds a Document from its snapshot; a
// missing session file starts a fresh empty Document instead (mirroring
// internal/config.Load's "missing file is not an error" stance, since a
// brand-new session has no file yet).
func loadSession(path string, cfg config.Defaults) (*document.Document, error) {
	d := document.New(cfg)
	if path == "" {
		return d, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return nil, err
	}
	defer f.Close()

	snapshot, err := binarySaveFormat{}.Read(f)
	if err != nil {
		return nil, err
	}

	byOld := make(map[ids.NodeId]ids.NodeId, len(snapshot.Graph.NodeIds()))
	for _, n := range snapshot.Graph.NodeIds() {
		byOld[n] = d.AddNode()
	}
	for _, e := range snapshot.Graph.EdgeIds() {
		src, tgt := snapshot.Graph.Endpoints(e)
		d.AddEdge(byOld[src], byOld[tgt])
	}

	layout := positions.NewLayout(d.Positions())
	for n, pos := range snapshot.NodePosition {
		if mapped, ok := byOld[n]; ok {
			layout.Set(mapped, positions.Vec3{X: pos[0], Y: pos[1], Z: pos[2]})
		}
	}

	var sel []ids.NodeId
	for _, n := range snapshot.Selection {
		if mapped, ok := byOld[n]; ok {
			sel = append(sel, mapped)
		}
	}
	d.Selection().Select(sel)

	for _, step := range snapshot.TransformPipeline {
		if _, err := d.ApplyTransform(context.Background(), mapToTransformConfig(step)); err != nil {
			return nil, fmt.Errorf("cmd/graphia-core: restore transform pipeline: %w", err)
		}
	}

	applyCameraRecord(d.DefaultCamera(), cameraRecordFromSnapshot(snapshot.DefaultCamera))
	for c, cs := range snapshot.Cameras {
		applyCameraRecord(d.CameraFor(ids.ComponentId(c)), cameraRecordFromSnapshot(cs))
	}

	return d, nil
}

// saveSession writes d's snapshot to path.
func saveSession(path string, d *document.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return binarySaveFormat{}.Write(f, documentToSnapshot(d))
}
