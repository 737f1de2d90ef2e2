package document

import (
	"github.com/graphia-app/graphia-sub005/camera"
	"github.com/graphia-app/graphia-sub005/ids"
	"github.com/graphia-app/graphia-sub005/selection"
)

// Find selects the nodes matching pattern (per selection.FindNodes,
// already expanded to each match's merge set) and returns them.
func (d *Document) Find(pattern string, opts selection.SearchOptions) ([]ids.NodeId, error) {
	found, err := selection.FindNodes(d.effectiveGraph(), d.registry, pattern, opts)
	if err != nil {
		return nil, err
	}
	d.sel.Clear()
	d.sel.Select(found)
	return found, nil
}

// ZoomToSelection points the default camera at the centre of mass and
// bounding radius of the current selection (expanded to merge sets, same
// rule FindNodes uses), or leaves the camera untouched if nothing is
// selected.
func (d *Document) ZoomToSelection() {
	nodeIds := selection.ExpandToMergeSets(d.effectiveGraph(), d.sel.All())
	if len(nodeIds) == 0 {
		return
	}
	d.zoomTo(d.defaultCamera, nodeIds)
}

// ZoomToComponent points component c's camera at its own extent.
func (d *Document) ZoomToComponent(c ids.ComponentId) {
	nodeIds := d.components.NodesOf(c)
	if len(nodeIds) == 0 {
		return
	}
	d.zoomTo(d.CameraFor(c), nodeIds)
}

func (d *Document) zoomTo(cam *camera.Camera, nodeIds []ids.NodeId) {
	centre := d.positions.CentreOfMass(nodeIds)
	radius := 0.0
	for _, p := range d.positions.GetAll(nodeIds) {
		if r := p.Sub(centre).Length(); r > radius {
			radius = r
		}
	}
	cam.ZoomToFit(centre, radius)
}
