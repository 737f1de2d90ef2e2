package document

import (
	"context"

	"github.com/graphia-app/graphia-sub005/transform"
)

// Transforms returns the pipeline's currently configured steps, in
// application order.
func (d *Document) Transforms() []transform.TransformConfig {
	return d.pipeline.Steps
}

// ApplyTransform appends cfg as a new step and re-runs the pipeline from
// source, committing the result into the document's TransformedGraph view.
func (d *Document) ApplyTransform(ctx context.Context, cfg transform.TransformConfig) (*transform.AlertList, error) {
	d.pipeline.Steps = append(d.pipeline.Steps, cfg)
	return d.runPipeline(ctx)
}

// RemoveTransform deletes the step at position and re-runs the pipeline.
func (d *Document) RemoveTransform(ctx context.Context, position int) (*transform.AlertList, error) {
	if position < 0 || position >= len(d.pipeline.Steps) {
		return nil, errOutOfRange(position, len(d.pipeline.Steps))
	}
	d.pipeline.Steps = append(d.pipeline.Steps[:position], d.pipeline.Steps[position+1:]...)
	return d.runPipeline(ctx)
}

// MoveTransform relocates the step at from to index to, shifting the
// others, and re-runs the pipeline.
func (d *Document) MoveTransform(ctx context.Context, from, to int) (*transform.AlertList, error) {
	steps := d.pipeline.Steps
	if from < 0 || from >= len(steps) || to < 0 || to >= len(steps) {
		return nil, errOutOfRange(from, len(steps))
	}
	step := steps[from]
	steps = append(steps[:from], steps[from+1:]...)
	steps = append(steps[:to], append([]transform.TransformConfig{step}, steps[to:]...)...)
	d.pipeline.Steps = steps
	return d.runPipeline(ctx)
}

// runPipeline runs the configured steps against the source graph and
// commits the result into the document's TransformedGraph view, per
// §4.4's "graphChanged is re-emitted once the full pipeline has run".
func (d *Document) runPipeline(ctx context.Context) (*transform.AlertList, error) {
	output, alerts, err := d.pipeline.Run(ctx, d.source, nil)
	if output != nil {
		d.view.ReplaceInternal(output)
		d.view.CommitTopology()
	}
	d.recordPipelineAlerts(alerts)
	return alerts, err
}

type rangeError struct {
	position, length int
}

func (e rangeError) Error() string {
	return "document: transform position out of range"
}

func errOutOfRange(position, length int) error {
	return rangeError{position: position, length: length}
}
