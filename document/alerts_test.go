package document

import (
	"context"
	"testing"

	"github.com/graphia-app/graphia-sub005/internal/config"
	"github.com/graphia-app/graphia-sub005/transform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyTransformErrorRecordsDocumentAlert(t *testing.T) {
	d := New(config.Defaults{})
	a := d.AddNode()
	b := d.AddNode()
	d.AddEdge(a, b)

	notified := 0
	d.OnAlertsChanged(func([]DocumentAlert) { notified++ })

	badCondition := transform.TransformConfig{
		Action:    transform.ActionFilterNode,
		Condition: transform.AttrCompare{Attribute: "$doesNotExist"},
	}
	_, err := d.ApplyTransform(context.Background(), badCondition)
	require.Error(t, err)

	alerts := d.Alerts()
	require.NotEmpty(t, alerts)
	assert.Equal(t, "transform", alerts[0].Source)
	assert.Equal(t, transform.Error, alerts[0].Level)
	assert.Equal(t, 1, notified)
}
