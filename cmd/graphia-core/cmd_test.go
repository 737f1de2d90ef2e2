package main

import (
	"testing"

	"github.com/graphia-app/graphia-sub005/document"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDocument(t *testing.T) *document.Document {
	t.Helper()
	d := document.New(testConfigDefaults())
	a := d.AddNode()
	b := d.AddNode()
	d.AddEdge(a, b)
	return d
}

func TestApplyTransformCommandFiltersNodes(t *testing.T) {
	doc = newTestDocument(t)
	numberParams, stringParams, attrParams, stepFlags = nil, nil, nil, nil
	newAttrName, newAttrType = "", "string"

	err := applyTransformCmd.RunE(applyTransformCmd, []string{string(sampleTransformConfig().Action)})
	require.NoError(t, err)
	assert.Len(t, doc.Transforms(), 1)
}

func TestRemoveTransformCommandRejectsOutOfRange(t *testing.T) {
	doc = newTestDocument(t)
	err := removeTransformCmd.RunE(removeTransformCmd, []string{"5"})
	assert.Error(t, err)
}

func TestSelectAndClearSelectionCommands(t *testing.T) {
	doc = newTestDocument(t)
	nodeIds := doc.Graph().NodeIds()
	require.Len(t, nodeIds, 2)

	err := selectCmd.RunE(selectCmd, []string{"0", "1"})
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Selection().Size())

	err = clearSelectionCmd.RunE(clearSelectionCmd, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Selection().Size())
}
