package notebook

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/nbfix/pkg/nbfix"
)

func notebookWithMetadata(metadata string) []byte {
	return []byte(`{"cells": [], "metadata": ` + metadata + `, "nbformat": 4, "nbformat_minor": 5}`)
}

// metadataOf re-parses a marshaled document and returns its metadata as JSON.
func metadataOf(t *testing.T, data []byte) string {
	t.Helper()
	var nb struct {
		Metadata json.RawMessage `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(data, &nb))
	return string(nb.Metadata)
}

func TestNormalizeWidgetState_ExampleScenario(t *testing.T) {
	doc, err := Parse(notebookWithMetadata(`{"widgets": {"application/vnd.jupyter.widget-state+json": {"abc123": {"model_name": "IntSliderModel"}}}}`))
	require.NoError(t, err)

	insp, err := NormalizeWidgetState(doc)
	require.NoError(t, err)
	assert.Equal(t, StatusWrapped, insp.Status)
	assert.Equal(t, 1, insp.WidgetCount)

	out, err := doc.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"widgets": {"application/vnd.jupyter.widget-state+json": {"state": {"abc123": {"model_name": "IntSliderModel"}}}}}`,
		metadataOf(t, out))
}

func TestNormalizeWidgetState_KeepsEveryWidget(t *testing.T) {
	w1 := `{"model_module": "@jupyter-widgets/controls", "model_name": "IntSliderModel", "state": {"value": 3, "description": "<b>n</b>"}}`
	w2 := `{"model_module": "@jupyter-widgets/base", "model_name": "LayoutModel", "state": {}}`
	doc, err := Parse(notebookWithMetadata(`{"kernelspec": {"name": "python3"}, "widgets": {"application/vnd.jupyter.widget-state+json": {"w1": ` + w1 + `, "w2": ` + w2 + `}}}`))
	require.NoError(t, err)

	insp, err := NormalizeWidgetState(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, insp.WidgetCount)

	out, err := doc.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"kernelspec": {"name": "python3"}, "widgets": {"application/vnd.jupyter.widget-state+json": {"state": {"w1": `+w1+`, "w2": `+w2+`}}}}`,
		metadataOf(t, out))
	assert.Contains(t, string(out), "<b>n</b>", "HTML in widget state must not be escaped")
}

func TestNormalizeWidgetState_OtherMimeTypesUntouched(t *testing.T) {
	doc, err := Parse(notebookWithMetadata(`{"widgets": {"application/vnd.jupyter.widget-view+json": {"x": 1}, "application/vnd.jupyter.widget-state+json": {"w": {}}}}`))
	require.NoError(t, err)

	_, err = NormalizeWidgetState(doc)
	require.NoError(t, err)

	out, err := doc.Marshal()
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"widgets": {"application/vnd.jupyter.widget-view+json": {"x": 1}, "application/vnd.jupyter.widget-state+json": {"state": {"w": {}}}}}`,
		metadataOf(t, out))
}

func TestNormalizeWidgetState_Idempotent(t *testing.T) {
	doc, err := Parse(notebookWithMetadata(`{"widgets": {"application/vnd.jupyter.widget-state+json": {"w1": {"model_name": "A"}}}}`))
	require.NoError(t, err)

	_, err = NormalizeWidgetState(doc)
	require.NoError(t, err)
	first, err := doc.Marshal()
	require.NoError(t, err)

	again, err := Parse(first)
	require.NoError(t, err)
	insp, err := NormalizeWidgetState(again)
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyValid, insp.Status)

	second, err := again.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestNormalizeWidgetState_AlreadyValidLeavesDocument(t *testing.T) {
	input := notebookWithMetadata(`{"widgets": {"application/vnd.jupyter.widget-state+json": {"state": {"w1": {}}, "version_major": 2, "version_minor": 0}}}`)
	doc, err := Parse(input)
	require.NoError(t, err)

	insp, err := NormalizeWidgetState(doc)
	require.NoError(t, err)
	assert.Equal(t, StatusAlreadyValid, insp.Status)
	assert.Equal(t, 3, insp.WidgetCount)
}

func TestInspectWidgetState_NoWidgetState(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
	}{
		{"no widgets key", `{}`},
		{"empty widgets", `{"widgets": {}}`},
		{"other mime type only", `{"widgets": {"application/vnd.jupyter.widget-view+json": {}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(notebookWithMetadata(tt.metadata))
			require.NoError(t, err)

			insp, err := InspectWidgetState(doc)
			require.NoError(t, err)
			assert.Equal(t, StatusNoWidgetState, insp.Status)
		})
	}
}

func TestInspectWidgetState_DoesNotModify(t *testing.T) {
	input := notebookWithMetadata(`{"widgets": {"application/vnd.jupyter.widget-state+json": {"w1": {}}}}`)
	doc, err := Parse(input)
	require.NoError(t, err)
	before, err := doc.Marshal()
	require.NoError(t, err)

	insp, err := InspectWidgetState(doc)
	require.NoError(t, err)
	assert.Equal(t, StatusNeedsWrap, insp.Status)

	after, err := doc.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestInspectWidgetState_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		metadata string
	}{
		{"widgets is a list", `{"widgets": []}`},
		{"widgets is null", `{"widgets": null}`},
		{"widget state is a string", `{"widgets": {"application/vnd.jupyter.widget-state+json": "state"}}`},
		{"widget state is null", `{"widgets": {"application/vnd.jupyter.widget-state+json": null}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(notebookWithMetadata(tt.metadata))
			require.NoError(t, err)

			_, err = InspectWidgetState(doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, nbfix.ErrMalformedWidgets), "expected ErrMalformedWidgets, got %v", err)
		})
	}
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "wrapped", StatusWrapped.String())
	assert.Equal(t, "needs-wrap", StatusNeedsWrap.String())
	assert.True(t, strings.HasPrefix(Status(42).String(), "Status("))
}
