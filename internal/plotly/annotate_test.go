package plotly

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseGraphJSONObject(t *testing.T) {
	graph, err := ParseGraphJSON(json.RawMessage(`{"type":"bar","layout":{}}`))
	require.NoError(t, err)
	require.Equal(t, "bar", graph["type"])
}

func TestParseGraphJSONEmbeddedString(t *testing.T) {
	// The provider sometimes wraps the object in a JSON string.
	graph, err := ParseGraphJSON(json.RawMessage(`"{\"type\":\"scatter\"}"`))
	require.NoError(t, err)
	require.Equal(t, "scatter", graph["type"])
}

func TestParseGraphJSONRejectsNonObject(t *testing.T) {
	_, err := ParseGraphJSON(json.RawMessage(`[1,2,3]`))
	require.Error(t, err)

	_, err = ParseGraphJSON(json.RawMessage(`"not json at all"`))
	require.Error(t, err)
}

func TestDecorateChartAppendsSingleAnnotation(t *testing.T) {
	graph := map[string]any{
		"type": "scatter",
		"layout": map[string]any{
			"annotations": []any{
				map[string]any{"text": "existing"},
			},
		},
	}

	DecorateChart(graph, nil)

	layout := graph["layout"].(map[string]any)
	annotations := layout["annotations"].([]any)
	require.Len(t, annotations, 2, "one appended source annotation plus the pre-existing one")
	require.Equal(t, "existing", annotations[0].(map[string]any)["text"])
	require.Equal(t, "Source: DatViz AI", annotations[1].(map[string]any)["text"])
}

func TestDecorateChartWithoutLayout(t *testing.T) {
	graph := map[string]any{"type": "bar"}

	DecorateChart(graph, nil)

	layout := graph["layout"].(map[string]any)
	annotations := layout["annotations"].([]any)
	require.Len(t, annotations, 1)
	require.Equal(t, true, layout["autosize"])
	require.Equal(t, true, layout["responsive"])
	require.Equal(t, true, layout["showlegend"])
	require.NotNil(t, layout["legend"])
	require.NotNil(t, layout["modebar"])
}

func TestDecorateChartColorway(t *testing.T) {
	graph := map[string]any{"layout": map[string]any{}}
	DecorateChart(graph, nil)
	layout := graph["layout"].(map[string]any)
	require.Equal(t, DefaultColorway, layout["colorway"])

	custom := []string{"#111111", "#222222"}
	graph = map[string]any{"layout": map[string]any{}}
	DecorateChart(graph, custom)
	layout = graph["layout"].(map[string]any)
	require.Equal(t, custom, layout["colorway"])
}

func TestDecorateTable(t *testing.T) {
	graph := map[string]any{
		"type": "table",
		"cells": map[string]any{
			"values": []any{
				[]any{"a", "b"},
				[]any{float64(1), float64(2)},
			},
			"fill": map[string]any{"color": "white"},
		},
	}

	require.True(t, IsTable(graph))
	DecorateTable(graph)

	cells := graph["cells"].(map[string]any)
	values := cells["values"].([]any)
	require.Len(t, values, 3)
	require.Equal(t, []any{"Source: DatViz AI"}, values[2])
	require.Equal(t, "center", cells["align"])
	require.Equal(t, "#f0f0f0", cells["fill"].(map[string]any)["color"])
}

func TestIsTable(t *testing.T) {
	require.False(t, IsTable(map[string]any{"type": "scatter"}))
	require.False(t, IsTable(map[string]any{}))
	require.True(t, IsTable(map[string]any{"type": "table"}))
}
