// Package plotly post-processes provider-generated Plotly specifications,
// injecting the branding and layout defaults every response carries.
package plotly

import (
	"encoding/json"
	"fmt"
)

const sourceText = "Source: DatViz AI"

// DefaultColorway is applied to charts when the caller supplies no palette.
var DefaultColorway = []string{"#636EFA", "#EF553B", "#00CC96", "#AB63FA", "#FFA15A"}

// ParseGraphJSON normalizes a provider graph payload into a mutable object.
// Providers sometimes return the graph as an embedded JSON string instead of
// an object; both forms are accepted.
func ParseGraphJSON(raw json.RawMessage) (map[string]any, error) {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, fmt.Errorf("invalid graph JSON: %w", err)
	}

	if s, ok := value.(string); ok {
		if err := json.Unmarshal([]byte(s), &value); err != nil {
			return nil, fmt.Errorf("invalid embedded graph JSON: %w", err)
		}
	}

	graph, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid graph JSON format: %v", value)
	}
	return graph, nil
}

// IsTable reports whether the graph specification is a Plotly table.
func IsTable(graph map[string]any) bool {
	t, _ := graph["type"].(string)
	return t == "table"
}

// DecorateTable appends the fixed source-attribution row and styling to a
// Plotly table specification.
func DecorateTable(graph map[string]any) {
	cells, ok := graph["cells"].(map[string]any)
	if !ok {
		return
	}

	if values, ok := cells["values"].([]any); ok {
		cells["values"] = append(values, []any{sourceText})
	}
	cells["align"] = "center"

	fill, ok := cells["fill"].(map[string]any)
	if !ok {
		fill = map[string]any{}
		cells["fill"] = fill
	}
	fill["color"] = "#f0f0f0"
}

// DecorateChart appends the source annotation to the layout (keeping any
// pre-existing annotations), forces the responsive/autosize flags, attaches
// the legend block and sets the colorway. customColors overrides the default
// palette when non-empty.
func DecorateChart(graph map[string]any, customColors []string) {
	layout, ok := graph["layout"].(map[string]any)
	if !ok {
		layout = map[string]any{}
		graph["layout"] = layout
	}

	annotations, _ := layout["annotations"].([]any)
	layout["annotations"] = append(annotations, map[string]any{
		"text":      sourceText,
		"xref":      "paper",
		"yref":      "paper",
		"x":         1,
		"y":         1,
		"xanchor":   "right",
		"yanchor":   "top",
		"showarrow": false,
		"font":      map[string]any{"size": 12, "color": "blue"},
	})

	layout["autosize"] = true
	layout["responsive"] = true
	if _, ok := layout["modebar"]; !ok {
		layout["modebar"] = map[string]any{}
	}

	layout["legend"] = map[string]any{
		"title":       map[string]any{"text": "Legend"},
		"orientation": "h",
		"x":           0,
		"y":           -0.2,
		"bgcolor":     "rgba(255,255,255,0.5)",
	}

	if len(customColors) > 0 {
		layout["colorway"] = customColors
	} else {
		layout["colorway"] = DefaultColorway
	}

	layout["showlegend"] = true
}
