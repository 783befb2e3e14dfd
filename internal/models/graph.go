package models

import "encoding/json"

// AnalysisResult is the schema-constrained payload returned by the analyze
// call: one-sentence insights plus exactly five prompt suggestions.
type AnalysisResult struct {
	Insights          string   `json:"insights"`
	PromptSuggestions []string `json:"prompt_suggestions"`
}

// GraphEntry is one generated graph or table as returned by the provider.
// GraphJSON may be a JSON object or an embedded JSON string.
type GraphEntry struct {
	GraphJSON   json.RawMessage `json:"graph_json"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
}

// GraphGenerationResult is the schema-constrained payload of a graph
// generation call. Status is "success" or "error"; Suggestions is populated
// only on the error path.
type GraphGenerationResult struct {
	Status      string       `json:"status"`
	Graphs      []GraphEntry `json:"graphs,omitempty"`
	Suggestions []string     `json:"suggestions,omitempty"`
}

// DecoratedGraph is one entry of the generate_graph success response after
// branding annotations have been applied.
type DecoratedGraph struct {
	Graph       map[string]any `json:"graph"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
}
