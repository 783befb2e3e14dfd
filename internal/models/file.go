package models

// Row is a single CSV record keyed by column name. Cell values are typed
// scalars (int64, float64, bool, string) or nil for a missing cell.
type Row map[string]any

// FileStatistics is the per-file summary returned alongside the raw data.
// Fields are `any` because the degrade-to-placeholder policy substitutes the
// string "N/A" for every field when the computation fails.
type FileStatistics struct {
	NumColumns      any `json:"num_columns"`
	NumObservations any `json:"num_observations"`
	MissingValues   any `json:"missing_values"`
	VariableTypes   any `json:"variable_types"`
}

// ProcessedFile is one entry of the upload response. Either Error is set, or
// the remaining fields are.
type ProcessedFile struct {
	FileName          string          `json:"file_name"`
	Statistics        *FileStatistics `json:"statistics,omitempty"`
	Data              []Row           `json:"data,omitempty"`
	Insights          string          `json:"insights,omitempty"`
	PromptSuggestions []string        `json:"prompt_suggestions,omitempty"`
	Error             string          `json:"error,omitempty"`
}
