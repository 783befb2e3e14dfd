// Package llm talks to the OpenAI API: table analysis, Plotly graph
// generation and prompt suggestions, each with a token-based credit cost.
package llm

import (
	"context"

	"datviz-backend/internal/models"
)

// Gateway is the LLM provider surface the handlers depend on. Costs are
// credits, proportional to the estimated token usage of the prompt.
type Gateway interface {
	// Analyze sends a preview of the table and returns insights plus five
	// prompt suggestions, with the call's credit cost.
	Analyze(ctx context.Context, filename string, rows []models.Row) (*models.AnalysisResult, float64, error)

	// GenerateGraph sends the full row set and the user's prompt and returns
	// either generated graphs or alternative prompt suggestions.
	GenerateGraph(ctx context.Context, prompt string, rows []models.Row) (*models.GraphGenerationResult, float64, error)

	// SuggestAlternatives returns three alternative prompts for a vague or
	// invalid user prompt. Best-effort: it degrades to fixed generic
	// suggestions instead of failing.
	SuggestAlternatives(ctx context.Context, prompt string) []string
}

// defaultSuggestions are returned when suggestion generation fails.
var defaultSuggestions = []string{
	"Try being more specific about the data to visualize.",
	"Specify the type of chart or analysis you need.",
	"Include details about the x-axis and y-axis data.",
}
