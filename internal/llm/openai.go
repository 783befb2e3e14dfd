package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"

	"datviz-backend/internal/models"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sashabaranov/go-openai"
)

const previewRows = 5

// analysisSchema constrains the analyze response to insights plus exactly
// five prompt suggestions.
var analysisSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"insights": {
			"description": "General insights about the table",
			"type": "string"
		},
		"prompt_suggestions": {
			"description": "Five suggestions for data analysis or visualization",
			"type": "array",
			"items": {"type": "string"},
			"minItems": 5,
			"maxItems": 5
		}
	},
	"required": ["insights", "prompt_suggestions"],
	"additionalProperties": false
}`)

// graphSchema constrains the generation response to a success payload with
// graphs or an error payload with suggestions.
var graphSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"status": {
			"description": "Status of the validation and graph generation",
			"type": "string",
			"enum": ["success", "error"]
		},
		"graphs": {
			"description": "List of Plotly graph or table JSON objects and their metadata",
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"graph_json": {
						"description": "Plotly graph or table JSON object",
						"type": "object"
					},
					"title": {
						"description": "Suggested title for the graph or table",
						"type": "string"
					},
					"description": {
						"description": "One-sentence description of the graph or table",
						"type": "string"
					}
				},
				"required": ["graph_json", "title", "description"],
				"additionalProperties": false
			}
		},
		"suggestions": {
			"description": "Suggestions for improving the user's prompt",
			"type": "array",
			"items": {"type": "string"}
		}
	},
	"required": ["status"],
	"additionalProperties": false
}`)

// OpenAIGateway implements Gateway over the OpenAI chat completions API with
// schema-constrained JSON responses. Calls are not retried; a transport or
// parse failure surfaces to the caller.
type OpenAIGateway struct {
	client   *openai.Client
	model    string
	encoding *tiktoken.Tiktoken
}

func NewOpenAIGateway(apiKey, organizationID, model string) (*OpenAIGateway, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	encoding, err := tiktoken.EncodingForModel(model)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer for model %s: %w", model, err)
	}

	cfg := openai.DefaultConfig(apiKey)
	cfg.OrgID = organizationID

	return &OpenAIGateway{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		encoding: encoding,
	}, nil
}

// EstimateCost tokenizes the prompt with the model's tokenizer and returns
// token_count / 100. Deliberately fractional.
func (g *OpenAIGateway) EstimateCost(prompt string) float64 {
	tokens := g.encoding.Encode(prompt, nil, nil)
	return float64(len(tokens)) / 100
}

func (g *OpenAIGateway) Analyze(ctx context.Context, filename string, rows []models.Row) (*models.AnalysisResult, float64, error) {
	prompt := buildAnalyzePrompt(filename, rows)
	cost := g.EstimateCost(prompt)

	content, err := g.complete(ctx,
		"You are an expert in data analysis and provide structured JSON outputs.",
		prompt, "data_analysis", analysisSchema)
	if err != nil {
		log.Printf("ERROR: OpenAI analysis failed for file %s: %v", filename, err)
		return nil, 0, err
	}

	var result models.AnalysisResult
	if err := json.Unmarshal([]byte(content), &result); err != nil || result.Insights == "" {
		// Degrade to a placeholder rather than failing the file: the call was
		// made and is still charged.
		log.Printf("WARN: OpenAI analysis response format issue for file %s: %v", filename, err)
		return &models.AnalysisResult{
			Insights:          "No insights available due to OpenAI response format issue.",
			PromptSuggestions: []string{},
		}, cost, nil
	}
	if len(result.PromptSuggestions) != 5 {
		log.Printf("WARN: OpenAI returned %d prompt suggestions instead of 5 for file %s", len(result.PromptSuggestions), filename)
	}

	return &result, cost, nil
}

func (g *OpenAIGateway) GenerateGraph(ctx context.Context, prompt string, rows []models.Row) (*models.GraphGenerationResult, float64, error) {
	fullPrompt, err := buildGraphPrompt(prompt, rows)
	if err != nil {
		return nil, 0, err
	}
	cost := g.EstimateCost(fullPrompt)

	content, err := g.complete(ctx,
		"You are an expert in data visualization using Plotly and JSON generation.",
		fullPrompt, "plotly_graph_or_table_generation", graphSchema)
	if err != nil {
		log.Printf("ERROR: OpenAI graph generation failed: %v", err)
		return nil, 0, err
	}

	// Schema enforcement on the provider side is not guaranteed; validate the
	// response locally before trusting it.
	var result models.GraphGenerationResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, 0, fmt.Errorf("failed to parse graph generation response: %w", err)
	}
	if result.Status != "success" && result.Status != "error" {
		return nil, 0, fmt.Errorf("unexpected graph generation status %q", result.Status)
	}

	return &result, cost, nil
}

func (g *OpenAIGateway) SuggestAlternatives(ctx context.Context, prompt string) []string {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert in crafting effective data visualization prompts.",
			},
			{
				Role: openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(
					"The user's prompt: '%s' was vague or invalid. Suggest three alternative prompts to improve the user's input.",
					prompt),
			},
		},
	})
	if err != nil || len(resp.Choices) == 0 {
		log.Printf("WARN: Failed to generate prompt suggestions, falling back to defaults: %v", err)
		return defaultSuggestions
	}

	lines := splitSuggestions(resp.Choices[0].Message.Content)
	if len(lines) < 3 {
		return defaultSuggestions
	}
	return lines[:3]
}

func (g *OpenAIGateway) complete(ctx context.Context, system, prompt, schemaName string, schema json.RawMessage) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: schema,
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func buildAnalyzePrompt(filename string, rows []models.Row) string {
	preview := rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}
	previewJSON, err := json.Marshal(preview)
	if err != nil {
		previewJSON = []byte("[]")
	}

	return fmt.Sprintf(
		"Analyze the following tabular data from the file '%s' and provide the following details:\n"+
			"1. Insights about the table (one sentence long).\n"+
			"2. Five prompt suggestions for data analysis visualization.\n\n"+
			"Data Preview:\n%s",
		filename, previewJSON)
}

func buildGraphPrompt(userPrompt string, rows []models.Row) (string, error) {
	dataJSON, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize dataset: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Validate the user's prompt: '%s' for creating graphs or tables using Plotly. ", userPrompt)
	b.WriteString("The graph or table should use the following JSON data:\n\n")
	b.Write(dataJSON)
	b.WriteString("\n\nPerform the following steps:\n")
	b.WriteString("1. Check if the user's prompt specifies a valid graph or table type supported by Plotly.\n")
	fmt.Fprintf(&b, "2. Check if the prompt references valid columns in the dataset: %s.\n\n", strings.Join(columnNames(rows), ", "))
	b.WriteString("If the user's prompt mentions 'regression,' create a regression graph with:\n")
	b.WriteString("- A scatter plot of the data points.\n")
	b.WriteString("- A regression line fitted to the data.\n")
	b.WriteString("- Statistical metrics such as R-squared, p-value, and regression equation displayed beautifully within the graph.\n")
	b.WriteString("- Display these metrics in an annotation box on the graph with a semi-transparent background.\n")
	b.WriteString("- Use clear and visually appealing formatting for the annotation (e.g., a light background, rounded corners, and a professional font).\n\n")
	b.WriteString("For 'hypothesis testing,' generate a Plotly table JSON object that displays:\n")
	b.WriteString("- Key statistical results (e.g., t-statistic, p-value, confidence intervals).\n")
	b.WriteString("- A conclusion about the hypothesis in a clearly labeled row.\n")
	b.WriteString("- Ensure the table layout is visually appealing, with alternating row colors and bold headers.\n\n")
	b.WriteString("For valid prompts, generate:\n")
	b.WriteString("1. 'graph_json' - the Plotly graph or table in JSON format. Ensure the graph title is strong and meaningful (min 5 words).\n")
	b.WriteString("2. 'title' - a suggested title for the graph or table. Do not start with 'The' or 'A'.\n")
	b.WriteString("3. 'description' - a one-sentence description of the graph or table.\n\n")
	b.WriteString("If the prompt is invalid, return:\n")
	b.WriteString("1. 'status': 'error'\n")
	b.WriteString("2. 'suggestions': A list of three alternative prompts to guide the user in specifying a valid request.\n\n")
	b.WriteString("Ensure the output includes all valid graphs or tables requested in the prompt.\n")
	b.WriteString("After generating the JSON, validate it to ensure that it is syntactically correct and complete. ")
	b.WriteString("Do not return the result if it fails validation.\n\n")
	b.WriteString("Make sure to prettify the graph or table (e.g., titles, labels, colors, annotations, and fonts).\n")

	return b.String(), nil
}

// columnNames collects the distinct column names across all rows, sorted for
// a stable prompt.
func columnNames(rows []models.Row) []string {
	seen := map[string]bool{}
	for _, row := range rows {
		for col := range row {
			seen[col] = true
		}
	}
	names := make([]string, 0, len(seen))
	for col := range seen {
		names = append(names, col)
	}
	sort.Strings(names)
	return names
}

// splitSuggestions extracts non-empty lines from a free-form completion.
func splitSuggestions(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
