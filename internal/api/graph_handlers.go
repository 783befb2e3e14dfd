package api

import (
	"encoding/json"
	"log"
	"net/http"

	"datviz-backend/internal/models"
	"datviz-backend/internal/plotly"
)

type GraphFilePayload struct {
	FileName string       `json:"file_name"`
	Data     []models.Row `json:"data"`
}

type GenerateGraphRequest struct {
	UUID         string             `json:"uuid"`
	Prompt       string             `json:"prompt"`
	Files        []GraphFilePayload `json:"files"`
	CustomColors []string           `json:"custom_colors,omitempty"`
}

type GenerateGraphResponse struct {
	Status           string                  `json:"status"`
	UUID             string                  `json:"uuid"`
	Graphs           []models.DecoratedGraph `json:"graphs"`
	AvailableCredits float64                 `json:"available_credits"`
}

type GraphSuggestionsResponse struct {
	Status      string   `json:"status"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions"`
}

// @Summary      Generate graphs
// @Description  Sends the combined row set and the user's prompt to the LLM, decorates the returned Plotly specifications with branding defaults, and debits the call's credit cost.
// @Tags         graphs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        generateRequest  body      GenerateGraphRequest  true  "Prompt and data"
// @Success      200              {object}  GenerateGraphResponse
// @Failure      201              {object}  errorResponse "Insufficient credits"
// @Failure      400              {object}  errorResponse
// @Failure      404              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /generate_graph [post]
func (s *Server) GenerateGraphHandler(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req GenerateGraphRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.UUID == "" || req.Prompt == "" || len(req.Files) == 0 {
		log.Printf("ERROR: UUID, prompt, or files missing in the request. [Request ID: %s]", requestID)
		respondError(w, http.StatusBadRequest, "UUID, prompt, and files are required.")
		return
	}

	user, err := s.store.GetUserByUUID(r.Context(), req.UUID)
	if err != nil {
		log.Printf("ERROR: Failed to retrieve user: %v. UUID: %s [Request ID: %s]", err, req.UUID, requestID)
		respondError(w, http.StatusInternalServerError, "Failed to generate graph.")
		return
	}
	if user == nil {
		log.Printf("ERROR: User not found. UUID: %s [Request ID: %s]", req.UUID, requestID)
		respondError(w, http.StatusNotFound, "User not found.")
		return
	}

	var combined []models.Row
	for _, f := range req.Files {
		combined = append(combined, f.Data...)
	}
	log.Printf("Combined data size: %d records. UUID: %s [Request ID: %s]", len(combined), req.UUID, requestID)

	result, cost, err := s.llm.GenerateGraph(r.Context(), req.Prompt, combined)
	if err != nil {
		log.Printf("ERROR: Error generating graph for UUID: %s. Reason: %v [Request ID: %s]", req.UUID, err, requestID)
		respondError(w, http.StatusInternalServerError, "Failed to generate graph.")
		return
	}

	if cost > user.AvailableCredits {
		log.Printf("ERROR: Insufficient credits. UUID: %s, Available: %v, Required: %v [Request ID: %s]", req.UUID, user.AvailableCredits, cost, requestID)
		respondError(w, http.StatusCreated, insufficientCreditsMessage)
		return
	}

	if result.Status == "error" {
		suggestions := result.Suggestions
		if len(suggestions) == 0 {
			suggestions = s.llm.SuggestAlternatives(r.Context(), req.Prompt)
		}
		log.Printf("WARN: Prompt validation failed. UUID: %s, Suggestions: %v [Request ID: %s]", req.UUID, suggestions, requestID)
		respondJSON(w, http.StatusOK, GraphSuggestionsResponse{
			Status:      "error",
			Message:     "The prompt was vague or invalid. Please try one of the suggested prompts.",
			Suggestions: suggestions,
		})
		return
	}

	if len(result.Graphs) == 0 {
		log.Printf("ERROR: No graphs generated. UUID: %s [Request ID: %s]", req.UUID, requestID)
		respondError(w, http.StatusInternalServerError, "No graphs generated from the provided prompt.")
		return
	}

	// One bad graph spec fails the whole response: no partial graph lists.
	decorated := make([]models.DecoratedGraph, 0, len(result.Graphs))
	for _, entry := range result.Graphs {
		graph, err := plotly.ParseGraphJSON(entry.GraphJSON)
		if err != nil {
			log.Printf("WARN: Failed to parse graph JSON for UUID: %s, Error: %v [Request ID: %s]", req.UUID, err, requestID)
			respondError(w, http.StatusInternalServerError, "Failed to parse one or more generated graphs.")
			return
		}

		if plotly.IsTable(graph) {
			plotly.DecorateTable(graph)
		} else {
			plotly.DecorateChart(graph, req.CustomColors)
		}

		title := entry.Title
		if title == "" {
			title = "Graph"
		}
		description := entry.Description
		if description == "" {
			description = "No description available."
		}

		decorated = append(decorated, models.DecoratedGraph{
			Graph:       graph,
			Title:       title,
			Description: description,
		})
	}

	newBalance, ok, err := s.store.DebitCredits(r.Context(), req.UUID, cost)
	if err != nil {
		log.Printf("ERROR: Failed to deduct credits: %v. UUID: %s [Request ID: %s]", err, req.UUID, requestID)
		respondError(w, http.StatusInternalServerError, "Failed to generate graph.")
		return
	}
	if !ok {
		// A concurrent debit can drain the balance between lookup and
		// settlement; the conditional update keeps it non-negative.
		log.Printf("ERROR: Insufficient credits at debit time. UUID: %s, Required: %v [Request ID: %s]", req.UUID, cost, requestID)
		respondError(w, http.StatusCreated, insufficientCreditsMessage)
		return
	}
	log.Printf("Deducting credits. UUID: %s, Used: %v, Remaining: %v [Request ID: %s]", req.UUID, cost, newBalance, requestID)

	respondJSON(w, http.StatusOK, GenerateGraphResponse{
		Status:           "success",
		UUID:             req.UUID,
		Graphs:           decorated,
		AvailableCredits: newBalance,
	})
}
