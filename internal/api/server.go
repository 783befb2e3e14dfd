package api

import (
	"encoding/json"
	"log"
	"net/http"

	"datviz-backend/internal/config"
	"datviz-backend/internal/cryptox"
	"datviz-backend/internal/database"
	"datviz-backend/internal/llm"
)

type Server struct {
	config *config.Config
	store  *database.Store
	cipher *cryptox.Cipher
	llm    llm.Gateway
}

func NewServer(cfg *config.Config, store *database.Store, cipher *cryptox.Cipher, gateway llm.Gateway) *Server {
	return &Server{
		config: cfg,
		store:  store,
		cipher: cipher,
		llm:    gateway,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR: Failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// @Summary      Health check
// @Description  Reports service liveness and database reachability.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  errorResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		log.Printf("ERROR: Health check failed, database unreachable: %v", err)
		respondError(w, http.StatusServiceUnavailable, "Database unreachable.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
