package api

import (
	"encoding/json"
	"log"
	"net/http"

	"datviz-backend/internal/cryptox"
	"datviz-backend/internal/database"

	"github.com/google/uuid"
)

type RegisterUserRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	PublicIP string `json:"public_ip" example:"203.0.113.7"`
}

type RegisterUserResponse struct {
	Status           string  `json:"status" example:"New"`
	UUID             string  `json:"uuid"`
	AvailableCredits float64 `json:"available_credits" example:"3000"`
}

// userUUID derives the deterministic user identifier from the identity
// inputs, so registering twice with the same email and IP yields the same
// UUID.
func userUUID(email, publicIP string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(email+publicIP)).String()
}

// @Summary      Register a user
// @Description  Registers a user by email and public IP. The email is stored encrypted and the IP hashed; an existing user gets their UUID back instead of a new row.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        registerRequest  body      RegisterUserRequest  true  "Identity inputs"
// @Success      200              {object}  RegisterUserResponse "Existing user"
// @Success      201              {object}  RegisterUserResponse "New user"
// @Failure      400              {object}  errorResponse
// @Failure      500              {object}  errorResponse
// @Router       /user/register [post]
func (s *Server) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.Email == "" || req.PublicIP == "" {
		log.Printf("ERROR: Email or public IP missing in the request. [Request ID: %s]", requestID)
		respondError(w, http.StatusBadRequest, "Email and public IP are required.")
		return
	}

	hashedIP := cryptox.HashIP(req.PublicIP)
	encryptedEmail, err := s.cipher.Encrypt(req.Email)
	if err != nil {
		log.Printf("ERROR: Failed to encrypt email: %v [Request ID: %s]", err, requestID)
		respondError(w, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	existing, err := s.store.GetUserByEmailOrIP(r.Context(), encryptedEmail, hashedIP)
	if err != nil {
		log.Printf("ERROR: Failed to look up user: %v [Request ID: %s]", err, requestID)
		respondError(w, http.StatusInternalServerError, "Failed to register user.")
		return
	}
	if existing != nil {
		log.Printf("Existing user found. UUID: %s, Credits: %v [Request ID: %s]", existing.UUID, existing.AvailableCredits, requestID)
		respondJSON(w, http.StatusOK, RegisterUserResponse{
			Status:           "Existing",
			UUID:             existing.UUID,
			AvailableCredits: existing.AvailableCredits,
		})
		return
	}

	user, err := s.store.CreateUser(r.Context(), database.CreateUserParams{
		UUID:             userUUID(req.Email, req.PublicIP),
		Email:            encryptedEmail,
		IP:               hashedIP,
		AvailableCredits: s.config.FreePromptCredits,
	})
	if err != nil {
		log.Printf("ERROR: Failed to register user: %v [Request ID: %s]", err, requestID)
		respondError(w, http.StatusInternalServerError, "Failed to register user.")
		return
	}

	log.Printf("New user registered. UUID: %s, Initial Credits: %v [Request ID: %s]", user.UUID, user.AvailableCredits, requestID)
	respondJSON(w, http.StatusCreated, RegisterUserResponse{
		Status:           "New",
		UUID:             user.UUID,
		AvailableCredits: user.AvailableCredits,
	})
}

type CheckUserRequest struct {
	PublicIP string `json:"public_ip" example:"203.0.113.7"`
}

type CheckUserResponse struct {
	Status string `json:"status" example:"Existing"`
	UUID   string `json:"uuid,omitempty"`
}

// @Summary      Check user status
// @Description  Checks whether a user exists for the given public IP. Read-only.
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        checkRequest  body      CheckUserRequest  true  "Public IP"
// @Success      200           {object}  CheckUserResponse
// @Failure      400           {object}  errorResponse
// @Failure      500           {object}  errorResponse
// @Router       /user/check [post]
func (s *Server) CheckUserHandler(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	var req CheckUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if req.PublicIP == "" {
		log.Printf("ERROR: Public IP is missing in the request. [Request ID: %s]", requestID)
		respondError(w, http.StatusBadRequest, "Public IP is required.")
		return
	}

	user, err := s.store.GetUserByIP(r.Context(), cryptox.HashIP(req.PublicIP))
	if err != nil {
		log.Printf("ERROR: Failed to check user status: %v [Request ID: %s]", err, requestID)
		respondError(w, http.StatusInternalServerError, "Failed to check user status.")
		return
	}

	if user != nil {
		respondJSON(w, http.StatusOK, CheckUserResponse{Status: "Existing", UUID: user.UUID})
		return
	}
	respondJSON(w, http.StatusOK, CheckUserResponse{Status: "New"})
}
