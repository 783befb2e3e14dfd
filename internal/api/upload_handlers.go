package api

import (
	"log"
	"net/http"

	"datviz-backend/internal/ingest"
	"datviz-backend/internal/models"
)

// maxTotalUploadBytes caps the combined size of a multi-file upload request.
const maxTotalUploadBytes = 500 << 20

const insufficientCreditsMessage = "Insufficient credits. Subscribe to our Pro Version!"

type UploadResponse struct {
	Message          string                 `json:"message"`
	UUID             string                 `json:"uuid"`
	Files            []models.ProcessedFile `json:"files"`
	AvailableCredits float64                `json:"available_credits"`
}

// @Summary      Upload CSV files
// @Description  Parses the uploaded CSV files in memory, computes per-file statistics, queries the LLM for insights and prompt suggestions, and debits the total credit cost once.
// @Tags         files
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        uuid   formData  string  true  "User UUID"
// @Param        files  formData  file    true  "CSV files"
// @Success      200    {object}  UploadResponse
// @Failure      201    {object}  errorResponse "Insufficient credits"
// @Failure      400    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Failure      500    {object}  errorResponse
// @Router       /upload [post]
func (s *Server) UploadHandler(w http.ResponseWriter, r *http.Request) {
	requestID := GetRequestID(r.Context())

	// The size ceiling is enforced before any file is touched or any user
	// is looked up.
	if r.ContentLength > maxTotalUploadBytes {
		log.Printf("ERROR: Total file size exceeds 500MB. Total size: %d bytes. [Request ID: %s]", r.ContentLength, requestID)
		respondError(w, http.StatusBadRequest, "Total file size exceeds 500MB. Please upload files smaller than 500MB in total.")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxTotalUploadBytes)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "Error parsing multipart form.")
		return
	}

	userID := r.FormValue("uuid")
	if userID == "" {
		log.Printf("ERROR: No UUID provided in the request. [Request ID: %s]", requestID)
		respondError(w, http.StatusBadRequest, "UUID is required.")
		return
	}

	fileHeaders := r.MultipartForm.File["files"]
	if len(fileHeaders) == 0 {
		log.Printf("ERROR: No files selected for processing. UUID: %s [Request ID: %s]", userID, requestID)
		respondError(w, http.StatusBadRequest, "No files selected for processing.")
		return
	}

	user, err := s.store.GetUserByUUID(r.Context(), userID)
	if err != nil {
		log.Printf("ERROR: Failed to retrieve user: %v. UUID: %s [Request ID: %s]", err, userID, requestID)
		respondError(w, http.StatusInternalServerError, "Failed to process files.")
		return
	}
	if user == nil {
		log.Printf("ERROR: User not found. UUID: %s [Request ID: %s]", userID, requestID)
		respondError(w, http.StatusNotFound, "User not found.")
		return
	}

	availableCredits := user.AvailableCredits
	totalCost := 0.0
	var processed []models.ProcessedFile

	for _, fh := range fileHeaders {
		if fh.Filename == "" {
			log.Printf("WARN: A file with no name was skipped. UUID: %s [Request ID: %s]", userID, requestID)
			continue
		}
		if !ingest.ValidateFilename(fh.Filename) {
			log.Printf("WARN: Invalid file format skipped: %s. UUID: %s [Request ID: %s]", fh.Filename, userID, requestID)
			continue
		}

		file, err := fh.Open()
		if err != nil {
			processed = append(processed, models.ProcessedFile{
				FileName: fh.Filename,
				Error:    "Failed to process the file: " + err.Error(),
			})
			continue
		}

		rows, err := ingest.ParseCSV(file)
		file.Close()
		if err != nil {
			log.Printf("ERROR: Error processing file in memory: %s. Reason: %v. UUID: %s [Request ID: %s]", fh.Filename, err, userID, requestID)
			processed = append(processed, models.ProcessedFile{
				FileName: fh.Filename,
				Error:    "Failed to process the file: " + err.Error(),
			})
			continue
		}

		stats := ingest.Statistics(rows)

		analysis, cost, err := s.llm.Analyze(r.Context(), fh.Filename, rows)
		if err != nil {
			processed = append(processed, models.ProcessedFile{
				FileName: fh.Filename,
				Error:    "Failed to process the file: " + err.Error(),
			})
			continue
		}

		// Each file is checked against the balance as fetched at request
		// start; the accumulated total is settled atomically below.
		if cost > availableCredits {
			log.Printf("ERROR: Insufficient credits. UUID: %s, Available: %v, Required: %v [Request ID: %s]", userID, availableCredits, cost, requestID)
			respondError(w, http.StatusCreated, insufficientCreditsMessage)
			return
		}
		totalCost += cost

		processed = append(processed, models.ProcessedFile{
			FileName:          fh.Filename,
			Statistics:        &stats,
			Data:              rows,
			Insights:          analysis.Insights,
			PromptSuggestions: analysis.PromptSuggestions,
		})
	}

	newBalance, ok, err := s.store.DebitCredits(r.Context(), userID, totalCost)
	if err != nil {
		log.Printf("ERROR: Failed to deduct credits: %v. UUID: %s [Request ID: %s]", err, userID, requestID)
		respondError(w, http.StatusInternalServerError, "Failed to process files.")
		return
	}
	if !ok {
		log.Printf("ERROR: Insufficient credits. UUID: %s, Required: %v, Available: %v [Request ID: %s]", userID, totalCost, availableCredits, requestID)
		respondError(w, http.StatusBadRequest, "Insufficient credits.")
		return
	}
	log.Printf("Credits deducted. UUID: %s, Used: %v, Remaining: %v [Request ID: %s]", userID, totalCost, newBalance, requestID)

	if len(processed) == 0 {
		log.Printf("ERROR: No valid files were processed. UUID: %s [Request ID: %s]", userID, requestID)
		respondError(w, http.StatusBadRequest, "No valid files were uploaded or processed.")
		return
	}

	respondJSON(w, http.StatusOK, UploadResponse{
		Message:          "Files processed successfully in memory",
		UUID:             userID,
		Files:            processed,
		AvailableCredits: newBalance,
	})
}
