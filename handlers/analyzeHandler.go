package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"snapquiz/models"
	"snapquiz/services"
	"snapquiz/services/extract"
	"snapquiz/services/quiz"

	"github.com/gorilla/mux"
)

const (
	maxUploadBytes = 100 << 20
	// generation bounds the OCR + model round-trip for one request.
	generationTimeout = 120 * time.Second
)

type AnalyzeHandler struct {
	quizService     *quiz.Service
	extractService  *extract.Service
	identityService *services.IdentityService
}

func NewAnalyzeHandler(quizService *quiz.Service, extractService *extract.Service, identityService *services.IdentityService) *AnalyzeHandler {
	return &AnalyzeHandler{
		quizService:     quizService,
		extractService:  extractService,
		identityService: identityService,
	}
}

func (h *AnalyzeHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/analyze", h.AnalyzeText).Methods("POST")
	router.HandleFunc("/api/analyze-file", h.AnalyzeFile).Methods("POST")
	router.HandleFunc("/api/analyze-ocr", h.AnalyzeOCR).Methods("POST")
}

func (h *AnalyzeHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received text analysis request")

	var req models.AnalyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "No text provided")
		return
	}

	h.generate(w, r, req.Text)
}

func (h *AnalyzeHandler) AnalyzeFile(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received file analysis request")

	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
	defer cancel()

	text, err := h.extractService.ExtractPDFText(ctx, data)
	if err != nil {
		h.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	h.generateCtx(ctx, w, r, text)
}

func (h *AnalyzeHandler) AnalyzeOCR(w http.ResponseWriter, r *http.Request) {
	log.Printf("[INFO] Received OCR analysis request")

	data, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
	defer cancel()

	text, err := h.extractService.OCRText(ctx, data)
	if err != nil {
		h.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	h.generateCtx(ctx, w, r, text)
}

func (h *AnalyzeHandler) generate(w http.ResponseWriter, r *http.Request, text string) {
	ctx, cancel := context.WithTimeout(r.Context(), generationTimeout)
	defer cancel()
	h.generateCtx(ctx, w, r, text)
}

func (h *AnalyzeHandler) generateCtx(ctx context.Context, w http.ResponseWriter, r *http.Request, text string) {
	userID := h.resolveUser(r)

	result, err := h.quizService.GenerateFromText(ctx, text, userID)
	if err != nil {
		log.Printf("[ERROR] Quiz generation failed: %v", err)
		h.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.AnalyzeResponse{
		Success:       true,
		Result:        result.Payload,
		TotalQuestion: len(result.Quizzes),
	})
}

// resolveUser is best-effort: generation works for anonymous callers, the
// result is just not persisted.
func (h *AnalyzeHandler) resolveUser(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	userID, err := h.identityService.Resolve(authHeader)
	if err != nil {
		log.Printf("[INFO] Proceeding anonymously: %v", err)
		return ""
	}

	return userID
}

func (h *AnalyzeHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "No file")
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "No file")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("[ERROR] Failed to read uploaded file: %v", err)
		h.writeErrorResponse(w, http.StatusBadRequest, "Failed to read file")
		return nil, false
	}

	return data, true
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrAuthRequired):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrExtractionFailure):
		return http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (h *AnalyzeHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *AnalyzeHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
