package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"snapquiz/models"
	"snapquiz/services"

	"github.com/gorilla/mux"
)

type QuizHandler struct {
	queryService      *services.QuizQueryService
	submissionService *services.SubmissionService
	identityService   *services.IdentityService
}

func NewQuizHandler(queryService *services.QuizQueryService, submissionService *services.SubmissionService, identityService *services.IdentityService) *QuizHandler {
	return &QuizHandler{
		queryService:      queryService,
		submissionService: submissionService,
		identityService:   identityService,
	}
}

func (h *QuizHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/quiz/pending", h.GetPending).Methods("GET")
	router.HandleFunc("/api/quiz/incorrect", h.GetIncorrect).Methods("GET")
	router.HandleFunc("/api/quiz/count-pending", h.CountPending).Methods("GET")
	router.HandleFunc("/api/quiz/count-incorrect", h.CountIncorrect).Methods("GET")
	router.HandleFunc("/api/quiz/submit", h.Submit).Methods("POST")
}

func (h *QuizHandler) GetPending(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	groups, count, err := h.queryService.PendingByCategory(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to list pending quizzes: %v", err)
		h.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.PendingListResponse{
		Success:      true,
		Result:       groups,
		PendingCount: count,
	})
}

func (h *QuizHandler) GetIncorrect(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	groups, count, err := h.queryService.IncorrectByCategory(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to list incorrect quizzes: %v", err)
		h.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.IncorrectListResponse{
		Success:        true,
		Result:         groups,
		IncorrectCount: count,
	})
}

func (h *QuizHandler) CountPending(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	count, err := h.queryService.CountPending(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to count pending quizzes: %v", err)
		h.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.PendingCountResponse{
		Success:      true,
		PendingCount: count,
	})
}

func (h *QuizHandler) CountIncorrect(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	count, err := h.queryService.CountIncorrect(userID)
	if err != nil {
		log.Printf("[ERROR] Failed to count incorrect quizzes: %v", err)
		h.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.IncorrectCountResponse{
		Success:        true,
		IncorrectCount: count,
	})
}

func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireUser(w, r)
	if !ok {
		return
	}

	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "No data provided")
		return
	}

	if err := h.submissionService.Submit(userID, &req); err != nil {
		log.Printf("[ERROR] Submission failed: %v", err)
		h.writeErrorResponse(w, statusForError(err), err.Error())
		return
	}

	h.writeJSONResponse(w, http.StatusOK, models.SubmitResponse{
		Success: true,
		Message: "Quiz result saved",
	})
}

// requireUser rejects the request when no authenticated user can be
// resolved; the quiz listing and submission paths never run anonymously.
func (h *QuizHandler) requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, err := h.identityService.Resolve(r.Header.Get("Authorization"))
	if err != nil {
		log.Printf("[ERROR] Authentication failed: %v", err)
		h.writeErrorResponse(w, http.StatusUnauthorized, "Authentication required")
		return "", false
	}

	return userID, true
}

func (h *QuizHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func (h *QuizHandler) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
