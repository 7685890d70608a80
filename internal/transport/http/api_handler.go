package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"tg-quiz-webapp/internal/app"
	"tg-quiz-webapp/internal/client"
	"tg-quiz-webapp/internal/domain"
)

// APIHandler serves the JSON endpoints consumed by the mini-app.
type APIHandler struct {
	service *app.QuizService
}

func NewAPIHandler(service *app.QuizService) *APIHandler {
	return &APIHandler{service: service}
}

type questionsResponse struct {
	Questions []domain.Question `json:"questions"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

// Register mounts the API routes on mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/questions", h.Questions)
	mux.HandleFunc("POST /api/submit_answer", h.SubmitAnswer)
	mux.HandleFunc("GET /api/user_stats/{userID}", h.UserStats)
}

func (h *APIHandler) Questions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.service.Questions(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, questionsResponse{Questions: questions})
}

func (h *APIHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var sub domain.Submission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	verdict, err := h.service.SubmitAnswer(r.Context(), sub)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	log.Printf("answer user=%d question=%d correct=%v request=%s",
		sub.UserID, sub.QuestionID, verdict.IsCorrect, r.Header.Get(client.RequestIDHeader))
	writeJSON(w, http.StatusOK, verdict)
}

func (h *APIHandler) UserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid user id"})
		return
	}
	stats, err := h.service.UserStats(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *APIHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidSubmission):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Missing user_id or question_id"})
	case errors.Is(err, domain.ErrQuestionNotFound):
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "Invalid question_id"})
	default:
		log.Printf("%s %s failed (request=%s): %v", r.Method, r.URL.Path, r.Header.Get(client.RequestIDHeader), err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Detail: "Internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("write response: %v", err)
	}
}
