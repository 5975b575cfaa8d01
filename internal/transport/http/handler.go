package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/maxhum-sudo/LifeCost/internal/app"
	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

// Handler exposes the estimate use cases over REST.
type Handler struct {
	service *app.EstimateService
	logger  *slog.Logger
}

func NewHandler(service *app.EstimateService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{service: service, logger: logger}
}

// NewRouter mounts the REST API, the websocket wizard and the health check.
func NewRouter(service *app.EstimateService, logger *slog.Logger) http.Handler {
	h := NewHandler(service, logger)
	ws := NewWSHandler(service, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ws", ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Route("/quiz", func(r chi.Router) {
			r.Get("/", h.getQuestionnaire)
			r.Get("/questions/{id}", h.getQuestion)
			r.Post("/navigate", h.navigate)
			r.Post("/calculate", h.calculate)
			r.Post("/housing", h.housing)
		})
		r.Post("/results", h.submit)
		r.Get("/results", h.getResult)
	})
	return r
}

type answersRequest struct {
	Answers []domain.Answer `json:"answers"`
}

type navigateRequest struct {
	CurrentID string          `json:"currentId"`
	Direction app.Direction   `json:"direction"`
	Answers   []domain.Answer `json:"answers"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) getQuestionnaire(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Questionnaire(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) getQuestion(w http.ResponseWriter, r *http.Request) {
	q, err := h.service.Question(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *Handler) navigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if !decode(w, r, &req) {
		return
	}
	step, err := h.service.Navigate(r.Context(), req.CurrentID, req.Direction, req.Answers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, step)
}

func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	if !decode(w, r, &req) {
		return
	}
	result, err := h.service.Evaluate(r.Context(), req.Answers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) housing(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	if !decode(w, r, &req) {
		return
	}
	options, err := h.service.HousingOptions(r.Context(), req.Answers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, options)
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	var req answersRequest
	if !decode(w, r, &req) {
		return
	}
	saved, err := h.service.Submit(r.Context(), req.Answers)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *Handler) getResult(w http.ResponseWriter, r *http.Request) {
	saved, err := h.service.Result(r.Context(), r.URL.Query().Get("sessionId"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// statusFor classifies service errors for the boundary.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidAnswers):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrResultNotFound),
		errors.Is(err, domain.ErrQuestionnaireNotFound),
		errors.Is(err, domain.ErrQuestionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
