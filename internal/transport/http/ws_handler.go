package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/maxhum-sudo/LifeCost/internal/app"
	"github.com/maxhum-sudo/LifeCost/internal/domain"
)

// WSHandler walks a client through the questionnaire over a websocket.
// The server keeps no wizard state: every message carries the full answers.
type WSHandler struct {
	service  *app.EstimateService
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.EstimateService, logger *slog.Logger) *WSHandler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &WSHandler{
		service: service,
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type wizardPayload struct {
	CurrentID string          `json:"currentId"`
	Answers   []domain.Answer `json:"answers"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type questionPayload struct {
	app.Step
	Question domain.Question `json:"question"`
}

type resultPayload struct {
	domain.QuizResult
	Summary domain.ResultSummary `json:"summary"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and answers next, previous and evaluate
// messages in order until the client disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		out := h.handle(r, inbound)
		if err := conn.WriteJSON(out); err != nil {
			h.logger.Warn("ws write failed", "error", err)
			return
		}
	}
}

func (h *WSHandler) handle(r *http.Request, inbound inboundMessage) outboundMessage {
	var payload wizardPayload
	if len(inbound.Payload) > 0 {
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return wsError("invalid payload")
		}
	}

	switch inbound.Type {
	case "next", "previous":
		step, err := h.service.Navigate(r.Context(), payload.CurrentID, app.Direction(inbound.Type), payload.Answers)
		if err != nil {
			return wsError(err.Error())
		}
		if step.Complete {
			return outboundMessage{Type: "complete", Payload: step}
		}
		q, err := h.service.Question(r.Context(), step.QuestionID)
		if err != nil {
			return wsError(err.Error())
		}
		return outboundMessage{Type: "question", Payload: questionPayload{Step: step, Question: q}}
	case "evaluate":
		result, err := h.service.Evaluate(r.Context(), payload.Answers)
		if err != nil {
			return wsError(err.Error())
		}
		return outboundMessage{Type: "result", Payload: resultPayload{QuizResult: result, Summary: h.service.Summary(result)}}
	default:
		return wsError("unsupported message type")
	}
}

func wsError(msg string) outboundMessage {
	return outboundMessage{Type: "error", Payload: errorPayload{Message: msg}}
}
