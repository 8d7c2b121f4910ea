package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fiveshield/shieldcall/internal/alert"
	"github.com/fiveshield/shieldcall/internal/domain"
	"github.com/fiveshield/shieldcall/internal/report"
	"github.com/fiveshield/shieldcall/internal/responder"
)

// anonymousUserID labels calls started without a user identifier.
const anonymousUserID = "anonymous"

// Handler holds dependencies for API handlers.
type Handler struct {
	responder *responder.Responder
	reports   *report.Generator
	alerts    *alert.Engine
	bus       domain.EventBus
	version   string
}

// NewHandler creates a new API handler. alerts and bus may be nil, in
// which case call-end event publication is skipped.
func NewHandler(rsp *responder.Responder, reports *report.Generator, alerts *alert.Engine, bus domain.EventBus, version string) *Handler {
	return &Handler{
		responder: rsp,
		reports:   reports,
		alerts:    alerts,
		bus:       bus,
		version:   version,
	}
}

// StartCallRequest is the request body for POST /call/start.
type StartCallRequest struct {
	CallerNumber string `json:"caller_number"`
	UserID       string `json:"user_id,omitempty"`
}

// StartCallResponse is the response for POST /call/start.
type StartCallResponse struct {
	CallID      string `json:"call_id"`
	Status      string `json:"status"`
	MaxDuration int    `json:"max_duration"`
	Message     string `json:"message"`
}

// StartCall handles POST /call/start requests.
func (h *Handler) StartCall(w http.ResponseWriter, r *http.Request) {
	var req StartCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if req.CallerNumber == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "caller_number is required",
		})
		return
	}

	userID := req.UserID
	if userID == "" {
		userID = anonymousUserID
	}

	callID := newCallID(userID, req.CallerNumber)

	slog.Info("decoy call started",
		"call_id", callID,
		"caller_number", req.CallerNumber,
	)

	writeJSON(w, http.StatusOK, StartCallResponse{
		CallID:      callID,
		Status:      "started",
		MaxDuration: domain.MaxCallDuration,
		Message:     "AI 대리 통화가 시작되었습니다.",
	})
}

// ProcessAudioRequest is the request body for POST /call/process-audio.
type ProcessAudioRequest struct {
	CallID    string        `json:"call_id"`
	AudioData string        `json:"audio_data"`
	UserRole  string        `json:"user_role,omitempty"`
	History   []domain.Turn `json:"conversation_history,omitempty"`
}

// ProcessAudioResponse is the response for POST /call/process-audio.
type ProcessAudioResponse struct {
	CallID     string  `json:"call_id"`
	Transcript string  `json:"transcript"`
	AIResponse string  `json:"ai_response"`
	ScamScore  float64 `json:"scam_score"`
	Status     string  `json:"status"`
}

// ProcessAudio handles POST /call/process-audio requests. Speech
// transcription is out of scope: audio_data is treated as the caller's
// transcript text and passed through verbatim.
func (h *Handler) ProcessAudio(w http.ResponseWriter, r *http.Request) {
	var req ProcessAudioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if req.CallID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "call_id is required",
		})
		return
	}
	if req.AudioData == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "audio_data is required",
		})
		return
	}

	role := domain.ParseRole(req.UserRole)
	reply, score := h.responder.Respond(r.Context(), req.AudioData, role, req.History)

	writeJSON(w, http.StatusOK, ProcessAudioResponse{
		CallID:     req.CallID,
		Transcript: req.AudioData,
		AIResponse: reply,
		ScamScore:  score,
		Status:     "ongoing",
	})
}

// EndCallRequest is the request body for POST /call/end.
type EndCallRequest struct {
	CallID  string        `json:"call_id"`
	History []domain.Turn `json:"conversation_history"`
}

// EndCallResponse is the response for POST /call/end.
type EndCallResponse struct {
	CallID string        `json:"call_id"`
	Status string        `json:"status"`
	Report domain.Report `json:"report"`
}

// reportEvent is the payload published on the report and alert topics.
type reportEvent struct {
	CallID         string        `json:"call_id"`
	Report         domain.Report `json:"report"`
	TriggeredRules []string      `json:"triggered_rules,omitempty"`
}

// EndCall handles POST /call/end requests: it synthesizes the final
// report, publishes the call outcome events and returns the report.
func (h *Handler) EndCall(w http.ResponseWriter, r *http.Request) {
	var req EndCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "invalid JSON request body",
		})
		return
	}

	if req.CallID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error": "call_id is required",
		})
		return
	}

	rep := h.reports.Generate(req.History)

	h.publishOutcome(r, req.CallID, rep, len(req.History))

	slog.Info("decoy call ended",
		"call_id", req.CallID,
		"verdict", rep.Verdict,
		"risk_level", rep.RiskLevel,
		"scam_score", rep.Score,
	)

	writeJSON(w, http.StatusOK, EndCallResponse{
		CallID: req.CallID,
		Status: "ended",
		Report: rep,
	})
}

// publishOutcome fans the finished report out on the event bus: every
// report goes to the report topic, and reports matching an alert rule go
// to the alert topic as well. Publish failures are logged, never
// surfaced to the client.
func (h *Handler) publishOutcome(r *http.Request, callID string, rep domain.Report, turnCount int) {
	if h.bus == nil {
		return
	}

	ctx := r.Context()

	event := reportEvent{CallID: callID, Report: rep}
	if payload, err := json.Marshal(event); err == nil {
		if err := h.bus.Publish(ctx, domain.TopicCallReport, payload); err != nil {
			slog.Error("failed to publish call report", "call_id", callID, "error", err)
		}
	}

	if h.alerts == nil {
		return
	}

	triggered := h.alerts.Evaluate(&rep, turnCount)
	if len(triggered) == 0 {
		return
	}

	event.TriggeredRules = triggered
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := h.bus.Publish(ctx, domain.TopicCallAlert, payload); err != nil {
		slog.Error("failed to publish call alert", "call_id", callID, "error", err)
		return
	}

	slog.Warn("call alert raised",
		"call_id", callID,
		"rules", triggered,
		"risk_level", rep.RiskLevel,
	)
}

// GetReport handles GET /call/report/{call_id}. Reports are delivered
// in the /call/end response and on the event bus; there is no report
// store to query, so this endpoint only acknowledges the call ID.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	callID := chi.URLParam(r, "call_id")

	writeJSON(w, http.StatusOK, map[string]string{
		"call_id": callID,
		"message": "reports are returned by POST /call/end",
	})
}

// Health returns server health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"

	// Check event bus health
	if h.bus != nil {
		if err := h.bus.Ping(r.Context()); err != nil {
			status = "degraded"
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":  status,
		"version": h.version,
	})
}

// Ready returns whether the server is ready to accept traffic.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"ready": "true",
	})
}

// newCallID builds a call identifier from the user, the normalized
// caller number and a short random suffix.
func newCallID(userID, callerNumber string) string {
	return "call_" + userID + "_" + normalizeNumber(callerNumber) + "_" + uuid.New().String()[:8]
}

// normalizeNumber strips separators from a phone number.
func normalizeNumber(number string) string {
	replacer := strings.NewReplacer("-", "", " ", "", "(", "", ")", "")
	return replacer.Replace(number)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
