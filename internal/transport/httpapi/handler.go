// Package httpapi exposes the ordering engine over HTTP. The caller keeps
// the conversation state and sends it back with every message.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/hammamikhairi/ottoorder/internal/domain"
	"github.com/hammamikhairi/ottoorder/internal/logger"
	"github.com/hammamikhairi/ottoorder/internal/state"
)

// Processor runs one conversation turn. *engine.Engine satisfies it.
type Processor interface {
	Process(ctx context.Context, cat *domain.Catalog, message string, st domain.State) domain.Reply
}

// ChatRequest is the body of POST /restaurant/{id}/chat.
type ChatRequest struct {
	Message string         `json:"message"`
	State   map[string]any `json:"state"`
}

// ChatResponse is the reply to a chat turn. WhatsAppLink is present only
// when the order was confirmed on this turn.
type ChatResponse struct {
	Message      string         `json:"message"`
	State        map[string]any `json:"state"`
	WhatsAppLink string         `json:"whatsapp_link,omitempty"`
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Catalogs  int       `json:"catalogs"`
	Timestamp time.Time `json:"timestamp"`
}

// Handler serves the chat and health endpoints.
type Handler struct {
	source  domain.CatalogSource
	engine  Processor
	log     *logger.Logger
	maxBody int64
}

// Option configures the handler.
type Option func(*Handler)

// WithMaxBodyBytes caps the request body size.
func WithMaxBodyBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxBody = n
		}
	}
}

// NewHandler creates the HTTP handler.
func NewHandler(source domain.CatalogSource, engine Processor, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{
		source:  source,
		engine:  engine,
		log:     log,
		maxBody: 64 << 10,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes returns the mux with every endpoint registered.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /restaurant/{id}/chat", h.Chat)
	mux.HandleFunc("GET /health", h.Health)
	return mux
}

// Chat handles one conversation turn.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	var req ChatRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		h.log.Debug("bad chat body for %s: %v", id, err)
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	cat, err := h.source.Get(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "restaurant not found")
		return
	case err != nil:
		h.log.Error("catalog %s unavailable: %v", id, err)
		writeError(w, http.StatusInternalServerError, "restaurant catalog unavailable")
		return
	}

	reply := h.engine.Process(r.Context(), cat, req.Message, state.Decode(req.State))

	writeJSON(w, http.StatusOK, ChatResponse{
		Message:      reply.Text,
		State:        state.Encode(reply.State),
		WhatsAppLink: reply.HandoffLink,
	})
}

// Health reports liveness and how many catalogs are visible.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ids, err := h.source.List(r.Context())
	if err != nil {
		h.log.Warn("health: listing catalogs: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Catalogs: len(ids), Timestamp: time.Now()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, `{"error":"encoding response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
