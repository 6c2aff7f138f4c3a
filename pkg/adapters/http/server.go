package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/guessr"
	"github.com/aretw0/guessr/internal/logging"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/aretw0/guessr/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Engine defines what the HTTP API needs from the game engine. *guessr.Engine satisfies it.
type Engine interface {
	StartReply(ctx context.Context, sessionID string) (domain.Reply, error)
	AnswerReply(ctx context.Context, sessionID, answer string) (domain.Reply, error)
	QuitReply(ctx context.Context, sessionID string) (domain.Reply, error)
	Inspect(ctx context.Context, sessionID string) (*domain.Game, error)
	Graph(ctx context.Context, sessionID string) (string, error)
	End(ctx context.Context, sessionID string) error
}

// Server serves the game over a JSON API.
type Server struct {
	Engine  Engine
	Streams *StreamManager

	token    string
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithToken sets the identity token served by GET /validate.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithMetrics exposes gatherer at GET /metrics.
func WithMetrics(gatherer prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = gatherer
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// AnswerRequest is the body of POST /games/{id}/answers.
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// GameView is the public state of a session.
type GameView struct {
	ID             string         `json:"id"`
	Phase          domain.Phase   `json:"phase"`
	Remaining      int            `json:"remaining"`
	QuestionsAsked int            `json:"questions_asked"`
	PendingGuess   string         `json:"pending_guess,omitempty"`
	Outcome        domain.Outcome `json:"outcome,omitempty"`
	Turns          []domain.Turn  `json:"turns"`
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s.Routes()
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/validate", s.Validate)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/games/{id}", func(r chi.Router) {
		r.Post("/", s.Start)
		r.Get("/", s.Get)
		r.Delete("/", s.Quit)
		r.Post("/answers", s.Answer)
		r.Get("/tree", s.Tree)
		r.Get("/events", s.SubscribeEvents)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Start handles POST /games/{id}.
func (s *Server) Start(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reply, err := s.Engine.StartReply(r.Context(), id)
	status := http.StatusCreated
	if err != nil {
		// The game could not be loaded; the reply explains why.
		status = http.StatusServiceUnavailable
		s.logger.Warn("Start failed", "session_id", id, "err", err)
	}
	s.publish(id, reply)
	s.writeJSON(w, status, reply)
}

// Answer handles POST /games/{id}/answers.
func (s *Server) Answer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("Answer: Invalid request body", "err", err)
		return
	}

	clean, err := runner.SanitizeInput(body.Answer)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		s.logger.Warn("Answer: Input rejected", "err", err, "size", len(body.Answer))
		return
	}

	reply, err := s.Engine.AnswerReply(r.Context(), id, clean)
	status := http.StatusOK
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrNoActiveSession):
		status = http.StatusConflict
	}
	s.publish(id, reply)
	s.writeJSON(w, status, reply)
}

// Quit handles DELETE /games/{id}. The session is forgotten afterwards.
func (s *Server) Quit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reply, err := s.Engine.QuitReply(r.Context(), id)
	status := http.StatusOK
	if errors.Is(err, domain.ErrNoActiveSession) {
		status = http.StatusConflict
	}
	if err := s.Engine.End(r.Context(), id); err != nil {
		s.logger.Warn("Quit: Failed to drop session", "session_id", id, "err", err)
	}
	s.publish(id, reply)
	s.writeJSON(w, status, reply)
}

// Get handles GET /games/{id}.
func (s *Server) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	g, err := s.Engine.Inspect(r.Context(), id)
	if err != nil {
		s.writeError(w, id, err)
		return
	}
	view := GameView{
		ID:             g.ID,
		Phase:          g.Phase(),
		Remaining:      len(g.Remaining),
		QuestionsAsked: g.QuestionsAsked,
		PendingGuess:   g.PendingGuess,
		Outcome:        g.Outcome,
		Turns:          g.Turns,
	}
	if view.Turns == nil {
		view.Turns = []domain.Turn{}
	}
	s.writeJSON(w, http.StatusOK, view)
}

// Tree handles GET /games/{id}/tree.
func (s *Server) Tree(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	chart, err := s.Engine.Graph(r.Context(), id)
	if err != nil {
		s.writeError(w, id, err)
		return
	}
	w.Header().Set("Content-Type", "text/vnd.mermaid; charset=utf-8")
	_, _ = w.Write([]byte(chart))
}

// Validate handles GET /validate.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(s.token))
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "guessr-http",
		"version": strings.TrimSpace(guessr.Version),
	})
}

func (s *Server) writeError(w http.ResponseWriter, id string, err error) {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		http.Error(w, fmt.Sprintf("session %q not found", id), http.StatusNotFound)
	case errors.Is(err, domain.ErrNoActiveSession):
		http.Error(w, fmt.Sprintf("session %q has no game", id), http.StatusConflict)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
		s.logger.Error("Request failed", "session_id", id, "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

func (s *Server) publish(id string, reply domain.Reply) {
	payload, err := json.Marshal(reply)
	if err != nil {
		return
	}
	s.Streams.Broadcast(id, string(payload))
}
