package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/guessr"
	"github.com/aretw0/guessr/internal/logging"
	"github.com/aretw0/guessr/pkg/domain"
	"github.com/aretw0/guessr/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// TreeResourceURI exposes the Mermaid decision tree of the default session.
const TreeResourceURI = "guessr://tree"

// Engine defines what the MCP server needs from the game engine. *guessr.Engine satisfies it.
type Engine interface {
	Start(ctx context.Context, sessionID string) string
	Answer(ctx context.Context, sessionID, answer string) string
	Quit(ctx context.Context, sessionID string) string
	Graph(ctx context.Context, sessionID string) (string, error)
}

// Server exposes the game as MCP tools.
type Server struct {
	engine    Engine
	token     string
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithToken sets the identity token returned by the validate tool.
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
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

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("guessr-mcp", strings.TrimSpace(guessr.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the legacy SSE transport on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	baseURL := fmt.Sprintf("http://localhost:%d", port)
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	return s.serve(ctx, port, mux, "sse")
}

// ServeHTTP serves the streamable HTTP transport at /mcp on port until ctx is done.
func (s *Server) ServeHTTP(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", corsMiddleware(server.NewStreamableHTTPServer(s.mcpServer)))
	return s.serve(ctx, port, mux, "http")
}

func (s *Server) serve(ctx context.Context, port int, handler http.Handler, transport string) error {
	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening", "transport", transport, "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Mcp-Session-Id, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	sessionArg := mcp.WithString("session_id",
		mcp.Description("Game session. Omit to play the default single-player game."))

	s.mcpServer.AddTool(mcp.NewTool("start_game",
		mcp.WithDescription("Start a new guessing game. Always call this first. Returns the first yes/no question."),
		sessionArg,
	), s.handleStartGame)

	s.mcpServer.AddTool(mcp.NewTool("answer_question",
		mcp.WithDescription("Answer the last question or guess. Accepted answers: 'yes', 'no', 'don't know'. Returns the next question, a guess or the end of the game."),
		mcp.WithString("answer", mcp.Required(), mcp.Description("The player's answer")),
		sessionArg,
	), s.handleAnswerQuestion)

	s.mcpServer.AddTool(mcp.NewTool("quit_game",
		mcp.WithDescription("End the current game."),
		sessionArg,
	), s.handleQuitGame)

	s.mcpServer.AddTool(mcp.NewTool("validate",
		mcp.WithDescription("Return the identity token of this server."),
	), s.handleValidate)
}

// toolArgs holds the arguments shared by the game tools.
type toolArgs struct {
	SessionID string `mapstructure:"session_id"`
	Answer    string `mapstructure:"answer"`
}

func decodeArgs(request mcp.CallToolRequest) (toolArgs, error) {
	var args toolArgs
	if err := mapstructure.Decode(request.GetArguments(), &args); err != nil {
		return toolArgs{}, fmt.Errorf("invalid arguments: %w", err)
	}
	args.SessionID = strings.TrimSpace(args.SessionID)
	if args.SessionID == "" {
		args.SessionID = guessr.DefaultSession
	}
	return args, nil
}

func (s *Server) handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.engine.Start(ctx, args.SessionID)), nil
}

func (s *Server) handleAnswerQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if raw, ok := request.GetArguments()["answer"]; !ok || raw == nil {
		return mcp.NewToolResultError("required argument \"answer\" not found"), nil
	}
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	clean, err := runner.SanitizeInput(args.Answer)
	if err != nil {
		s.logger.Warn("MCP answer_question: Input rejected", "err", err, "size", len(args.Answer))
		return mcp.NewToolResultError(fmt.Sprintf("input rejected: %v", err)), nil
	}
	return mcp.NewToolResultText(s.engine.Answer(ctx, args.SessionID, clean)), nil
}

func (s *Server) handleQuitGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(s.engine.Quit(ctx, args.SessionID)), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.token), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(TreeResourceURI, "Decision tree of the default game",
		mcp.WithResourceDescription("Mermaid flowchart of the current tree with the visited path highlighted"),
		mcp.WithMIMEType("text/vnd.mermaid"),
	), s.handleTreeResource)
}

func (s *Server) handleTreeResource(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	chart, err := s.engine.Graph(ctx, guessr.DefaultSession)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) || errors.Is(err, domain.ErrNoActiveSession) {
			return nil, errors.New("no game has been started yet")
		}
		return nil, fmt.Errorf("failed to render tree: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      TreeResourceURI,
			MIMEType: "text/vnd.mermaid",
			Text:     chart,
		},
	}, nil
}
