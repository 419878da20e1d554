// Package mcp exposes the tool dispatcher to a planner over the Model Context
// Protocol, on stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

const shutdownTimeout = 5 * time.Second

// Server wraps a dispatcher as an MCP server. Tool calls are handled one at a
// time: the confirmation gate owns the operator console for the whole call.
type Server struct {
	dispatcher ports.Dispatcher
	logger     ports.Logger
	metrics    http.Handler
	mcpServer  *server.MCPServer

	mu sync.Mutex
}

// Option customizes a Server.
type Option func(*Server)

// WithMetricsHandler mounts h on /metrics in SSE mode.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// NewServer registers every catalogued tool against the dispatcher.
func NewServer(dispatcher ports.Dispatcher, logger ports.Logger, version string, opts ...Option) *Server {
	s := &Server{
		dispatcher: dispatcher,
		logger:     logger,
		mcpServer:  server.NewMCPServer("toolgate", version, server.WithToolCapabilities(false)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, tool := range domain.ToolCatalog {
		s.mcpServer.AddTool(BuildTool(tool), s.handle)
	}
	return s
}

// BuildTool renders a catalogue entry as an MCP tool schema.
func BuildTool(tool domain.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(tool.Description)}
	for _, param := range tool.Params {
		propOpts := []mcp.PropertyOption{mcp.Description(param.Description)}
		if param.Required {
			propOpts = append(propOpts, mcp.Required())
		}
		switch param.Type {
		case domain.ParamBoolean:
			opts = append(opts, mcp.WithBoolean(param.Name, propOpts...))
		case domain.ParamArray:
			propOpts = append(propOpts, mcp.WithStringItems())
			opts = append(opts, mcp.WithArray(param.Name, propOpts...))
		default:
			opts = append(opts, mcp.WithString(param.Name, propOpts...))
		}
	}
	return mcp.NewTool(string(tool.Name), opts...)
}

func (s *Server) handle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.dispatcher.Dispatch(ctx, domain.ToolCall{
		Name: request.Params.Name,
		Args: request.GetArguments(),
	})

	payload, err := json.Marshal(out)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode outcome: %v", err)), nil
	}
	result := mcp.NewToolResultText(string(payload))
	result.IsError = out.IsFailure()
	return result, nil
}

// ServeStdio serves the protocol on in/out until ctx ends or in closes.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	s.logger.Info("mcp server listening", map[string]interface{}{"transport": domain.TransportStdio})
	return server.NewStdioServer(s.mcpServer).Listen(ctx, in, out)
}

// Router builds the SSE transport routes.
func (s *Server) Router(baseURL string) http.Handler {
	sse := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Handle("/sse", sse.SSEHandler())
	r.Handle("/message", sse.MessageHandler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return r
}

// ServeSSE listens on port until ctx is cancelled, then shuts down gracefully.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Router(fmt.Sprintf("http://localhost:%d", port)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("mcp server listening", map[string]interface{}{
			"transport": domain.TransportSSE,
			"address":   addr,
		})
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down mcp server", nil)
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}
