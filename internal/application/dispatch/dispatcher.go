// Package dispatch routes planner tool calls to the action executors.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

// Executor is the set of action executors the dispatcher routes to.
type Executor interface {
	CreateFile(ctx context.Context, req domain.CreateFile) domain.Outcome
	ReadFile(ctx context.Context, req domain.ReadFile) domain.Outcome
	DeleteFile(ctx context.Context, req domain.DeleteFile) domain.Outcome
	ListFiles(ctx context.Context, req domain.ListFiles) domain.Outcome
	RunCommand(ctx context.Context, req domain.RunCommand) domain.Outcome
}

// Service is the planner-facing boundary. Calls are handled one at a time by
// the caller's goroutine; the dispatcher holds no per-call state.
type Service struct {
	Executor Executor
	Metrics  ports.MetricsRecorder
	Logger   ports.Logger
	// Reporter, when set, receives failures that never reach an executor.
	Reporter ports.Reporter
}

// Validate reports missing collaborators.
func (s *Service) Validate() error {
	if s.Executor == nil || s.Metrics == nil || s.Logger == nil {
		return errors.New("dispatch.Service dependencies not satisfied")
	}
	return nil
}

// Dispatch decodes one tool call, runs it and returns exactly one outcome.
func (s *Service) Dispatch(ctx context.Context, call domain.ToolCall) (out domain.Outcome) {
	started := time.Now()
	requestID := call.ID
	if requestID == "" {
		requestID = uuid.NewString()
	}
	kind := domain.ActionKind(call.Name)

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("internal error: %v", r)
			s.Logger.Error("dispatch panicked", err, map[string]interface{}{
				"request_id": requestID,
				"tool":       call.Name,
			})
			out = domain.Failed(kind, err.Error())
			s.reportFailure(kind, call.Name, err.Error())
		}
		s.Metrics.ObserveDispatch(call.Name, out.Status, time.Since(started))
		s.Logger.Debug("dispatch finished", map[string]interface{}{
			"request_id": requestID,
			"tool":       call.Name,
			"status":     string(out.Status),
			"elapsed_ms": time.Since(started).Milliseconds(),
		})
	}()

	s.Logger.Debug("dispatch received", map[string]interface{}{
		"request_id": requestID,
		"tool":       call.Name,
		"arg_count":  len(call.Args),
	})
	req, err := Decode(call)
	if err != nil {
		s.reportFailure(kind, call.Name, err.Error())
		return domain.Failed(kind, err.Error())
	}
	return s.DispatchRequest(ctx, req)
}

// DispatchRequest routes an already typed request. Requests with an empty
// path or program are failed before any executor sees them.
func (s *Service) DispatchRequest(ctx context.Context, req domain.ActionRequest) domain.Outcome {
	if err := checkRequired(req); err != nil {
		var kind domain.ActionKind
		if req != nil {
			kind = req.Kind()
		}
		s.reportFailure(kind, string(kind), err.Error())
		return domain.Failed(kind, err.Error())
	}
	switch r := req.(type) {
	case domain.CreateFile:
		return s.Executor.CreateFile(ctx, r)
	case domain.ReadFile:
		return s.Executor.ReadFile(ctx, r)
	case domain.DeleteFile:
		return s.Executor.DeleteFile(ctx, r)
	case domain.ListFiles:
		return s.Executor.ListFiles(ctx, r)
	case domain.RunCommand:
		return s.Executor.RunCommand(ctx, r)
	default:
		msg := fmt.Sprintf("%v: %T", domain.ErrUnknownTool, req)
		s.reportFailure("", fmt.Sprintf("%T", req), msg)
		return domain.Failed("", msg)
	}
}

func checkRequired(req domain.ActionRequest) error {
	switch r := req.(type) {
	case nil:
		return fmt.Errorf("%w: nil request", domain.ErrUnknownTool)
	case domain.CreateFile:
		return requireNonEmpty("path", r.Path)
	case domain.ReadFile:
		return requireNonEmpty("path", r.Path)
	case domain.DeleteFile:
		return requireNonEmpty("path", r.Path)
	case domain.RunCommand:
		return requireNonEmpty("command", r.Program)
	}
	return nil
}

func requireNonEmpty(name, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s", domain.ErrMissingParameter, name)
	}
	return nil
}

func (s *Service) reportFailure(kind domain.ActionKind, subject, message string) {
	if s.Reporter != nil {
		s.Reporter.Failed(kind, subject, message)
	}
}

var _ ports.Dispatcher = (*Service)(nil)
