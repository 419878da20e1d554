// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core (executors and dispatcher) depends only on these
// abstractions. Adapters in the infrastructure layer provide the concrete
// filesystem, process, console, classifier and metrics implementations, which
// keeps the confirmation logic testable without a terminal or a real shell.
package ports

import (
	"context"
	"io/fs"
	"time"

	"github.com/doeshing/toolgate/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.toolgate/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// RiskClassifier maps command lines and paths to a risk tier.
// Both methods are total: every input yields an assessment.
type RiskClassifier interface {
	ClassifyCommand(commandLine string) domain.RiskAssessment
	ClassifyPath(path string) domain.RiskAssessment
}

// ConfirmationPrompter is the operator-facing confirmation gate.
// A failure to obtain an answer is reported as domain.Denied, never as an error.
type ConfirmationPrompter interface {
	Confirm(description string) domain.ConfirmationOutcome
	ConfirmElevated(description string, reasons []string) domain.ConfirmationOutcome
}

// FileSystem performs the file effects of the executors. Paths are used as
// given, relative to the process working directory.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	WriteFile(path string, content []byte) error
	ReadFile(path string) ([]byte, error)
	Remove(path string) error
	List(detailed bool) ([]domain.FileEntry, error)
}

// ProcessRunner spawns a child process and waits for it to exit.
// A non-zero exit is not an error; only a failure to run is.
type ProcessRunner interface {
	Run(ctx context.Context, program string, args []string) (domain.CommandResult, error)
	RunShell(ctx context.Context, commandLine string) (domain.CommandResult, error)
}

// Reporter echoes what is happening to the operator console, independently of
// what is returned to the planner.
type Reporter interface {
	Started(kind domain.ActionKind, subject string)
	Cancelled(kind domain.ActionKind, subject string, reason string)
	Failed(kind domain.ActionKind, subject string, message string)
}

// MetricsRecorder receives counters for dispatches and confirmation answers.
type MetricsRecorder interface {
	ObserveDispatch(tool string, status domain.OutcomeStatus, elapsed time.Duration)
	ObserveConfirmation(level domain.ConfirmationLevel, outcome domain.ConfirmationOutcome)
}

// Dispatcher is the planner-facing boundary: one call in, one outcome out.
type Dispatcher interface {
	Dispatch(ctx context.Context, call domain.ToolCall) domain.Outcome
}

// Logger provides structured logging abstraction for the application layer.
// Implementations can route to different backends (stderr, files).
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
