package domain

import "time"

// OutcomeStatus is the coarse result marker every outcome carries.
type OutcomeStatus string

const (
	StatusSuccess   OutcomeStatus = "success"
	StatusCancelled OutcomeStatus = "cancelled"
	StatusError     OutcomeStatus = "error"
)

// Outcome is the structured, flat result returned to the planner for exactly
// one ActionRequest. Variant payloads are embedded pointers so that only the
// fields of the variant that produced the outcome are serialized.
type Outcome struct {
	Status  OutcomeStatus `json:"status"`
	Action  ActionKind    `json:"action"`
	Path    string        `json:"path,omitempty"`
	Reason  string        `json:"reason,omitempty"`
	Message string        `json:"message,omitempty"`

	*WriteResult
	*ReadResult
	*ListResult
	*CommandResult
}

// WriteResult describes a completed file creation.
type WriteResult struct {
	Size int `json:"size"`
}

// ReadResult carries the full text of a read file.
type ReadResult struct {
	Content string `json:"content"`
}

// ListResult carries a directory listing. Entries holds names only
// (directories end in "/"); Details is populated instead when a detailed
// listing was requested.
type ListResult struct {
	Count   int         `json:"count"`
	Entries []string    `json:"entries,omitempty"`
	Details []FileEntry `json:"details,omitempty"`
}

// FileEntry is one detailed directory entry.
type FileEntry struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	Mode    string    `json:"mode"`
	ModTime time.Time `json:"mod_time"`
	IsDir   bool      `json:"is_dir"`
}

// CommandResult reports a child process that ran to completion, whatever its
// exit code.
type CommandResult struct {
	Command  string `json:"command"`
	ExitCode int    `json:"exit_code"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
}

// Succeeded builds a success outcome for the given action.
func Succeeded(kind ActionKind) Outcome {
	return Outcome{Status: StatusSuccess, Action: kind}
}

// Cancelled builds the outcome for an authorization denial.
func Cancelled(kind ActionKind, reason string) Outcome {
	return Outcome{Status: StatusCancelled, Action: kind, Reason: reason}
}

// Failed builds the outcome for a validation, execution or dispatch failure.
func Failed(kind ActionKind, message string) Outcome {
	return Outcome{Status: StatusError, Action: kind, Message: message}
}

// IsFailure reports whether the outcome is a Failed variant, as opposed to a
// command that ran and exited non-zero.
func (o Outcome) IsFailure() bool {
	return o.Status == StatusError && o.CommandResult == nil
}
