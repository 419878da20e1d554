package domain

import "strings"

// ActionKind names one of the privileged actions a planner may request.
// The string value doubles as the tool name on the planner protocol.
type ActionKind string

const (
	ActionCreateFile ActionKind = "create_file"
	ActionReadFile   ActionKind = "read_file"
	ActionDeleteFile ActionKind = "delete_file"
	ActionListFiles  ActionKind = "list_files"
	ActionRunCommand ActionKind = "run_command"
)

// ToolCall is the loosely typed request shape produced by a tool-calling planner.
type ToolCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// ActionRequest is the closed set of typed requests understood by the executors.
// Only the types declared in this file implement it.
type ActionRequest interface {
	Kind() ActionKind
	isActionRequest()
}

// CreateFile writes Content to Path, replacing any existing file.
type CreateFile struct {
	Path    string
	Content []byte
}

// ReadFile returns the text content of Path.
type ReadFile struct {
	Path string
}

// DeleteFile removes exactly the regular file at Path.
type DeleteFile struct {
	Path string
}

// ListFiles enumerates the working directory.
type ListFiles struct {
	Detailed bool
}

// RunCommand spawns Program with Args. Args are passed as a literal vector
// unless Shell is set, in which case the joined line goes to the host shell.
type RunCommand struct {
	Program string
	Args    []string
	Shell   bool
}

func (CreateFile) Kind() ActionKind { return ActionCreateFile }
func (ReadFile) Kind() ActionKind   { return ActionReadFile }
func (DeleteFile) Kind() ActionKind { return ActionDeleteFile }
func (ListFiles) Kind() ActionKind  { return ActionListFiles }
func (RunCommand) Kind() ActionKind { return ActionRunCommand }

func (CreateFile) isActionRequest() {}
func (ReadFile) isActionRequest()   {}
func (DeleteFile) isActionRequest() {}
func (ListFiles) isActionRequest()  {}
func (RunCommand) isActionRequest() {}

// CommandLine joins program and arguments the way they are shown to the
// operator and fed to the classifier.
func (r RunCommand) CommandLine() string {
	if len(r.Args) == 0 {
		return r.Program
	}
	return r.Program + " " + strings.Join(r.Args, " ")
}
