package domain

import "errors"

var (
	ErrUnknownTool       = errors.New("unknown tool")
	ErrMissingParameter  = errors.New("missing required parameter")
	ErrInvalidParameters = errors.New("invalid parameters")
	ErrNotFound          = errors.New("file does not exist")
	ErrIsDirectory       = errors.New("path is a directory")
	ErrNotText           = errors.New("file is not valid UTF-8 text")
	ErrShellDisabled     = errors.New("shell execution is disabled (execution.allow_shell)")
)
