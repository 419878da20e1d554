package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

// LocalExecutor runs child processes on the host and waits for them.
type LocalExecutor struct {
	shell string
}

// NewLocalExecutor builds a new executor. shell is only used for the
// explicit shell opt-in; "" or "auto" selects sh (cmd on Windows).
func NewLocalExecutor(shell string) *LocalExecutor {
	if shell == "" || shell == domain.ShellAuto {
		shell = "/bin/sh"
		if runtime.GOOS == "windows" {
			shell = "cmd"
		}
	}
	return &LocalExecutor{shell: shell}
}

// Run executes program with a literal argument vector; nothing is
// interpreted by a shell. Once started the process runs to completion.
func (e *LocalExecutor) Run(ctx context.Context, program string, args []string) (domain.CommandResult, error) {
	c := exec.CommandContext(context.WithoutCancel(ctx), program, args...)
	line := program
	if len(args) > 0 {
		line += " " + strings.Join(args, " ")
	}
	return run(c, line)
}

// RunShell hands the whole line to the configured shell.
func (e *LocalExecutor) RunShell(ctx context.Context, commandLine string) (domain.CommandResult, error) {
	flag := "-c"
	if strings.EqualFold(e.shell, "cmd") || strings.HasSuffix(strings.ToLower(e.shell), "cmd.exe") {
		flag = "/C"
	}
	c := exec.CommandContext(context.WithoutCancel(ctx), e.shell, flag, commandLine)
	return run(c, commandLine)
}

// Shell reports the interpreter used by RunShell.
func (e *LocalExecutor) Shell() string {
	return e.shell
}

func run(c *exec.Cmd, line string) (domain.CommandResult, error) {
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	err := c.Run()
	result := domain.CommandResult{
		Command: line,
		Stdout:  strings.ToValidUTF8(stdout.String(), "�"),
		Stderr:  strings.ToValidUTF8(stderr.String(), "�"),
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}
	if err != nil {
		return domain.CommandResult{}, fmt.Errorf("start %s: %w", c.Path, err)
	}
	return result, nil
}

var _ ports.ProcessRunner = (*LocalExecutor)(nil)
