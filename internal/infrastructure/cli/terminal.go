package cli

import (
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"

	"github.com/doeshing/toolgate/internal/app"
	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

// IsTerminal reports whether f is an interactive terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// readerIsInteractive treats anything that is not an *os.File (tests, pipes
// set up in-process) as an operator.
func readerIsInteractive(in io.Reader) bool {
	f, ok := in.(*os.File)
	if !ok {
		return true
	}
	return IsTerminal(f)
}

func openTerminal() (*os.File, error) {
	name := "/dev/tty"
	if runtime.GOOS == "windows" {
		name = "CONIN$"
	}
	return os.Open(name)
}

// selectPrompter picks the confirmation source. With the stdio transport the
// planner owns stdin, so prompts read the controlling terminal instead. When
// no operator can answer, every gate is denied.
func selectPrompter(c *app.Container, in io.Reader, errOut io.Writer, transport string) (ports.ConfirmationPrompter, func()) {
	deny := func(reason string) (ports.ConfirmationPrompter, func()) {
		c.Logger.Warn("confirmation prompts disabled, gated actions will be cancelled", map[string]interface{}{
			"reason": reason,
		})
		return DenyAll{Reason: reason, Logger: c.Logger, Metrics: c.Metrics}, func() {}
	}
	opts := []PrompterOption{WithPrompterLogger(c.Logger), WithPrompterMetrics(c.Metrics)}

	if !c.Config.PromptsInteractively() {
		return deny("confirmation.mode is " + c.Config.Confirmation.Mode)
	}
	if transport == domain.TransportStdio {
		tty, err := openTerminal()
		if err != nil {
			return deny("no controlling terminal: " + err.Error())
		}
		return NewPrompter(tty, errOut, opts...), func() { _ = tty.Close() }
	}
	if !readerIsInteractive(in) {
		return deny("operator console is not a terminal")
	}
	return NewPrompter(in, errOut, opts...), func() {}
}

// attachOperator installs the prompter and console trace, then checks that
// the container is complete.
func attachOperator(c *app.Container, prompter ports.ConfirmationPrompter, errOut io.Writer) error {
	console := NewConsole(errOut)
	c.Tools.Prompter = prompter
	c.Tools.Reporter = console
	c.Dispatcher.Reporter = console
	return c.Ready()
}
