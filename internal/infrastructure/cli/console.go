package cli

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"

	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

// Console echoes planner activity to the operator. Colors are dropped
// automatically when the stream is not a terminal or NO_COLOR is set.
type Console struct {
	mu     sync.Mutex
	out    *termenv.Output
	prefix termenv.Style
	warn   termenv.Style
	fail   termenv.Style
}

// NewConsole writes to out, defaulting to stderr.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stderr
	}
	o := termenv.NewOutput(out)
	return &Console{
		out:    o,
		prefix: o.String(domain.ConsolePrefix).Foreground(o.Color("3")),
		warn:   o.String().Foreground(o.Color("3")),
		fail:   o.String().Foreground(o.Color("1")),
	}
}

var verbs = map[domain.ActionKind]string{
	domain.ActionCreateFile: "create",
	domain.ActionReadFile:   "read",
	domain.ActionDeleteFile: "delete",
	domain.ActionListFiles:  "list",
	domain.ActionRunCommand: "run",
}

func (c *Console) Started(kind domain.ActionKind, subject string) {
	c.line("%s %s: %s", c.prefix, verbOf(kind), subject)
}

func (c *Console) Cancelled(kind domain.ActionKind, subject string, reason string) {
	c.line("%s %s %s %s: %s", c.prefix, c.warn.Styled("cancelled"), verbOf(kind), subject, reason)
}

func (c *Console) Failed(kind domain.ActionKind, subject string, message string) {
	c.line("%s %s %s %s: %s", c.prefix, c.fail.Styled("failed"), verbOf(kind), subject, message)
}

// verbOf falls back to "call" for names that are not tools.
func verbOf(kind domain.ActionKind) string {
	if verb, ok := verbs[kind]; ok {
		return verb
	}
	return "call"
}

func (c *Console) line(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format+"\n", args...)
}

var _ ports.Reporter = (*Console)(nil)
