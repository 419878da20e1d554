package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/doeshing/toolgate/internal/domain"
)

// RenderOutcome prints an outcome for a human instead of a planner.
func RenderOutcome(out io.Writer, o domain.Outcome) {
	fmt.Fprintf(out, "%s: %s\n", o.Action, strings.ToUpper(string(o.Status)))
	if o.Path != "" {
		fmt.Fprintf(out, "Path: %s\n", o.Path)
	}
	if o.Reason != "" {
		fmt.Fprintf(out, "Reason: %s\n", o.Reason)
	}
	if o.Message != "" {
		fmt.Fprintf(out, "Error: %s\n", o.Message)
	}

	switch {
	case o.WriteResult != nil:
		fmt.Fprintf(out, "Wrote %s\n", humanize.Bytes(uint64(o.Size)))
	case o.ReadResult != nil:
		fmt.Fprintln(out)
		fmt.Fprint(out, o.Content)
		if !strings.HasSuffix(o.Content, "\n") {
			fmt.Fprintln(out)
		}
	case o.ListResult != nil:
		renderListing(out, o.ListResult)
	case o.CommandResult != nil:
		fmt.Fprintf(out, "Command: %s\nExit code: %d\n", o.Command, o.ExitCode)
		if o.Stdout != "" {
			fmt.Fprintln(out, "\nstdout:")
			fmt.Fprintln(out, strings.TrimRight(o.Stdout, "\n"))
		}
		if o.Stderr != "" {
			fmt.Fprintln(out, "\nstderr:")
			fmt.Fprintln(out, strings.TrimRight(o.Stderr, "\n"))
		}
	}
}

func renderListing(out io.Writer, l *domain.ListResult) {
	fmt.Fprintf(out, "%d entries\n", l.Count)
	for _, name := range l.Entries {
		fmt.Fprintf(out, "  %s\n", name)
	}
	for _, entry := range l.Details {
		name := entry.Name
		if entry.IsDir {
			name += "/"
		}
		fmt.Fprintf(out, "  %s  %8s  %s  %s\n",
			entry.Mode,
			humanize.Bytes(uint64(entry.Size)),
			humanize.Time(entry.ModTime),
			name)
	}
}
