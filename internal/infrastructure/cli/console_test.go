package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/doeshing/toolgate/internal/domain"
)

type countingMetrics struct {
	authorized int
	denied     int
}

func (m *countingMetrics) ObserveDispatch(string, domain.OutcomeStatus, time.Duration) {}

func (m *countingMetrics) ObserveConfirmation(_ domain.ConfirmationLevel, outcome domain.ConfirmationOutcome) {
	if outcome == domain.Authorized {
		m.authorized++
		return
	}
	m.denied++
}

func TestConsoleWritesPlainTextWhenNotATerminal(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(&out)

	c.Started(domain.ActionDeleteFile, "a.txt")
	c.Cancelled(domain.ActionDeleteFile, "a.txt", "operator declined")
	c.Failed(domain.ActionReadFile, "b.txt", "file does not exist")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	want := []string{
		"agent command > delete: a.txt",
		"agent command > cancelled delete a.txt: operator declined",
		"agent command > failed read b.txt: file does not exist",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines: %q", len(lines), out.String())
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q want %q", i, lines[i], want[i])
		}
	}
}
