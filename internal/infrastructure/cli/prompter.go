package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

// Prompter implements the two-level confirmation gate over a line-oriented
// console. Each question is a single read with no retry.
type Prompter struct {
	in      *bufio.Reader
	out     io.Writer
	logger  ports.Logger
	metrics ports.MetricsRecorder
}

// PrompterOption configures a Prompter.
type PrompterOption func(*Prompter)

// WithPrompterLogger records failed reads.
func WithPrompterLogger(logger ports.Logger) PrompterOption {
	return func(p *Prompter) {
		p.logger = logger
	}
}

// WithPrompterMetrics counts answers per level.
func WithPrompterMetrics(metrics ports.MetricsRecorder) PrompterOption {
	return func(p *Prompter) {
		p.metrics = metrics
	}
}

// NewPrompter constructs a prompter; nil streams default to stdin and stderr.
func NewPrompter(in io.Reader, out io.Writer, opts ...PrompterOption) *Prompter {
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stderr
	}
	p := &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Confirm asks an ordinary question; "y" and "yes" authorize.
func (p *Prompter) Confirm(description string) domain.ConfirmationOutcome {
	fmt.Fprintf(p.out, "\nTool call: %s\nProceed? (y/n): ", description)
	answer, ok := p.readAnswer()
	outcome := domain.Denied
	if ok && (answer == "y" || answer == "yes") {
		outcome = domain.Authorized
	}
	p.observe(domain.ConfirmOrdinary, outcome)
	return outcome
}

// ConfirmElevated asks about a dangerous operation; only "yes" authorizes.
func (p *Prompter) ConfirmElevated(description string, reasons []string) domain.ConfirmationOutcome {
	fmt.Fprintf(p.out, "\n⚠️  DANGEROUS OPERATION: %s\n", description)
	for _, reason := range reasons {
		fmt.Fprintf(p.out, " - %s\n", reason)
	}
	fmt.Fprint(p.out, "Type 'yes' to confirm (anything else cancels): ")
	answer, ok := p.readAnswer()
	outcome := domain.Denied
	if ok && answer == "yes" {
		outcome = domain.Authorized
	}
	p.observe(domain.ConfirmElevated, outcome)
	return outcome
}

// readAnswer reads one line. A final line without newline still counts;
// any other read failure yields ok=false.
func (p *Prompter) readAnswer() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		if p.logger != nil {
			p.logger.Warn("confirmation input unavailable, treating as denial", map[string]interface{}{"error": err.Error()})
		}
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(line)), true
}

func (p *Prompter) observe(level domain.ConfirmationLevel, outcome domain.ConfirmationOutcome) {
	if p.metrics != nil {
		p.metrics.ObserveConfirmation(level, outcome)
	}
}

// DenyAll is the prompter installed when no operator can answer. Every gate
// is denied.
type DenyAll struct {
	Reason  string
	Logger  ports.Logger
	Metrics ports.MetricsRecorder
}

// Confirm denies the ordinary gate without reading input.
func (d DenyAll) Confirm(description string) domain.ConfirmationOutcome {
	return d.deny(domain.ConfirmOrdinary, description)
}

// ConfirmElevated denies the elevated gate without reading input.
func (d DenyAll) ConfirmElevated(description string, _ []string) domain.ConfirmationOutcome {
	return d.deny(domain.ConfirmElevated, description)
}

func (d DenyAll) deny(level domain.ConfirmationLevel, description string) domain.ConfirmationOutcome {
	if d.Logger != nil {
		d.Logger.Info("confirmation denied without prompting", map[string]interface{}{
			"reason":      d.Reason,
			"description": description,
		})
	}
	if d.Metrics != nil {
		d.Metrics.ObserveConfirmation(level, domain.Denied)
	}
	return domain.Denied
}

var (
	_ ports.ConfirmationPrompter = (*Prompter)(nil)
	_ ports.ConfirmationPrompter = DenyAll{}
)
