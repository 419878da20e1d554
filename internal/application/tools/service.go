// Package tools implements the action executors. Every executor validates
// what it can, passes the confirmation gates the classifier demands, performs
// its effect and encodes exactly one outcome; no error escapes as a Go error.
package tools

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

// Service holds the collaborators shared by all executors.
type Service struct {
	Classifier ports.RiskClassifier
	Prompter   ports.ConfirmationPrompter
	FS         ports.FileSystem
	Runner     ports.ProcessRunner
	Reporter   ports.Reporter
	Logger     ports.Logger

	// AllowShell enables RunCommand.Shell; it is off unless configured.
	AllowShell bool
}

// Validate reports missing collaborators.
func (s *Service) Validate() error {
	if s.Classifier == nil || s.Prompter == nil || s.FS == nil || s.Runner == nil ||
		s.Reporter == nil || s.Logger == nil {
		return errors.New("tools.Service dependencies not satisfied")
	}
	return nil
}

// authorize runs the ordinary gate and, for dangerous targets, the elevated
// gate after it. Both must authorize. ok=false carries the cancelled outcome.
func (s *Service) authorize(kind domain.ActionKind, subject, description string, risk domain.RiskAssessment) (domain.Outcome, bool) {
	if s.Prompter.Confirm(description) != domain.Authorized {
		return s.cancel(kind, subject, "operator declined the operation"), false
	}
	if risk.Tier != domain.RiskDangerous {
		return domain.Outcome{}, true
	}
	if s.Prompter.ConfirmElevated(description, risk.Reasons) != domain.Authorized {
		return s.cancel(kind, subject, "operator declined the dangerous operation"), false
	}
	return domain.Outcome{}, true
}

func (s *Service) cancel(kind domain.ActionKind, subject, reason string) domain.Outcome {
	s.Reporter.Cancelled(kind, subject, reason)
	s.Logger.Debug("action cancelled", map[string]interface{}{
		"action":  string(kind),
		"subject": subject,
		"reason":  reason,
	})
	out := domain.Cancelled(kind, reason)
	out.Path = pathOf(kind, subject)
	return out
}

func (s *Service) fail(kind domain.ActionKind, subject string, err error) domain.Outcome {
	s.Reporter.Failed(kind, subject, err.Error())
	s.Logger.Warn("action failed", map[string]interface{}{
		"action":  string(kind),
		"subject": subject,
		"error":   err.Error(),
	})
	out := domain.Failed(kind, err.Error())
	out.Path = pathOf(kind, subject)
	return out
}

// existingFile checks that path names an existing regular file.
func (s *Service) existingFile(path string) error {
	info, err := s.FS.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s", domain.ErrIsDirectory, path)
	}
	return nil
}

func pathOf(kind domain.ActionKind, subject string) string {
	switch kind {
	case domain.ActionCreateFile, domain.ActionReadFile, domain.ActionDeleteFile:
		return subject
	default:
		return ""
	}
}
