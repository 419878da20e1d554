package doctor

import (
	"context"
	"fmt"
	"os"

	"github.com/doeshing/toolgate/internal/application/config"
	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

// RuleSet exposes the effective classification tables.
type RuleSet interface {
	CommandRules() []domain.PatternRule
	PathRules() []domain.PatternRule
}

// Service runs environment diagnostics.
type Service struct {
	ConfigProvider ports.ConfigProvider
	LoadRules      func(path string) (RuleSet, error)
	Interactive    func() bool
	ResolveShell   func(shell string) string
	LookPath       func(file string) (string, error)
}

// Run executes checks and returns a report. The error is non-nil only when
// the configuration itself cannot be loaded.
func (s *Service) Run(ctx context.Context) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config file", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	if err := config.Validate(cfg); err != nil {
		checks = append(checks, fail("Config file", err.Error()))
	} else {
		checks = append(checks, ok("Config file", fmt.Sprintf("format version %s", cfg.ConfigFormatVersion)))
	}

	if s.LoadRules != nil {
		rules, err := s.LoadRules(cfg.Security.RulesFile)
		if err != nil {
			checks = append(checks, fail("Rules", err.Error()))
		} else {
			checks = append(checks, ok("Rules", fmt.Sprintf("%d command patterns, %d protected paths",
				len(rules.CommandRules()), len(rules.PathRules()))))
		}
	}

	checks = append(checks, s.confirmationCheck(cfg))
	checks = append(checks, workdirCheck())

	if cfg.Execution.AllowShell {
		checks = append(checks, s.shellCheck(cfg.Execution.Shell))
	} else {
		checks = append(checks, ok("Shell", "shell interpretation disabled"))
	}

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) confirmationCheck(cfg domain.Config) domain.HealthCheck {
	if !cfg.PromptsInteractively() {
		return warn("Confirmation", "mode is deny: every gated action will be cancelled")
	}
	if s.Interactive != nil && !s.Interactive() {
		return warn("Confirmation", "operator console is not a terminal: prompts will be denied")
	}
	return ok("Confirmation", "operator prompts enabled")
}

func (s *Service) shellCheck(shell string) domain.HealthCheck {
	if s.ResolveShell != nil {
		shell = s.ResolveShell(shell)
	}
	lookPath := s.LookPath
	if lookPath == nil {
		return warn("Shell", fmt.Sprintf("%s not verified", shell))
	}
	path, err := lookPath(shell)
	if err != nil {
		return fail("Shell", fmt.Sprintf("%s not found: %v", shell, err))
	}
	return warn("Shell", fmt.Sprintf("shell interpretation enabled via %s", path))
}

func workdirCheck() domain.HealthCheck {
	wd, err := os.Getwd()
	if err != nil {
		return fail("Working directory", err.Error())
	}
	if _, err := os.ReadDir(wd); err != nil {
		return fail("Working directory", err.Error())
	}
	return ok("Working directory", wd)
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
