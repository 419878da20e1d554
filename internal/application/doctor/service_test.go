package doctor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doeshing/toolgate/internal/domain"
)

type staticConfig struct {
	cfg domain.Config
	err error
}

func (s staticConfig) Load(context.Context) (domain.Config, error) { return s.cfg, s.err }

type staticRules struct{}

func (staticRules) CommandRules() []domain.PatternRule { return make([]domain.PatternRule, 14) }
func (staticRules) PathRules() []domain.PatternRule    { return make([]domain.PatternRule, 15) }

func baseConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Security:            domain.SecuritySettings{RulesFile: "rules.yaml"},
		Confirmation:        domain.ConfirmationSettings{Mode: domain.ConfirmationModePrompt},
		Server:              domain.ServerSettings{Transport: domain.TransportStdio, Port: 8080},
	}
}

func check(t *testing.T, report domain.HealthReport, name string) domain.HealthCheck {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q missing", name)
	return domain.HealthCheck{}
}

func TestDoctorHealthy(t *testing.T) {
	t.Chdir(t.TempDir())
	svc := &Service{
		ConfigProvider: staticConfig{cfg: baseConfig()},
		LoadRules:      func(string) (RuleSet, error) { return staticRules{}, nil },
		Interactive:    func() bool { return true },
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, report.HasErrors())
	assert.Equal(t, "14 command patterns, 15 protected paths", check(t, report, "Rules").Details)
	assert.Equal(t, domain.HealthOK, check(t, report, "Confirmation").Status)
	assert.Equal(t, domain.HealthOK, check(t, report, "Shell").Status)
}

func TestDoctorReportsProblems(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg := baseConfig()
	cfg.Execution.AllowShell = true
	cfg.Execution.Shell = "zsh"
	svc := &Service{
		ConfigProvider: staticConfig{cfg: cfg},
		LoadRules:      func(string) (RuleSet, error) { return nil, errors.New("parse rules file: bad") },
		Interactive:    func() bool { return false },
		ResolveShell:   func(s string) string { return s },
		LookPath:       func(string) (string, error) { return "", errors.New("not in PATH") },
	}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.True(t, report.HasErrors())
	assert.Equal(t, domain.HealthError, check(t, report, "Rules").Status)
	assert.Equal(t, domain.HealthWarn, check(t, report, "Confirmation").Status)
	assert.Contains(t, check(t, report, "Shell").Details, "zsh not found")
}

func TestDoctorDenyModeWarns(t *testing.T) {
	cfg := baseConfig()
	cfg.Confirmation.Mode = domain.ConfirmationModeDeny
	svc := &Service{ConfigProvider: staticConfig{cfg: cfg}}

	report, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Contains(t, check(t, report, "Confirmation").Details, "deny")
}

func TestDoctorConfigLoadFailure(t *testing.T) {
	svc := &Service{ConfigProvider: staticConfig{err: errors.New("read config: denied")}}

	report, err := svc.Run(context.Background())
	require.Error(t, err)
	assert.True(t, report.HasErrors())
}
