package config

import (
	"fmt"
	"strings"

	"github.com/doeshing/toolgate/internal/domain"
)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate ensures config structure is consistent.
func Validate(cfg domain.Config) error {
	if err := validateSecurity(cfg.Security); err != nil {
		return err
	}
	switch cfg.Confirmation.Mode {
	case "", domain.ConfirmationModePrompt, domain.ConfirmationModeDeny:
	default:
		return fmt.Errorf("confirmation.mode must be prompt|deny, got %s", cfg.Confirmation.Mode)
	}
	if err := validateExecution(cfg.Execution); err != nil {
		return err
	}
	if level := strings.ToLower(cfg.Logging.Level); level != "" && !logLevels[level] {
		return fmt.Errorf("logging.level must be debug|info|warn|error, got %s", cfg.Logging.Level)
	}
	return validateServer(cfg.Server)
}

func validateSecurity(sec domain.SecuritySettings) error {
	if strings.TrimSpace(sec.RulesFile) == "" {
		return fmt.Errorf("security.rules_file must be set")
	}
	return nil
}

func validateExecution(exec domain.ExecutionSettings) error {
	switch strings.ToLower(exec.Shell) {
	case "", domain.ShellAuto, "sh", "bash", "zsh", "cmd", "powershell", "pwsh":
		return nil
	default:
		return fmt.Errorf("execution.shell must be auto|sh|bash|zsh|cmd|powershell|pwsh, got %s", exec.Shell)
	}
}

func validateServer(srv domain.ServerSettings) error {
	switch srv.Transport {
	case "", domain.TransportStdio, domain.TransportSSE:
	default:
		return fmt.Errorf("server.transport must be stdio|sse, got %s", srv.Transport)
	}
	if srv.Port < 0 || srv.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", srv.Port)
	}
	return nil
}
