package domain

// Config mirrors ~/.toolgate/config.yaml.
type Config struct {
	ConfigFormatVersion string               `yaml:"config_format_version"`
	Security            SecuritySettings     `yaml:"security"`
	Confirmation        ConfirmationSettings `yaml:"confirmation"`
	Execution           ExecutionSettings    `yaml:"execution"`
	Logging             LoggingSettings      `yaml:"logging"`
	Server              ServerSettings       `yaml:"server"`
}

// SecuritySettings points at the optional rules file extending the built-in tables.
type SecuritySettings struct {
	RulesFile string `yaml:"rules_file"`
}

// ConfirmationSettings controls how the operator is asked.
type ConfirmationSettings struct {
	Mode string `yaml:"mode"`
}

// ExecutionSettings controls how commands run.
type ExecutionSettings struct {
	AllowShell bool   `yaml:"allow_shell"`
	Shell      string `yaml:"shell"`
}

// LoggingSettings configures the diagnostic logger.
type LoggingSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ServerSettings configures the planner-facing MCP server.
type ServerSettings struct {
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
	Metrics   bool   `yaml:"metrics"`
}

// Confirmation modes.
const (
	ConfirmationModePrompt = "prompt"
	ConfirmationModeDeny   = "deny"
)

// Server transports.
const (
	TransportStdio = "stdio"
	TransportSSE   = "sse"
)

// ShellAuto selects the platform shell (sh -c, or cmd /C on Windows).
const ShellAuto = "auto"

// PromptsInteractively reports whether gated actions may be authorized at all.
func (c Config) PromptsInteractively() bool {
	return c.Confirmation.Mode == "" || c.Confirmation.Mode == ConfirmationModePrompt
}
