package domain

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// FilePermissions is the permission for files created on behalf of the planner (rw-r--r--)
	FilePermissions = 0o644
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Configuration defaults
const (
	// DefaultConfigDir is the directory under $HOME holding config and rules
	DefaultConfigDir = ".toolgate"
	// DefaultServerPort is the SSE listen port
	DefaultServerPort = 8080
	// DefaultLogLevel is used when logging.level is empty
	DefaultLogLevel = "info"
)

// Operator console
const (
	// ConsolePrefix marks lines describing what the planner is doing
	ConsolePrefix = "agent command >"
)
