package security

import "github.com/doeshing/toolgate/internal/domain"

// commandPatterns are matched as substrings of the lower-cased command line.
// Matching is deliberately coarse: a false positive costs one extra prompt.
var commandPatterns = []domain.PatternRule{
	{Pattern: "rm ", Tier: "dangerous", Reason: "Deletes files"},
	{Pattern: "rmdir ", Tier: "dangerous", Reason: "Removes directories"},
	{Pattern: "rm -rf", Tier: "dangerous", Reason: "Forced recursive delete"},
	{Pattern: "rm -r ", Tier: "dangerous", Reason: "Recursive delete"},
	{Pattern: "del ", Tier: "dangerous", Reason: "Deletes files (Windows)"},
	{Pattern: "format ", Tier: "dangerous", Reason: "Formats a volume"},
	{Pattern: "shutdown", Tier: "dangerous", Reason: "Shuts the machine down"},
	{Pattern: "sudo ", Tier: "dangerous", Reason: "Privilege escalation"},
	{Pattern: "su ", Tier: "dangerous", Reason: "Switches user"},
	{Pattern: "chmod 000", Tier: "dangerous", Reason: "Removes all permissions"},
	{Pattern: "> /dev", Tier: "dangerous", Reason: "Writes to a device file"},
	{Pattern: "dd if=", Tier: "dangerous", Reason: "Raw disk copy"},
	{Pattern: "killall", Tier: "dangerous", Reason: "Terminates processes"},
	{Pattern: "mkfs", Tier: "dangerous", Reason: "Creates a filesystem"},
}

// protectedPaths are matched as substrings of the lower-cased, slash-normalized
// path.
var protectedPaths = []domain.PatternRule{
	{Pattern: "/etc/", Tier: "dangerous", Reason: "System configuration"},
	{Pattern: "/var/", Tier: "dangerous", Reason: "System state and logs"},
	{Pattern: "/usr/", Tier: "dangerous", Reason: "System programs"},
	{Pattern: "/bin/", Tier: "dangerous", Reason: "System binaries"},
	{Pattern: "/sbin/", Tier: "dangerous", Reason: "System administration binaries"},
	{Pattern: "/root/", Tier: "dangerous", Reason: "Superuser home"},
	{Pattern: "C:/Windows/", Tier: "dangerous", Reason: "Windows system directory"},
	{Pattern: ".ssh/", Tier: "dangerous", Reason: "SSH keys and config"},
	{Pattern: "/proc/", Tier: "dangerous", Reason: "Kernel process pseudo-filesystem"},
	{Pattern: "/sys/", Tier: "dangerous", Reason: "Kernel pseudo-filesystem"},
	{Pattern: "/boot/", Tier: "dangerous", Reason: "Boot loader and kernels"},
	{Pattern: "/dev/", Tier: "dangerous", Reason: "Device files"},
	{Pattern: "/lib/", Tier: "dangerous", Reason: "System libraries"},
	{Pattern: "/usr/local/", Tier: "dangerous", Reason: "Locally installed software"},
	{Pattern: "/usr/share/", Tier: "dangerous", Reason: "Shared system data"},
}

// DefaultCommandPatterns returns a copy of the built-in command table.
func DefaultCommandPatterns() []domain.PatternRule {
	return append([]domain.PatternRule(nil), commandPatterns...)
}

// DefaultProtectedPaths returns a copy of the built-in path table.
func DefaultProtectedPaths() []domain.PatternRule {
	return append([]domain.PatternRule(nil), protectedPaths...)
}
