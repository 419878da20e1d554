package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/toolgate/internal/domain"
)

func TestClassifyCommandFlagsDestructiveCommands(t *testing.T) {
	dangerous := []string{
		"rm -rf /tmp/x",
		"RM -RF build",
		"sudo apt install",
		"dd if=/dev/zero of=disk.img",
		"mkfs.ext4 /dev/sdb1",
		"echo hi > /dev/sda",
		"killall node",
		"shutdown -h now",
		"chmod 000 secret",
	}
	for _, line := range dangerous {
		if got := ClassifyCommand(line); got != domain.RiskDangerous {
			t.Fatalf("ClassifyCommand(%q)=%s want dangerous", line, got)
		}
	}
}

func TestClassifyCommandAllowsBenignCommands(t *testing.T) {
	for _, line := range []string{"ls -la", "git status", "go test ./...", "echo hello", "rm"} {
		if got := ClassifyCommand(line); got != domain.RiskNormal {
			t.Fatalf("ClassifyCommand(%q)=%s want normal", line, got)
		}
	}
}

func TestClassifyCommandIsSubstringMatch(t *testing.T) {
	// "confirm " contains "rm " and is flagged on purpose.
	if got := ClassifyCommand("confirm the plan"); got != domain.RiskDangerous {
		t.Fatalf("expected substring over-approximation, got %s", got)
	}
}

func TestClassifyPathProtectedPrefixes(t *testing.T) {
	dangerous := []string{
		"/etc/passwd",
		".ssh/id_rsa",
		"/home/me/.ssh/config",
		`C:\Windows\System32`,
		`C:\Windows\System32\drivers\etc\hosts`,
		`c:\windows\system32`,
		`C:\WINDOWS\notepad.exe`,
		"/Users/me/.SSH/config",
		"/proc/self/environ",
		"/etc",
	}
	for _, p := range dangerous {
		if got := ClassifyPath(p); got != domain.RiskDangerous {
			t.Fatalf("ClassifyPath(%q)=%s want dangerous", p, got)
		}
	}
}

func TestClassifyPathNormalPaths(t *testing.T) {
	for _, p := range []string{"a.txt", "src/main.go", "notes/etc.md", "./build/out.bin"} {
		if got := ClassifyPath(p); got != domain.RiskNormal {
			t.Fatalf("ClassifyPath(%q)=%s want normal", p, got)
		}
	}
}

func TestClassifyPathKeepsPatternSpelling(t *testing.T) {
	result := NewDefaultClassifier().ClassifyPath(`c:\windows\system32`)
	if len(result.MatchedRules) != 1 || result.MatchedRules[0] != "C:/Windows/" {
		t.Fatalf("expected the built-in pattern as written, got %+v", result.MatchedRules)
	}
}

func TestClassifierReportsReasons(t *testing.T) {
	c := NewDefaultClassifier()
	result := c.ClassifyCommand("sudo rm -rf /")
	if result.Tier != domain.RiskDangerous {
		t.Fatalf("expected dangerous, got %+v", result)
	}
	if len(result.MatchedRules) < 3 || len(result.Reasons) != len(result.MatchedRules) {
		t.Fatalf("expected every matched rule with a reason, got %+v", result)
	}
}

func TestNewClassifierMissingRulesFileUsesDefaults(t *testing.T) {
	c, err := NewClassifier(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("NewClassifier error: %v", err)
	}
	if len(c.CommandRules()) != len(commandPatterns) || len(c.PathRules()) != len(protectedPaths) {
		t.Fatalf("expected built-in tables only")
	}
}

func TestNewClassifierExtendsFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	doc := `rules:
  command_patterns:
    - pattern: "git push --force"
      tier: dangerous
      reason: Rewrites remote history
  protected_paths:
    - pattern: "secrets/"
      tier: dangerous
      reason: Project secrets
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := NewClassifier(path)
	if err != nil {
		t.Fatalf("NewClassifier error: %v", err)
	}
	if got := c.ClassifyCommand("git push --force origin main"); got.Tier != domain.RiskDangerous {
		t.Fatalf("custom command rule not applied: %+v", got)
	}
	if got := c.ClassifyPath(`secrets\prod.env`); got.Tier != domain.RiskDangerous {
		t.Fatalf("custom path rule not applied: %+v", got)
	}
	if got := c.ClassifyCommand("rm -rf x"); got.Tier != domain.RiskDangerous {
		t.Fatalf("built-in rules must survive extension: %+v", got)
	}
}

func TestNewClassifierExtendsFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.toml")
	doc := `[[rules.command_patterns]]
pattern = "terraform destroy"
tier = "dangerous"
reason = "Destroys infrastructure"
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := NewClassifier(path)
	if err != nil {
		t.Fatalf("NewClassifier error: %v", err)
	}
	if got := c.ClassifyCommand("Terraform Destroy -auto-approve"); got.Tier != domain.RiskDangerous {
		t.Fatalf("TOML rule not applied: %+v", got)
	}
}

func TestNewClassifierRejectsMalformedRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	if err := os.WriteFile(path, []byte("rules: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewClassifier(path); err == nil {
		t.Fatal("expected parse error")
	}
}
