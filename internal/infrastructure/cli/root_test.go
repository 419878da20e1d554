package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// runCLI executes the root command in a scratch working directory with an
// isolated home and config file.
func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	root, err := NewRootCmd(context.Background(), Options{})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err = root.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("TOOLGATE_CONFIG", filepath.Join(home, "config.yaml"))
	t.Setenv("NO_COLOR", "1")
	work := t.TempDir()
	t.Chdir(work)
	return home
}

func decodeOutcome(t *testing.T, raw string) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &out), raw)
	return out
}

func TestCallCreateThenRead(t *testing.T) {
	isolate(t)

	res := runCLI(t, "y\n", "call", "create_file", "--arg", "path=a.txt", "--arg", "content=hi")
	require.NoError(t, res.err)
	out := decodeOutcome(t, res.stdout)
	assert.Equal(t, "success", out["status"])
	assert.EqualValues(t, 2, out["size"])
	assert.Contains(t, res.stderr, "Proceed? (y/n)")
	assert.Contains(t, res.stderr, "agent command > create: a.txt")

	res = runCLI(t, "yes\n", "call", "read_file", "--args", `{"filename":"a.txt"}`)
	require.NoError(t, res.err)
	out = decodeOutcome(t, res.stdout)
	assert.Equal(t, "hi", out["content"])
}

func TestCallDeniedByOperator(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("a.txt", []byte("keep"), 0o644))

	res := runCLI(t, "n\n", "call", "delete_file", "--arg", "path=a.txt")
	require.NoError(t, res.err)
	out := decodeOutcome(t, res.stdout)
	assert.Equal(t, "cancelled", out["status"])
	assert.NotEmpty(t, out["reason"])
	_, err := os.Stat("a.txt")
	assert.NoError(t, err)
}

func TestCallDangerousNeedsFullYes(t *testing.T) {
	isolate(t)

	res := runCLI(t, "y\ny\n", "call", "create_file", "--arg", "path=.ssh/config", "--arg", "content=")
	require.NoError(t, res.err)
	assert.Equal(t, "cancelled", decodeOutcome(t, res.stdout)["status"])
	assert.Contains(t, res.stderr, "DANGEROUS OPERATION")

	res = runCLI(t, "y\nyes\n", "call", "create_file", "--arg", "path=.ssh/config", "--arg", "content=")
	require.NoError(t, res.err)
	assert.Equal(t, "success", decodeOutcome(t, res.stdout)["status"])
}

func TestCallDenyModeNeverPrompts(t *testing.T) {
	home := isolate(t)
	cfg := "confirmation:\n  mode: deny\nsecurity:\n  rules_file: " + filepath.Join(home, "rules.yaml") + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(home, "config.yaml"), []byte(cfg), 0o600))

	res := runCLI(t, "y\n", "call", "list_files")
	require.NoError(t, res.err)
	assert.Equal(t, "cancelled", decodeOutcome(t, res.stdout)["status"])
	assert.NotContains(t, res.stderr, "Proceed?")
}

func TestCallMalformedRequestFailsBeforePrompt(t *testing.T) {
	isolate(t)

	res := runCLI(t, "y\n", "call", "read_file", "--arg", "mode=r", "--arg", "path=a.txt")
	require.NoError(t, res.err)
	out := decodeOutcome(t, res.stdout)
	assert.Equal(t, "error", out["status"])
	assert.Contains(t, out["message"], "invalid parameters")
	assert.NotContains(t, res.stderr, "Proceed?")
	assert.Contains(t, res.stderr, "agent command > failed read read_file: invalid parameters")
}

func TestCallUnknownToolReachesConsole(t *testing.T) {
	isolate(t)

	res := runCLI(t, "", "call", "no_such_tool")
	require.NoError(t, res.err)
	assert.Equal(t, "error", decodeOutcome(t, res.stdout)["status"])
	assert.Contains(t, res.stderr, `agent command > failed call no_such_tool: unknown tool: "no_such_tool"`)
}

func TestCallTextOutput(t *testing.T) {
	isolate(t)
	require.NoError(t, os.WriteFile("notes.txt", []byte("line\n"), 0o644))

	res := runCLI(t, "y\n", "call", "read_file", "--arg", "path=notes.txt", "-o", "text")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "read_file: SUCCESS")
	assert.Contains(t, res.stdout, "line\n")
}

func TestBuildToolCallTypesPairs(t *testing.T) {
	call, err := buildToolCall("run_command", `{"command":"ls"}`, []string{"args=[\"-l\"]", "shell=false"})
	require.NoError(t, err)
	assert.Equal(t, "ls", call.Args["command"])
	assert.Equal(t, []any{"-l"}, call.Args["args"])
	assert.Equal(t, false, call.Args["shell"])

	call, err = buildToolCall("create_file", "", []string{"path=n.txt", "content=123"})
	require.NoError(t, err)
	assert.Equal(t, "123", call.Args["content"], "string parameters stay literal")

	_, err = buildToolCall("list_files", "", []string{"detailed"})
	assert.Error(t, err)
	_, err = buildToolCall("list_files", "[1]", nil)
	assert.Error(t, err)
}

func TestClassifyAndRules(t *testing.T) {
	isolate(t)

	res := runCLI(t, "", "classify", "command", "rm", "-rf", "/tmp/x")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "dangerous\n"), res.stdout)

	res = runCLI(t, "", "classify", "path", `C:\Windows\System32`)
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "dangerous\n"), res.stdout)

	res = runCLI(t, "", "classify", "command", "ls", "-la")
	require.NoError(t, res.err)
	assert.Equal(t, "normal\n", res.stdout)

	res = runCLI(t, "", "classify", "command", "--", "sudo", "-u", "x", "id")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "dangerous\n"), res.stdout)

	res = runCLI(t, "", "classify", "command", "--help")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Classify a command line")

	res = runCLI(t, "", "classify", "command")
	assert.Error(t, res.err)

	res = runCLI(t, "", "rules", "init")
	require.NoError(t, res.err)
	res = runCLI(t, "", "rules", "init")
	assert.Error(t, res.err, "existing rules file needs --force")

	res = runCLI(t, "", "rules", "show")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"git push --force"`)
	assert.Contains(t, res.stdout, `"rm -rf"`)
}

func TestConfigAndToolsCommands(t *testing.T) {
	home := isolate(t)

	res := runCLI(t, "", "config", "path")
	require.NoError(t, res.err)
	assert.Equal(t, filepath.Join(home, "config.yaml")+"\n", res.stdout)

	res = runCLI(t, "", "config", "validate")
	require.NoError(t, res.err)
	assert.Equal(t, msgConfigurationValid+"\n", res.stdout)

	res = runCLI(t, "", "tools")
	require.NoError(t, res.err)
	for _, name := range []string{"create_file", "read_file", "delete_file", "list_files", "run_command"} {
		assert.Contains(t, res.stdout, name)
	}

	res = runCLI(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "toolgate version")
}
