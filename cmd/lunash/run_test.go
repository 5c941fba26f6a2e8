// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"lunash-cli/internal/config"
	"lunash-cli/internal/issue"
	"lunash-cli/internal/resolve"
)

// testSetup isolates config and cwd for a CLI-level test.
func testSetup(t *testing.T) string {
	t.Helper()
	t.Cleanup(config.Reset)
	config.SetConfigDirOverride(t.TempDir())
	config.SetScriptsDirOverride(t.TempDir())

	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeTestScript(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name+resolve.ScriptFileSuffix)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestCommand() (*cobra.Command, *bytes.Buffer) {
	c := &cobra.Command{}
	buf := new(bytes.Buffer)
	c.SetOut(buf)
	c.SetErr(buf)
	return c, buf
}

func TestRunScript_Succeeds(t *testing.T) {
	dir := testSetup(t)
	writeTestScript(t, dir, "hello", `print("hi")`)

	c, _ := newTestCommand()
	if err := runScript(c, "hello", nil); err != nil {
		t.Fatalf("runScript() error = %v", err)
	}
}

func TestRunScript_NotFoundExitsNonZero(t *testing.T) {
	testSetup(t)

	c, _ := newTestCommand()
	err := runScript(c, "missing", nil)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runScript() error = %T, want *ExitError", err)
	}
	if exitErr.Code == 0 {
		t.Error("exit code = 0, want non-zero")
	}
	var nf *resolve.NotFoundError
	if !errors.As(err, &nf) {
		t.Error("NotFoundError should remain in the chain")
	}
}

func TestRunScript_ScriptErrorExitsNonZero(t *testing.T) {
	dir := testSetup(t)
	writeTestScript(t, dir, "explode", `error("kaboom")`)

	c, _ := newTestCommand()
	err := runScript(c, "explode", nil)

	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("runScript() error = %T, want *ExitError", err)
	}
	if exitErr.Code != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.Code)
	}
}

func TestRunScript_PassesArgs(t *testing.T) {
	dir := testSetup(t)
	out := filepath.Join(dir, "out.txt")
	writeTestScript(t, dir, "withargs", `
		local f = io.open(arg[2], "w")
		f:write(arg[1])
		f:close()
	`)

	c, _ := newTestCommand()
	if err := runScript(c, "withargs", []string{"payload", out}); err != nil {
		t.Fatalf("runScript() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil || string(data) != "payload" {
		t.Errorf("script did not receive args: %v %q", err, data)
	}
}

func TestIssueForScriptError(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want issue.Id
	}{
		{"runtime error", `deploy.lunash.lua:3: attempt to index a nil value`, issue.ScriptRuntimeErrorId},
		{"http get failure", `deploy.lunash.lua:5: http.get: dial tcp: connection refused`, issue.HttpRequestFailedId},
		{"http post failure", `deploy.lunash.lua:5: http.post: context deadline exceeded`, issue.HttpRequestFailedId},
		{"bad pattern", `deploy.lunash.lua:2: regex: error parsing regexp: missing closing )`, issue.RegexCompileErrorId},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := issueForScriptError(errors.New(tt.msg)); got != tt.want {
				t.Errorf("issueForScriptError(%q) = %v, want %v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestCompleteScripts(t *testing.T) {
	dir := testSetup(t)
	writeTestScript(t, dir, "deploy", `print("x")`)
	writeTestScript(t, dir, "backup", `print("x")`)

	c, _ := newTestCommand()
	completions, directive := completeScripts(c, nil, "")
	if directive != cobra.ShellCompDirectiveNoFileComp {
		t.Errorf("directive = %v, want NoFileComp", directive)
	}
	if len(completions) != 2 {
		t.Errorf("completions = %v, want 2 entries", completions)
	}
}

func TestCompleteScripts_OnlyFirstArg(t *testing.T) {
	testSetup(t)

	c, _ := newTestCommand()
	completions, directive := completeScripts(c, []string{"already"}, "")
	if completions != nil || directive != cobra.ShellCompDirectiveDefault {
		t.Errorf("completion after first arg = %v/%v, want nil/Default", completions, directive)
	}
}
