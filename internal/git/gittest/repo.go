// Package gittest builds throwaway git repositories for tests.
package gittest

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// Run runs a git command in dir and returns its trimmed output
func Run(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "git %s: %s", strings.Join(args, " "), string(out))
	return strings.TrimSpace(string(out))
}

// SetupRepo creates a temporary git repository whose unborn branch is main
func SetupRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	Run(t, dir, "init")
	Run(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	Configure(t, dir)
	return dir
}

// Configure sets a commit identity so commits work on any machine
func Configure(t *testing.T, dir string) {
	t.Helper()

	Run(t, dir, "config", "user.email", "test@example.com")
	Run(t, dir, "config", "user.name", "Test User")
	Run(t, dir, "config", "commit.gpgsign", "false")
}

// WriteFile creates or overwrites a file and stages it
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	Run(t, dir, "add", name)
}

// Commit commits staged changes
func Commit(t *testing.T, dir, message string) {
	t.Helper()
	Run(t, dir, "commit", "-m", message)
}

// CommitFile writes, stages and commits a single file
func CommitFile(t *testing.T, dir, name, content, message string) {
	t.Helper()
	WriteFile(t, dir, name, content)
	Commit(t, dir, message)
}

// Clone clones src into a new temporary directory, giving it an origin remote
func Clone(t *testing.T, src string) string {
	t.Helper()

	dst := filepath.Join(t.TempDir(), "clone")
	Run(t, filepath.Dir(dst), "clone", src, dst)
	Configure(t, dst)
	return dst
}

// Lines returns n numbered lines, each newline terminated
func Lines(n int) string {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString("line ")
		b.WriteString(strconv.Itoa(i))
		b.WriteString("\n")
	}
	return b.String()
}
