package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/huimingz/prbuddy/internal/log"
)

// DefaultTimeout bounds a single git query when no timeout is configured
const DefaultTimeout = 30 * time.Second

// ErrTimeout is returned when a git query exceeds its timeout
var ErrTimeout = errors.New("git command timed out")

// CommandError describes a git invocation that exited unsuccessfully
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("git %s failed: %v\n%s", strings.Join(e.Args, " "), e.Err, e.Stderr)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Executor defines the read-only git queries used for change analysis.
// Range queries compare HEAD against base using three-dot semantics.
type Executor interface {
	// CurrentBranch returns the checked out branch name, empty on a detached HEAD
	CurrentBranch(ctx context.Context) (string, error)

	// DiffNameStatus returns the name-status list of files changed since the merge base
	DiffNameStatus(ctx context.Context, base string) (string, error)

	// DiffStat returns the human-readable stat summary
	DiffStat(ctx context.Context, base string) (string, error)

	// Diff returns the full unified diff
	Diff(ctx context.Context, base string) (string, error)

	// LogOneline returns one line per commit reachable from HEAD but not base
	LogOneline(ctx context.Context, base string) (string, error)
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
	timeout time.Duration
}

// Option configures a DefaultExecutor
type Option func(*DefaultExecutor)

// WithTimeout sets the per-query timeout. Non-positive values disable it.
func WithTimeout(d time.Duration) Option {
	return func(e *DefaultExecutor) {
		e.timeout = d
	}
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string, opts ...Option) *DefaultExecutor {
	e := &DefaultExecutor{workDir: workDir, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WorkDir returns the directory git runs in
func (e *DefaultExecutor) WorkDir() string {
	return e.workDir
}

// runGit runs a git command and returns its raw stdout
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	log.DebugGitCommand(e.workDir, args)

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("git %s: %w after %v", strings.Join(args, " "), ErrTimeout, e.timeout)
		}
		return "", &CommandError{Args: args, Stderr: stderr.String(), Err: err}
	}

	return stdout.String(), nil
}

func rangeSpec(base string) string {
	return fmt.Sprintf("%s...HEAD", base)
}

// CurrentBranch returns the current branch name
func (e *DefaultExecutor) CurrentBranch(ctx context.Context) (string, error) {
	out, err := e.runGit(ctx, "branch", "--show-current")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DiffNameStatus returns git diff --name-status base...HEAD
func (e *DefaultExecutor) DiffNameStatus(ctx context.Context, base string) (string, error) {
	return e.runGit(ctx, "diff", "--name-status", rangeSpec(base))
}

// DiffStat returns git diff --stat base...HEAD
func (e *DefaultExecutor) DiffStat(ctx context.Context, base string) (string, error) {
	return e.runGit(ctx, "diff", "--stat", rangeSpec(base))
}

// Diff returns git diff base...HEAD
func (e *DefaultExecutor) Diff(ctx context.Context, base string) (string, error) {
	return e.runGit(ctx, "diff", rangeSpec(base))
}

// LogOneline returns git log --oneline base...HEAD
func (e *DefaultExecutor) LogOneline(ctx context.Context, base string) (string, error) {
	return e.runGit(ctx, "log", "--oneline", rangeSpec(base))
}
