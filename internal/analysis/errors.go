package analysis

import (
	"errors"
	"strings"

	"github.com/huimingz/prbuddy/internal/git"
)

var (
	// ErrComparisonFailed means the mandatory name-status query failed,
	// typically because the comparison ref does not exist
	ErrComparisonFailed = errors.New("comparison failed")

	// ErrCollectionTimeout means a git query ran past its timeout
	ErrCollectionTimeout = git.ErrTimeout
)

// ComparisonError carries the failed comparison ref alongside the git failure
type ComparisonError struct {
	Ref string
	Err error
}

func (e *ComparisonError) Error() string {
	return "comparison against " + e.Ref + " failed: " + e.Err.Error()
}

func (e *ComparisonError) Unwrap() []error {
	return []error{ErrComparisonFailed, e.Err}
}

// Detail returns git's own explanation when there is one
func (e *ComparisonError) Detail() string {
	var cmdErr *git.CommandError
	if errors.As(e.Err, &cmdErr) && strings.TrimSpace(cmdErr.Stderr) != "" {
		return cmdErr.Stderr
	}
	return e.Err.Error()
}

// ErrorMessage renders err for the {"error": ...} payload
func ErrorMessage(err error) string {
	var cmpErr *ComparisonError
	if errors.As(err, &cmpErr) {
		return "Git error: " + cmpErr.Detail()
	}
	return err.Error()
}
