package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/prbuddy/internal/git"
)

// fakeExecutor returns canned output per query and records calls
type fakeExecutor struct {
	branch     string
	nameStatus string
	stat       string
	diff       string
	log        string
	errs       map[string]error
	calls      []string
	refs       []string
}

func (f *fakeExecutor) call(name, ref string, out string) (string, error) {
	f.calls = append(f.calls, name)
	f.refs = append(f.refs, ref)
	if err := f.errs[name]; err != nil {
		return "", err
	}
	return out, nil
}

func (f *fakeExecutor) CurrentBranch(ctx context.Context) (string, error) {
	return f.call("branch", "", f.branch)
}

func (f *fakeExecutor) DiffNameStatus(ctx context.Context, base string) (string, error) {
	return f.call("name-status", base, f.nameStatus)
}

func (f *fakeExecutor) DiffStat(ctx context.Context, base string) (string, error) {
	return f.call("stat", base, f.stat)
}

func (f *fakeExecutor) Diff(ctx context.Context, base string) (string, error) {
	return f.call("diff", base, f.diff)
}

func (f *fakeExecutor) LogOneline(ctx context.Context, base string) (string, error) {
	return f.call("log", base, f.log)
}

func factoryFor(f *fakeExecutor) ExecutorFactory {
	return func(string) git.Executor { return f }
}

func TestCollector_Collect(t *testing.T) {
	fake := &fakeExecutor{
		nameStatus: "M\ta.go\n",
		stat:       " a.go | 2 +-\n",
		diff:       "diff --git a/a.go b/a.go\n",
		log:        "abc123 fix a\n",
	}
	collector := NewCollector(factoryFor(fake))
	plan := ResolvePlan("feature", "main")

	collection, err := collector.Collect(context.Background(), plan, "/repo", true)
	require.NoError(t, err)

	assert.Equal(t, "M\ta.go\n", collection.NameStatus)
	assert.Equal(t, " a.go | 2 +-\n", collection.Stat.Text())
	assert.Equal(t, "abc123 fix a\n", collection.Commits.Text())
	assert.Equal(t, "diff --git a/a.go b/a.go\n", collection.Diff.Text())
	assert.True(t, collection.DiffIncluded)
	assert.ElementsMatch(t, []string{"name-status", "stat", "log", "diff"}, fake.calls)
	for _, ref := range fake.refs {
		assert.Equal(t, "main", ref)
	}
}

func TestCollector_SkipsDiffWhenNotRequested(t *testing.T) {
	fake := &fakeExecutor{nameStatus: "A\tb.go\n", diff: "should not be read"}
	collector := NewCollector(factoryFor(fake))

	collection, err := collector.Collect(context.Background(), ResolvePlan("feature", "main"), "/repo", false)
	require.NoError(t, err)

	assert.False(t, collection.DiffIncluded)
	assert.Empty(t, collection.Diff.Text())
	assert.NotContains(t, fake.calls, "diff")
}

func TestCollector_NameStatusFailureIsFatal(t *testing.T) {
	gitErr := &git.CommandError{
		Args:   []string{"diff", "--name-status", "origin/main...HEAD"},
		Stderr: "fatal: ambiguous argument 'origin/main...HEAD'",
		Err:    errors.New("exit status 128"),
	}
	fake := &fakeExecutor{errs: map[string]error{"name-status": gitErr}}
	collector := NewCollector(factoryFor(fake))

	_, err := collector.Collect(context.Background(), ResolvePlan("main", "main"), "/repo", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComparisonFailed))
	assert.True(t, IsComparisonFailure(err))
	assert.Equal(t, "Git error: fatal: ambiguous argument 'origin/main...HEAD'", ErrorMessage(err))

	// nothing else runs once the comparison is known to be broken
	assert.Equal(t, []string{"name-status"}, fake.calls)
}

func TestCollector_OptionalFailuresDegrade(t *testing.T) {
	tests := []struct {
		name   string
		failed string
	}{
		{"stat", "stat"},
		{"log", "log"},
		{"diff", "diff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeExecutor{
				nameStatus: "M\ta.go\n",
				stat:       "stat output",
				diff:       "diff output",
				log:        "log output",
				errs:       map[string]error{tt.failed: fmt.Errorf("%s broke", tt.failed)},
			}
			collector := NewCollector(factoryFor(fake))

			collection, err := collector.Collect(context.Background(), ResolvePlan("feature", "main"), "/repo", true)
			require.NoError(t, err)
			assert.Equal(t, "M\ta.go\n", collection.NameStatus)

			results := map[string]QueryResult{
				"stat": collection.Stat,
				"log":  collection.Commits,
				"diff": collection.Diff,
			}
			for name, result := range results {
				if name == tt.failed {
					assert.True(t, result.Degraded(), name)
					assert.Empty(t, result.Text(), name)
				} else {
					assert.False(t, result.Degraded(), name)
					assert.Equal(t, name+" output", result.Text(), name)
				}
			}
		})
	}
}

func TestCollector_TimeoutOnOptionalQueryDegrades(t *testing.T) {
	fake := &fakeExecutor{
		nameStatus: "M\ta.go\n",
		errs:       map[string]error{"diff": fmt.Errorf("git diff: %w", git.ErrTimeout)},
	}
	collector := NewCollector(factoryFor(fake))

	collection, err := collector.Collect(context.Background(), ResolvePlan("feature", "main"), "/repo", true)
	require.NoError(t, err)
	assert.True(t, errors.Is(collection.Diff.Err, ErrCollectionTimeout))
}

func TestCollector_TimeoutOnNameStatusIsFatal(t *testing.T) {
	fake := &fakeExecutor{errs: map[string]error{"name-status": fmt.Errorf("git diff: %w", git.ErrTimeout)}}
	collector := NewCollector(factoryFor(fake))

	_, err := collector.Collect(context.Background(), ResolvePlan("feature", "main"), "/repo", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCollectionTimeout))
	assert.True(t, errors.Is(err, ErrComparisonFailed))
}
