package analysis

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huimingz/prbuddy/internal/git/gittest"
	"github.com/huimingz/prbuddy/internal/workdir"
)

// staticResolver always resolves to the same directory
type staticResolver struct {
	dir string
	err error
}

func (r staticResolver) Resolve(ctx context.Context) (workdir.Resolution, error) {
	if r.err != nil {
		return workdir.Resolution{}, r.err
	}
	return workdir.Resolution{Dir: r.dir, Source: workdir.SourceRoots}, nil
}

// setupFeatureBranch creates main with one file and a feature branch adding diffLines lines
func setupFeatureBranch(t *testing.T, diffLines int) string {
	t.Helper()

	repoDir := gittest.SetupRepo(t)
	gittest.CommitFile(t, repoDir, "README.md", "readme\n", "initial commit")
	gittest.Run(t, repoDir, "checkout", "-b", "feature")
	gittest.CommitFile(t, repoDir, "big.txt", gittest.Lines(diffLines), "feat: add big file")
	return repoDir
}

func TestService_FeatureBranch(t *testing.T) {
	repoDir := setupFeatureBranch(t, 3)
	svc := NewService(ServiceOptions{})

	report, err := svc.Analyze(context.Background(), Request{
		BaseBranch:       "main",
		IncludeDiff:      true,
		MaxDiffLines:     DefaultMaxDiffLines,
		WorkingDirectory: repoDir,
	})
	require.NoError(t, err)

	assert.Equal(t, "main", report.BaseBranch)
	assert.Equal(t, "A\tbig.txt\n", report.FilesChanged)
	assert.Contains(t, report.Statistics, "big.txt")
	assert.Contains(t, report.Commits, "feat: add big file")
	assert.Contains(t, report.Diff, "+line 3")
	assert.False(t, report.Truncated)
	assert.Equal(t, CountLines(report.Diff), report.TotalDiffLines)

	require.NotNil(t, report.Debug)
	assert.Equal(t, "feature", report.Debug.CurrentBranch)
	assert.Equal(t, "main", report.Debug.ComparisonBase)
	assert.Equal(t, workdir.SourceArgument, report.Debug.ResolutionSource)
	assert.Empty(t, report.Debug.DegradedQueries)
}

func TestService_LargeDiffIsTruncated(t *testing.T) {
	repoDir := setupFeatureBranch(t, 700)
	svc := NewService(ServiceOptions{})

	report, err := svc.Analyze(context.Background(), Request{
		BaseBranch:       "main",
		IncludeDiff:      true,
		MaxDiffLines:     500,
		WorkingDirectory: repoDir,
	})
	require.NoError(t, err)

	assert.True(t, report.Truncated)
	assert.Greater(t, report.TotalDiffLines, 700, "diff headers add lines on top of the file content")

	lines := strings.Split(report.Diff, "\n")
	require.Len(t, lines, 501)
	assert.Equal(t, TruncationMarker(500, report.TotalDiffLines), lines[500])
}

func TestService_DiffNotRequested(t *testing.T) {
	repoDir := setupFeatureBranch(t, 700)
	svc := NewService(ServiceOptions{})

	report, err := svc.Analyze(context.Background(), Request{
		BaseBranch:       "main",
		IncludeDiff:      false,
		MaxDiffLines:     10,
		WorkingDirectory: repoDir,
	})
	require.NoError(t, err)

	assert.Equal(t, DiffNotIncluded, report.Diff)
	assert.False(t, report.Truncated)
	assert.Equal(t, 0, report.TotalDiffLines)
	assert.Equal(t, "A\tbig.txt\n", report.FilesChanged)
}

func TestService_OnBaseBranchComparesWithOrigin(t *testing.T) {
	upstream := gittest.SetupRepo(t)
	gittest.CommitFile(t, upstream, "README.md", "readme\n", "initial commit")
	clone := gittest.Clone(t, upstream)

	svc := NewService(ServiceOptions{})
	ctx := context.Background()

	t.Run("nothing ahead of origin", func(t *testing.T) {
		report, err := svc.Analyze(ctx, Request{
			BaseBranch:       "main",
			IncludeDiff:      true,
			MaxDiffLines:     500,
			WorkingDirectory: clone,
		})
		require.NoError(t, err)

		assert.Empty(t, report.FilesChanged)
		assert.Empty(t, report.Diff)
		assert.False(t, report.Truncated)
		assert.Equal(t, 0, report.TotalDiffLines)
		assert.Equal(t, "origin/main", report.Debug.ComparisonBase)
		assert.Equal(t, "On main branch, comparing with origin/main", report.Debug.ComparisonStrategy)
	})

	t.Run("local commit ahead of origin", func(t *testing.T) {
		gittest.CommitFile(t, clone, "local.txt", "local\n", "local work")

		report, err := svc.Analyze(ctx, Request{
			BaseBranch:       "main",
			IncludeDiff:      true,
			MaxDiffLines:     500,
			WorkingDirectory: clone,
		})
		require.NoError(t, err)
		assert.Equal(t, "A\tlocal.txt\n", report.FilesChanged)
		assert.Contains(t, report.Commits, "local work")
	})
}

func TestService_MissingRemoteIsComparisonFailure(t *testing.T) {
	repoDir := gittest.SetupRepo(t)
	gittest.CommitFile(t, repoDir, "README.md", "readme\n", "initial commit")

	svc := NewService(ServiceOptions{})
	_, err := svc.Analyze(context.Background(), Request{
		BaseBranch:       "main",
		IncludeDiff:      true,
		MaxDiffLines:     500,
		WorkingDirectory: repoDir,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrComparisonFailed))
	assert.True(t, strings.HasPrefix(ErrorMessage(err), "Git error: "))
	assert.Contains(t, ErrorMessage(err), "origin/main")
}

func TestService_UsesResolverWhenNoDirectoryGiven(t *testing.T) {
	repoDir := setupFeatureBranch(t, 1)
	svc := NewService(ServiceOptions{Resolver: staticResolver{dir: filepath.Join(repoDir)}})

	report, err := svc.Analyze(context.Background(), Request{IncludeDiff: true, MaxDiffLines: 500})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseBranch, report.BaseBranch)
	assert.Equal(t, workdir.SourceRoots, report.Debug.ResolutionSource)
	assert.Equal(t, "A\tbig.txt\n", report.FilesChanged)
}

func TestService_SubdirectoryResolvesToRepositoryRoot(t *testing.T) {
	repoDir := setupFeatureBranch(t, 1)
	gittest.CommitFile(t, repoDir, "pkg/sub/file.go", "package sub\n", "add sub package")

	svc := NewService(ServiceOptions{})
	report, err := svc.Analyze(context.Background(), Request{
		BaseBranch:       "main",
		MaxDiffLines:     500,
		WorkingDirectory: filepath.Join(repoDir, "pkg", "sub"),
	})
	require.NoError(t, err)
	assert.Contains(t, report.FilesChanged, "pkg/sub/file.go")
	assert.NotEqual(t, filepath.Join(repoDir, "pkg", "sub"), report.Debug.ActualCwd)
}

func TestService_ResolverFailure(t *testing.T) {
	svc := NewService(ServiceOptions{Resolver: staticResolver{err: errors.New("no roots")}})

	_, err := svc.Analyze(context.Background(), Request{MaxDiffLines: 500})
	require.Error(t, err)
	assert.Contains(t, ErrorMessage(err), "no roots")
	assert.False(t, IsComparisonFailure(err))
}

func TestService_RejectsNegativeBudget(t *testing.T) {
	svc := NewService(ServiceOptions{})

	_, err := svc.Analyze(context.Background(), Request{MaxDiffLines: -1, WorkingDirectory: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_diff_lines")
}

func TestService_NotAGitRepo(t *testing.T) {
	svc := NewService(ServiceOptions{})

	_, err := svc.Analyze(context.Background(), Request{MaxDiffLines: 500, WorkingDirectory: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, ErrorMessage(err), "current branch")
}

func TestService_Defaults(t *testing.T) {
	svc := NewService(ServiceOptions{})
	assert.Equal(t, DefaultBaseBranch, svc.BaseBranch())
	assert.Equal(t, DefaultMaxDiffLines, svc.MaxDiffLines())

	svc = NewService(ServiceOptions{BaseBranch: "develop", MaxDiffLines: 42})
	assert.Equal(t, "develop", svc.BaseBranch())
	assert.Equal(t, 42, svc.MaxDiffLines())
}

func TestService_DegradedQueriesReported(t *testing.T) {
	fake := &fakeExecutor{
		branch:     "feature",
		nameStatus: "M\ta.go\n",
		stat:       "stat",
		log:        "log",
		errs:       map[string]error{"diff": errors.New("boom")},
	}
	svc := NewService(ServiceOptions{Executors: factoryFor(fake)})

	report, err := svc.Analyze(context.Background(), Request{
		BaseBranch:       "main",
		IncludeDiff:      true,
		MaxDiffLines:     500,
		WorkingDirectory: t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"diff"}, report.Debug.DegradedQueries)
	assert.Empty(t, report.Diff)
	assert.False(t, report.Truncated)
	assert.Equal(t, 0, report.TotalDiffLines)
}
