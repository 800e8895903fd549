package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/huimingz/prbuddy/internal/git"
	"github.com/huimingz/prbuddy/internal/log"
	"github.com/huimingz/prbuddy/internal/workdir"
)

// DefaultBaseBranch is compared against when the caller names no base
const DefaultBaseBranch = "main"

// DiffNotIncluded stands in for the diff when it was not requested
const DiffNotIncluded = "Diff not included (set include_diff=true to see full diff)"

// Request holds the inputs of one analysis
type Request struct {
	BaseBranch       string
	IncludeDiff      bool
	MaxDiffLines     int
	WorkingDirectory string // empty means discover it
	RequestID        string
}

// DebugInfo records how the request was resolved
type DebugInfo struct {
	RequestID                string   `json:"request_id,omitempty"`
	ProvidedWorkingDirectory string   `json:"provided_working_directory"`
	ActualCwd                string   `json:"actual_cwd"`
	ResolutionSource         string   `json:"resolution_source"`
	ServerProcessCwd         string   `json:"server_process_cwd"`
	CurrentBranch            string   `json:"current_branch"`
	ComparisonBase           string   `json:"comparison_base"`
	ComparisonStrategy       string   `json:"comparison_strategy"`
	DegradedQueries          []string `json:"degraded_queries,omitempty"`
}

// ChangeReport is the structured result of analyze_file_changes
type ChangeReport struct {
	BaseBranch     string     `json:"base_branch"`
	FilesChanged   string     `json:"files_changed"`
	Statistics     string     `json:"statistics"`
	Commits        string     `json:"commits"`
	Diff           string     `json:"diff"`
	Truncated      bool       `json:"truncated"`
	TotalDiffLines int        `json:"total_diff_lines"`
	Debug          *DebugInfo `json:"_debug,omitempty"`
}

// ServiceOptions configures a Service
type ServiceOptions struct {
	Resolver     workdir.Resolver
	Executors    ExecutorFactory
	BaseBranch   string
	MaxDiffLines int
	GitTimeout   time.Duration
}

// Service analyzes branch-relative changes in a working tree
type Service struct {
	opts      ServiceOptions
	collector *Collector
}

// NewService creates a new Service
func NewService(opts ServiceOptions) *Service {
	if opts.Resolver == nil {
		opts.Resolver = workdir.ProcessResolver{}
	}
	if opts.Executors == nil {
		timeout := opts.GitTimeout
		opts.Executors = func(dir string) git.Executor {
			return git.NewExecutor(dir, git.WithTimeout(timeout))
		}
	}
	if opts.BaseBranch == "" {
		opts.BaseBranch = DefaultBaseBranch
	}
	if opts.MaxDiffLines <= 0 {
		opts.MaxDiffLines = DefaultMaxDiffLines
	}
	return &Service{opts: opts, collector: NewCollector(opts.Executors)}
}

// BaseBranch returns the base branch used when a request names none
func (s *Service) BaseBranch() string {
	return s.opts.BaseBranch
}

// MaxDiffLines returns the configured diff line budget
func (s *Service) MaxDiffLines() int {
	return s.opts.MaxDiffLines
}

// Analyze resolves the comparison, collects the changes and bounds the diff.
// Callers turn the returned error into a response payload; it is never a
// protocol fault.
func (s *Service) Analyze(ctx context.Context, req Request) (*ChangeReport, error) {
	startTime := time.Now()
	defer func() {
		log.DebugDuration("analyze_file_changes", time.Since(startTime))
	}()

	if req.BaseBranch = strings.TrimSpace(req.BaseBranch); req.BaseBranch == "" {
		req.BaseBranch = s.opts.BaseBranch
	}
	if req.MaxDiffLines < 0 {
		return nil, fmt.Errorf("max_diff_lines must be non-negative, got %d", req.MaxDiffLines)
	}

	resolution, err := s.resolve(ctx, req.WorkingDirectory)
	if err != nil {
		return nil, err
	}

	executor := s.opts.Executors(resolution.Dir)
	currentBranch, err := executor.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current branch: %w", err)
	}

	tree := WorkingTreeContext{WorkingDirectory: resolution.Dir, CurrentBranch: currentBranch}
	plan := ResolvePlan(tree.CurrentBranch, req.BaseBranch)
	log.Debug("[%s] %s", req.RequestID, plan.StrategyNote)

	collection, err := s.collector.Collect(ctx, plan, tree.WorkingDirectory, req.IncludeDiff)
	if err != nil {
		return nil, err
	}

	report := &ChangeReport{
		BaseBranch:   req.BaseBranch,
		FilesChanged: collection.NameStatus,
		Statistics:   collection.Stat.Text(),
		Commits:      collection.Commits.Text(),
		Diff:         DiffNotIncluded,
		Debug: &DebugInfo{
			RequestID:                req.RequestID,
			ProvidedWorkingDirectory: req.WorkingDirectory,
			ActualCwd:                tree.WorkingDirectory,
			ResolutionSource:         resolution.Source,
			ServerProcessCwd:         processCwd(),
			CurrentBranch:            tree.CurrentBranch,
			ComparisonBase:           plan.ComparisonRef,
			ComparisonStrategy:       plan.StrategyNote,
			DegradedQueries:          degraded(collection),
		},
	}

	if collection.DiffIncluded {
		result := Truncate(collection.Diff.Text(), req.MaxDiffLines)
		report.Diff = result.Diff
		report.Truncated = result.Truncated
		report.TotalDiffLines = result.TotalLines
	}

	return report, nil
}

func (s *Service) resolve(ctx context.Context, provided string) (workdir.Resolution, error) {
	var resolution workdir.Resolution
	if provided = strings.TrimSpace(provided); provided != "" {
		resolution = workdir.Explicit(provided)
	} else {
		var err error
		resolution, err = s.opts.Resolver.Resolve(ctx)
		if err != nil {
			return workdir.Resolution{}, fmt.Errorf("failed to resolve working directory: %w", err)
		}
	}

	if root, ok := workdir.RepositoryRoot(resolution.Dir); ok {
		resolution.Dir = root
	}
	return resolution, nil
}

func degraded(c *Collection) []string {
	var names []string
	for _, q := range []struct {
		name   string
		result QueryResult
	}{
		{"stat", c.Stat},
		{"log", c.Commits},
		{"diff", c.Diff},
	} {
		if q.result.Degraded() {
			names = append(names, q.name)
		}
	}
	return names
}

func processCwd() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return dir
}

// IsComparisonFailure reports whether err came from the mandatory comparison query
func IsComparisonFailure(err error) bool {
	return errors.Is(err, ErrComparisonFailed)
}
