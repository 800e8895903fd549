package analysis

import (
	"context"

	"github.com/huimingz/prbuddy/internal/git"
	"github.com/huimingz/prbuddy/internal/log"
)

// ExecutorFactory binds a git executor to a working directory
type ExecutorFactory func(workDir string) git.Executor

// QueryResult is the outcome of one optional query. A failed optional query
// degrades to empty output instead of failing the collection.
type QueryResult struct {
	Output string
	Err    error
}

// Degraded reports whether the query failed
func (r QueryResult) Degraded() bool {
	return r.Err != nil
}

// Text returns the query output, or empty text when it failed
func (r QueryResult) Text() string {
	if r.Err != nil {
		return ""
	}
	return r.Output
}

// Collection holds the raw text gathered for one comparison
type Collection struct {
	NameStatus   string
	Stat         QueryResult
	Commits      QueryResult
	Diff         QueryResult
	DiffIncluded bool
}

// Collector runs the read-only change queries for a comparison plan
type Collector struct {
	newExecutor ExecutorFactory
}

// NewCollector creates a new Collector
func NewCollector(factory ExecutorFactory) *Collector {
	return &Collector{newExecutor: factory}
}

// Collect runs the name-status, stat, log and (optionally) diff queries.
// Only the name-status query is load-bearing.
func (c *Collector) Collect(ctx context.Context, plan ComparisonPlan, workDir string, includeDiff bool) (*Collection, error) {
	executor := c.newExecutor(workDir)
	ref := plan.ComparisonRef

	nameStatus, err := executor.DiffNameStatus(ctx, ref)
	if err != nil {
		return nil, &ComparisonError{Ref: ref, Err: err}
	}

	collection := &Collection{
		NameStatus:   nameStatus,
		Stat:         optional(ctx, "stat", ref, executor.DiffStat),
		Commits:      optional(ctx, "log", ref, executor.LogOneline),
		DiffIncluded: includeDiff,
	}
	if includeDiff {
		collection.Diff = optional(ctx, "diff", ref, executor.Diff)
	}

	return collection, nil
}

func optional(ctx context.Context, name, ref string, query func(context.Context, string) (string, error)) QueryResult {
	out, err := query(ctx, ref)
	if err != nil {
		log.Warn("%s query against %s degraded to empty output: %v", name, ref, err)
		return QueryResult{Err: err}
	}
	return QueryResult{Output: out}
}
