package analysis

import "fmt"

// WorkingTreeContext identifies the tree a single request analyzes
type WorkingTreeContext struct {
	WorkingDirectory string
	CurrentBranch    string
}

// ComparisonPlan describes what is diffed against HEAD and why
type ComparisonPlan struct {
	BaseBranch    string
	ComparisonRef string
	StrategyNote  string
}

// ResolvePlan picks the ref to compare HEAD against.
// Comparing a branch with itself is empty, so when the caller is already on
// the base branch the remote-tracking counterpart is used instead.
func ResolvePlan(currentBranch, baseBranch string) ComparisonPlan {
	if currentBranch == baseBranch {
		return ComparisonPlan{
			BaseBranch:    baseBranch,
			ComparisonRef: "origin/" + baseBranch,
			StrategyNote:  fmt.Sprintf("On %s branch, comparing with origin/%s", baseBranch, baseBranch),
		}
	}

	return ComparisonPlan{
		BaseBranch:    baseBranch,
		ComparisonRef: baseBranch,
		StrategyNote:  fmt.Sprintf("On feature branch '%s', comparing with %s", currentBranch, baseBranch),
	}
}
