// Package workdir decides which working tree a tool call operates on.
package workdir

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"

	"github.com/huimingz/prbuddy/internal/log"
)

// Resolution sources
const (
	SourceArgument = "argument"
	SourceRoots    = "roots"
	SourceProcess  = "process"
)

// DefaultRootsTimeout bounds how long the client is given to answer a roots request
const DefaultRootsTimeout = 5 * time.Second

// ErrNoRoots is returned when the client exposes no usable file root
var ErrNoRoots = errors.New("client exposed no file roots")

// Resolution is a resolved working directory and where it came from
type Resolution struct {
	Dir    string
	Source string
}

// Resolver supplies the working directory for a request
type Resolver interface {
	Resolve(ctx context.Context) (Resolution, error)
}

// RootsLister lists the root URIs the connected client has shared
type RootsLister interface {
	ListRoots(ctx context.Context) ([]string, error)
}

// RootsResolver asks the client for its roots and uses the first file root
type RootsResolver struct {
	lister  RootsLister
	timeout time.Duration
}

// NewRootsResolver creates a new RootsResolver
func NewRootsResolver(lister RootsLister, timeout time.Duration) *RootsResolver {
	if timeout <= 0 {
		timeout = DefaultRootsTimeout
	}
	return &RootsResolver{lister: lister, timeout: timeout}
}

// Resolve implements Resolver
func (r *RootsResolver) Resolve(ctx context.Context) (Resolution, error) {
	if r.lister == nil {
		return Resolution{}, ErrNoRoots
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	uris, err := r.lister.ListRoots(ctx)
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to list roots: %w", err)
	}

	for _, uri := range uris {
		if dir, ok := FileURIPath(uri); ok {
			return Resolution{Dir: dir, Source: SourceRoots}, nil
		}
	}
	return Resolution{}, ErrNoRoots
}

// ProcessResolver uses the server process's current directory
type ProcessResolver struct{}

// Resolve implements Resolver
func (ProcessResolver) Resolve(ctx context.Context) (Resolution, error) {
	dir, err := os.Getwd()
	if err != nil {
		return Resolution{}, fmt.Errorf("failed to get working directory: %w", err)
	}
	return Resolution{Dir: dir, Source: SourceProcess}, nil
}

// Chain tries each resolver in order and returns the first success
type Chain []Resolver

// Resolve implements Resolver
func (c Chain) Resolve(ctx context.Context) (Resolution, error) {
	var errs []error
	for _, r := range c {
		res, err := r.Resolve(ctx)
		if err == nil {
			return res, nil
		}
		log.Debug("working directory resolver skipped: %v", err)
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return Resolution{}, errors.New("no working directory resolvers configured")
	}
	return Resolution{}, errors.Join(errs...)
}

// Explicit returns the caller-provided directory, bypassing discovery
func Explicit(dir string) Resolution {
	return Resolution{Dir: dir, Source: SourceArgument}
}

// FileURIPath extracts the local path from a file:// URI
func FileURIPath(uri string) (string, bool) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return "", false
	}
	path := u.Path
	if path == "" {
		return "", false
	}
	return filepath.FromSlash(path), true
}

// RepositoryRoot returns the work tree root enclosing dir. When dir is not
// inside a repository it is returned unchanged with ok=false, leaving git to
// report the problem.
func RepositoryRoot(dir string) (root string, ok bool) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return dir, false
	}
	wt, err := repo.Worktree()
	if err != nil {
		// bare repositories have no work tree
		return dir, false
	}
	root = wt.Filesystem.Root()
	if strings.TrimSpace(root) == "" {
		return dir, false
	}
	return root, true
}
