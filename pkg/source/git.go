package source

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrRevisionNotFound is returned when a ref does not resolve.
var ErrRevisionNotFound = errors.New("revision not found")

// GitSource reads documents at revisions of a git repository. Location is a
// local path or a remote URL; remotes are cloned into a temporary directory
// on first use.
type GitSource struct {
	location     string
	auth         AuthProvider
	cloneTimeout time.Duration
	logger       *slog.Logger

	mu      sync.Mutex
	repo    *gogit.Repository
	tempDir string
}

// GitOptions configures a GitSource.
type GitOptions struct {
	Auth         AuthProvider
	CloneTimeout time.Duration
	Logger       *slog.Logger
}

// NewGitSource creates a source for the repository at location.
func NewGitSource(location string, opts GitOptions) *GitSource {
	if opts.Auth == nil {
		opts.Auth = NoAuth{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &GitSource{
		location:     location,
		auth:         opts.Auth,
		cloneTimeout: opts.CloneTimeout,
		logger:       opts.Logger.With("component", "source.git"),
	}
}

// IsRemote reports whether location names a remote repository.
func IsRemote(location string) bool {
	for _, prefix := range []string{"https://", "http://", "ssh://", "git://", "git@"} {
		if strings.HasPrefix(location, prefix) {
			return true
		}
	}
	return false
}

// ReadAt returns the document at path as of ref (branch, tag or commit).
func (g *GitSource) ReadAt(ctx context.Context, ref, path string) (Document, error) {
	repo, err := g.open(ctx)
	if err != nil {
		return Document{}, err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return Document{}, fmt.Errorf("%w: %s: %v", ErrRevisionNotFound, ref, err)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return Document{}, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	file, err := commit.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return Document{}, fmt.Errorf("%s not found at %s: %w", path, ref, err)
		}
		return Document{}, fmt.Errorf("failed to read %s at %s: %w", path, ref, err)
	}
	if file.Size > MaxDocumentBytes {
		return Document{}, ErrTooLarge
	}
	contents, err := file.Contents()
	if err != nil {
		return Document{}, fmt.Errorf("failed to read %s at %s: %w", path, ref, err)
	}

	g.logger.Debug("document read from git", "ref", ref, "path", path, "commit", hash.String(), "bytes", len(contents))
	return Document{Name: ref + ":" + path, Data: []byte(contents)}, nil
}

func (g *GitSource) open(ctx context.Context) (*gogit.Repository, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.repo != nil {
		return g.repo, nil
	}

	if !IsRemote(g.location) {
		repo, err := gogit.PlainOpenWithOptions(g.location, &gogit.PlainOpenOptions{DetectDotGit: true})
		if err != nil {
			return nil, fmt.Errorf("failed to open repository %s: %w", g.location, err)
		}
		g.repo = repo
		return repo, nil
	}

	auth, err := g.auth.GetAuth()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth: %w", err)
	}
	dir, err := os.MkdirTemp("", "rulediff-git-")
	if err != nil {
		return nil, fmt.Errorf("failed to create clone directory: %w", err)
	}

	if g.cloneTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cloneTimeout)
		defer cancel()
	}

	start := time.Now()
	repo, err := gogit.PlainCloneContext(ctx, dir, true, &gogit.CloneOptions{
		URL:  g.location,
		Auth: auth,
		Tags: gogit.AllTags,
	})
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to clone repository: %w", err)
	}

	g.logger.Info("repository cloned",
		"auth", g.auth.Type(),
		"duration", time.Since(start),
	)
	g.repo = repo
	g.tempDir = dir
	return repo, nil
}

// Close removes any temporary clone.
func (g *GitSource) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.repo = nil
	if g.tempDir == "" {
		return nil
	}
	dir := g.tempDir
	g.tempDir = ""
	return os.RemoveAll(dir)
}
