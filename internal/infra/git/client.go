// Package git locates the git repository that hosts initiative data.
package git

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/runoshun/initiative/internal/domain"
)

// Client describes the repository found from a working directory.
type Client struct {
	repo     *git.Repository
	repoRoot string // Main repository root (parent of .git)
	gitDir   string // Common .git directory
}

// NewClient detects the repository containing dir, walking up parent
// directories. Linked worktrees resolve to the main repository's .git.
func NewClient(dir string) (*Client, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, domain.ErrNotGitRepository
		}
		return nil, fmt.Errorf("open repository: %w", err)
	}

	fs, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return nil, fmt.Errorf("unsupported repository storage %T", repo.Storer)
	}
	gitDir, err := commonGitDir(fs.Filesystem().Root())
	if err != nil {
		return nil, err
	}

	return &Client{
		repo:     repo,
		repoRoot: filepath.Dir(gitDir),
		gitDir:   gitDir,
	}, nil
}

// RepoRoot returns the repository root directory.
func (c *Client) RepoRoot() string {
	return c.repoRoot
}

// GitDir returns the .git directory path.
func (c *Client) GitDir() string {
	return c.gitDir
}

// Repository returns the opened repository.
func (c *Client) Repository() *git.Repository {
	return c.repo
}

// commonGitDir follows the commondir file that linked worktrees keep in
// their private git directory.
func commonGitDir(gitDir string) (string, error) {
	content, err := os.ReadFile(filepath.Join(gitDir, "commondir"))
	if err != nil {
		if os.IsNotExist(err) {
			return filepath.Clean(gitDir), nil
		}
		return "", fmt.Errorf("read commondir: %w", err)
	}

	common := strings.TrimSpace(string(content))
	if !filepath.IsAbs(common) {
		common = filepath.Join(gitDir, common)
	}
	return filepath.Clean(common), nil
}
