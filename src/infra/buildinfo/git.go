package buildinfo

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"

	"udin/src/core/ports"
)

var _ ports.SourceControl = (*Git)(nil)

// Git resolves HEAD of the repository containing dir.
type Git struct {
	dir string
}

// NewGit creates a Git resolver rooted at dir. Parent directories are
// searched for the .git directory.
func NewGit(dir string) *Git {
	return &Git{dir: dir}
}

// Head returns the short branch name and full commit hash. A detached HEAD
// reports the branch as "HEAD".
func (g *Git) Head(_ context.Context) (string, string, error) {
	repo, err := git.PlainOpenWithOptions(g.dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", "", fmt.Errorf("open repository: %w", err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", "", fmt.Errorf("resolve HEAD: %w", err)
	}

	branch := "HEAD"
	if ref.Name().IsBranch() {
		branch = ref.Name().Short()
	}
	return branch, ref.Hash().String(), nil
}
