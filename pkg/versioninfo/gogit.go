package versioninfo

import (
	"context"
	"fmt"

	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
)

const shortHashLen = 7

// GoGit reads the repository in process with go-git, for environments that
// have a checkout but no git executable.
type GoGit struct{}

// ShortHash returns the first seven hex digits of HEAD.
func (GoGit) ShortHash(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	repo, err := openRepository(dir)
	if err != nil {
		return "", err
	}
	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}
	hash := head.Hash().String()
	if len(hash) > shortHashLen {
		hash = hash[:shortHashLen]
	}
	return hash, nil
}

// ShortDate returns the committer date of HEAD in the committer's zone.
func (GoGit) ShortDate(ctx context.Context, dir string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	commit, err := headCommit(dir)
	if err != nil {
		return "", err
	}
	return commit.Committer.When.Format("2006-01-02"), nil
}

func headCommit(dir string) (*object.Commit, error) {
	repo, err := openRepository(dir)
	if err != nil {
		return nil, err
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolving HEAD: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("loading HEAD commit: %w", err)
	}
	return commit, nil
}

func openRepository(dir string) (*git.Repository, error) {
	if dir == "" {
		dir = "."
	}
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening repository %s: %w", dir, err)
	}
	return repo, nil
}
