package versioninfo

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"unicode/utf8"
)

// ErrInvalidOutput indicates the VCS printed something that is not UTF-8.
var ErrInvalidOutput = errors.New("versioninfo: vcs output is not valid utf-8")

// VCS answers the two provenance queries for the repository at dir.
type VCS interface {
	// ShortHash returns the abbreviated hash of the checked out HEAD.
	ShortHash(ctx context.Context, dir string) (string, error)
	// ShortDate returns the YYYY-MM-DD date of the most recent commit.
	ShortDate(ctx context.Context, dir string) (string, error)
}

// CommandRunner runs name with args in dir and returns its standard output.
type CommandRunner func(ctx context.Context, dir, name string, args ...string) ([]byte, error)

// GitCLI queries the git executable. Output is returned verbatim, so the hash
// usually carries a trailing newline.
type GitCLI struct {
	// Binary defaults to "git".
	Binary string
	// Run defaults to executing the command with os/exec.
	Run CommandRunner
}

// ShortHash runs "git rev-parse --short HEAD".
func (g GitCLI) ShortHash(ctx context.Context, dir string) (string, error) {
	return g.output(ctx, dir, "rev-parse", "--short", "HEAD")
}

// ShortDate runs "git log -1 --date=short --pretty=format:%cd".
func (g GitCLI) ShortDate(ctx context.Context, dir string) (string, error) {
	return g.output(ctx, dir, "log", "-1", "--date=short", "--pretty=format:%cd")
}

func (g GitCLI) output(ctx context.Context, dir string, args ...string) (string, error) {
	binary := g.Binary
	if binary == "" {
		binary = "git"
	}
	run := g.Run
	if run == nil {
		run = execRunner
	}

	out, err := run(ctx, dir, binary, args...)
	if err != nil {
		return "", fmt.Errorf("running %s %s: %w", binary, args[0], err)
	}
	if !utf8.Valid(out) {
		return "", ErrInvalidOutput
	}
	return string(out), nil
}

func execRunner(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.Output()
}
