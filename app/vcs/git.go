package vcs

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its combined output.
// Injected so tests can record invocations without a real repository.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

type execRunner struct {
	dir string
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}

	return strings.TrimSpace(string(output)), nil
}

// Git wraps the version-control operations the publisher needs. All
// commands run against a single working tree and the "origin" remote.
type Git struct {
	runner Runner
}

// NewGit returns a Git wrapper operating in dir.
func NewGit(dir string) *Git {
	return &Git{runner: &execRunner{dir: dir}}
}

// NewGitWithRunner is used by tests to substitute the command runner.
func NewGitWithRunner(runner Runner) *Git {
	return &Git{runner: runner}
}

// Fetch updates the remote tracking ref for branch.
func (g *Git) Fetch(ctx context.Context, branch string) error {
	_, err := g.runner.Run(ctx, "git", "fetch", "origin", branch)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", branch, err)
	}
	return nil
}

// CheckoutReset creates branch from the remote tip of base, resetting it if
// it already exists. This is what makes re-runs land on a clean branch
// instead of stacking commits.
func (g *Git) CheckoutReset(ctx context.Context, branch, base string) error {
	_, err := g.runner.Run(ctx, "git", "checkout", "-B", branch, "origin/"+base)
	if err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branch, err)
	}
	return nil
}

// Configure sets the committer identity for subsequent commits.
func (g *Git) Configure(ctx context.Context, name, email string) error {
	if _, err := g.runner.Run(ctx, "git", "config", "user.name", name); err != nil {
		return fmt.Errorf("failed to set user.name: %w", err)
	}
	if _, err := g.runner.Run(ctx, "git", "config", "user.email", email); err != nil {
		return fmt.Errorf("failed to set user.email: %w", err)
	}
	return nil
}

// CommitAll stages every working-tree change and commits it with the given
// message.
func (g *Git) CommitAll(ctx context.Context, message string) error {
	if _, err := g.runner.Run(ctx, "git", "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	if _, err := g.runner.Run(ctx, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// PushForceWithLease pushes branch, overwriting the remote tip only when it
// still matches the last-known value. A concurrent run moving the branch
// makes this fail instead of silently losing its work.
func (g *Git) PushForceWithLease(ctx context.Context, branch string) error {
	out, err := g.runner.Run(ctx, "git", "push", "origin", branch, "--force-with-lease")
	if err != nil {
		return fmt.Errorf("failed to push %s: %w", branch, err)
	}
	if out != "" {
		slog.Debug("Pushed branch", "branch", branch, "output", out)
	}
	return nil
}
