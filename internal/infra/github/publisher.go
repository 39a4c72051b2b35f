// Package github publishes releases through the gh CLI.
package github

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/slipway-dev/slipway/internal/domain"
)

// Ensure Publisher implements domain.Publisher.
var _ domain.Publisher = (*Publisher)(nil)

// runner executes a command and returns its combined output. Swappable for
// tests.
type runner func(ctx context.Context, dir string, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Publisher creates GitHub releases and pull requests by shelling out to gh.
// Authentication and remote resolution stay with gh itself.
type Publisher struct {
	run      runner
	repoRoot string
}

// NewPublisher creates a new Publisher operating in the given repository.
func NewPublisher(repoRoot string) *Publisher {
	return &Publisher{repoRoot: repoRoot, run: execRunner}
}

// Available reports whether the gh CLI is installed.
func Available() bool {
	_, err := exec.LookPath("gh")
	return err == nil
}

// CreateRelease creates a GitHub release for an existing tag.
func (p *Publisher) CreateRelease(ctx context.Context, tag, title, notes string) error {
	args := []string{"release", "create", tag, "--title", title, "--verify-tag"}
	if notes != "" {
		args = append(args, "--notes", notes)
	} else {
		args = append(args, "--generate-notes")
	}
	out, err := p.run(ctx, p.repoRoot, "gh", args...)
	if err != nil {
		return fmt.Errorf("gh release create %s: %w: %s", tag, err, string(out))
	}
	return nil
}

// CreatePR opens a pull request.
func (p *Publisher) CreatePR(ctx context.Context, opts domain.CreatePROptions) error {
	args := []string{"pr", "create", "--title", opts.Title, "--body", opts.Body}
	if opts.Branch != "" {
		args = append(args, "--head", opts.Branch)
	}
	if opts.Base != "" {
		args = append(args, "--base", opts.Base)
	}
	out, err := p.run(ctx, p.repoRoot, "gh", args...)
	if err != nil {
		return fmt.Errorf("gh pr create: %w: %s", err, string(out))
	}
	return nil
}
