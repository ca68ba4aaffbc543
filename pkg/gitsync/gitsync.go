// Package gitsync implements the destructive resync of the deployment
// checkout: discard all local modifications and reset to a named remote
// reference. This is the only irreversible operation in the tool, so it
// requires an interactive confirmation and refuses to run unattended.
package gitsync

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	gogit "github.com/go-git/go-git/v5"
	"golang.org/x/term"

	"github.com/rzbill/airdock/pkg/log"
)

// Resyncer performs the confirmed hard reset against a remote reference.
type Resyncer struct {
	dir    string
	logger log.Logger

	// Overridable for tests.
	confirm    func(message string) (bool, error)
	isTerminal func() bool
	runGit     func(ctx context.Context, dir string, args ...string) (string, error)
}

// Option is a function that configures a Resyncer.
type Option func(*Resyncer)

// WithLogger sets the logger for the resyncer.
func WithLogger(logger log.Logger) Option {
	return func(r *Resyncer) { r.logger = logger }
}

// WithConfirm overrides the interactive confirmation prompt.
func WithConfirm(fn func(message string) (bool, error)) Option {
	return func(r *Resyncer) { r.confirm = fn }
}

// WithTerminalCheck overrides the attached-terminal check.
func WithTerminalCheck(fn func() bool) Option {
	return func(r *Resyncer) { r.isTerminal = fn }
}

// WithGitRunner overrides how git commands are executed.
func WithGitRunner(fn func(ctx context.Context, dir string, args ...string) (string, error)) Option {
	return func(r *Resyncer) { r.runGit = fn }
}

// New creates a Resyncer operating on the repository at dir.
func New(dir string, options ...Option) *Resyncer {
	r := &Resyncer{
		dir:        dir,
		logger:     log.GetDefaultLogger().WithComponent("gitsync"),
		confirm:    surveyConfirm,
		isTerminal: stdinIsTerminal,
		runGit:     runGitCommand,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Resync discards local modifications and resets the checkout to
// remote/branch after an interactive confirmation (default no). It reports
// whether the reset was performed: a declined confirmation is not an error.
func (r *Resyncer) Resync(ctx context.Context, remote, branch string) (bool, error) {
	// Validate the checkout before prompting.
	if _, err := gogit.PlainOpenWithOptions(r.dir, &gogit.PlainOpenOptions{DetectDotGit: true}); err != nil {
		return false, fmt.Errorf("not a git repository: %w", err)
	}

	if !r.isTerminal() {
		return false, fmt.Errorf("refusing to resync without an interactive terminal")
	}

	target := fmt.Sprintf("%s/%s", remote, branch)
	confirmed, err := r.confirm(fmt.Sprintf("Discard ALL local changes and reset to %s?", target))
	if err != nil {
		return false, err
	}
	if !confirmed {
		r.logger.Info("resync declined")
		return false, nil
	}

	if _, err := r.runGit(ctx, r.dir, "fetch", remote); err != nil {
		return false, fmt.Errorf("failed to fetch %s: %w", remote, err)
	}
	if _, err := r.runGit(ctx, r.dir, "reset", "--hard", target); err != nil {
		return false, fmt.Errorf("failed to hard reset to %s: %w", target, err)
	}

	r.logger.Info("checkout reset", log.Str("target", target))
	return true, nil
}

func surveyConfirm(message string) (bool, error) {
	confirmed := false
	prompt := &survey.Confirm{
		Message: message,
		Default: false,
	}
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false, err
	}
	return confirmed, nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}
