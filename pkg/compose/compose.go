// Package compose drives the docker compose CLI for the stack's lifecycle
// verbs. It never inspects the platform's internal state: it only issues
// lifecycle commands and passes the env file as the source of runtime
// parameters. Non-zero exits are propagated without retries.
package compose

import (
	"context"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/rzbill/airdock/pkg/log"
)

// Options configures a compose Runner.
type Options struct {
	// ProjectName is passed as --project-name.
	ProjectName string

	// Files are the compose file paths, passed as repeated -f flags.
	Files []string

	// EnvFile is passed as --env-file when non-empty.
	EnvFile string

	// WorkingDir is where compose commands run (empty means current directory).
	WorkingDir string
}

// Runner invokes docker compose lifecycle verbs.
type Runner struct {
	opts   Options
	execer Execer
	logger log.Logger
}

// NewRunner creates a Runner that shells out to docker compose.
func NewRunner(opts Options, logger log.Logger) *Runner {
	return NewRunnerWithExecer(opts, NewExecer(opts.WorkingDir), logger)
}

// NewRunnerWithExecer creates a Runner with a specific Execer. Used by tests.
func NewRunnerWithExecer(opts Options, execer Execer, logger log.Logger) *Runner {
	if logger == nil {
		logger = log.GetDefaultLogger()
	}
	return &Runner{
		opts:   opts,
		execer: execer,
		logger: logger.WithComponent("compose"),
	}
}

// args assembles the common docker compose argument prefix plus the verb.
func (r *Runner) args(verb ...string) []string {
	args := []string{"compose"}
	if r.opts.ProjectName != "" {
		args = append(args, "--project-name", r.opts.ProjectName)
	}
	for _, f := range r.opts.Files {
		args = append(args, "-f", f)
	}
	if r.opts.EnvFile != "" {
		args = append(args, "--env-file", r.opts.EnvFile)
	}
	return append(args, verb...)
}

func (r *Runner) run(ctx context.Context, verb ...string) error {
	args := r.args(verb...)
	r.logger.Debug("running docker compose", log.Str("args", fmt.Sprintf("%v", args[1:])))
	if err := r.execer.Run(ctx, "docker", args...); err != nil {
		return fmt.Errorf("docker compose %s failed: %w", verb[0], err)
	}
	return nil
}

// Up starts the stack in detached mode.
func (r *Runner) Up(ctx context.Context) error {
	return r.run(ctx, "up", "-d")
}

// Down stops and removes the stack's containers.
func (r *Runner) Down(ctx context.Context) error {
	return r.run(ctx, "down")
}

// Restart restarts the stack's services.
func (r *Runner) Restart(ctx context.Context) error {
	return r.run(ctx, "restart")
}

// Build builds the stack's images. noCache forces a full rebuild.
func (r *Runner) Build(ctx context.Context, noCache bool) error {
	verb := []string{"build"}
	if noCache {
		verb = append(verb, "--no-cache")
	}
	return r.run(ctx, verb...)
}

// Pull pulls the stack's images.
func (r *Runner) Pull(ctx context.Context) error {
	return r.run(ctx, "pull")
}

// Push pushes the stack's built images to their registries.
func (r *Runner) Push(ctx context.Context) error {
	return r.run(ctx, "push")
}

// Logs tails the stack's logs. follow keeps streaming until interrupted.
func (r *Runner) Logs(ctx context.Context, follow bool, services ...string) error {
	verb := []string{"logs"}
	if follow {
		verb = append(verb, "-f")
	}
	verb = append(verb, services...)
	return r.run(ctx, verb...)
}

// Ps lists the stack's containers.
func (r *Runner) Ps(ctx context.Context) error {
	return r.run(ctx, "ps")
}

// Config renders and validates the effective compose configuration,
// returning the rendered YAML.
func (r *Runner) Config(ctx context.Context) (string, error) {
	out, err := r.execer.Output(ctx, "docker", r.args("config")...)
	if err != nil {
		return "", fmt.Errorf("docker compose config failed: %w", err)
	}
	return out, nil
}

// Login authenticates the Docker CLI against a registry, passing the
// password over stdin so it never appears in the process list.
func (r *Runner) Login(ctx context.Context, host, username, password string) error {
	err := r.execer.RunInput(ctx, password, "docker", "login", "--username", username, "--password-stdin", host)
	if err != nil {
		return fmt.Errorf("docker login to %s failed: %w", host, err)
	}
	return nil
}

// ParseServices extracts the service names declared in a rendered compose
// configuration, sorted alphabetically.
func ParseServices(rendered string) ([]string, error) {
	var doc struct {
		Services map[string]struct {
			Image string `yaml:"image"`
		} `yaml:"services"`
	}
	if err := yaml.Unmarshal([]byte(rendered), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rendered compose config: %w", err)
	}

	names := make([]string, 0, len(doc.Services))
	for name := range doc.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
