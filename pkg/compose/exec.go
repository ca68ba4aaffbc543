package compose

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Execer runs external commands. The default implementation shells out;
// tests substitute a fake.
type Execer interface {
	// Run executes a command with stdio inherited from the parent process.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes a command and returns its captured stdout.
	Output(ctx context.Context, name string, args ...string) (string, error)

	// RunInput executes a command with the given string piped to stdin.
	RunInput(ctx context.Context, input, name string, args ...string) error
}

// execRunner is the real Execer backed by os/exec.
type execRunner struct {
	workingDir string
}

// NewExecer returns an Execer running commands in the given directory
// (empty means the current directory).
func NewExecer(workingDir string) Execer {
	return &execRunner{workingDir: workingDir}
}

func (r *execRunner) Run(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.workingDir
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (r *execRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.workingDir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return "", fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return stdout.String(), nil
}

func (r *execRunner) RunInput(ctx context.Context, input, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.workingDir
	cmd.Stdin = strings.NewReader(input)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
