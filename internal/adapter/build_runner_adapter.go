package adapter

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"time"
)

// BuildRunnerAdapter compiles generated packages so broken output is caught
// before it is committed.
type BuildRunnerAdapter interface {
	// RunGoBuild runs 'go build' on target inside workDir.
	// Returns the combined stdout/stderr output and any error.
	RunGoBuild(ctx context.Context, workDir, target string) (output string, err error)
}

// LocalBuildRunnerAdapter provides a concrete implementation using os/exec.
type LocalBuildRunnerAdapter struct {
	timeout time.Duration
}

// NewLocalBuildRunnerAdapter constructs a LocalBuildRunnerAdapter with the given timeout.
func NewLocalBuildRunnerAdapter(timeout time.Duration) *LocalBuildRunnerAdapter {
	return &LocalBuildRunnerAdapter{
		timeout: timeout,
	}
}

// RunGoBuild runs 'go build' for target in the given directory. Build
// artifacts are discarded.
func (a *LocalBuildRunnerAdapter) RunGoBuild(ctx context.Context, workDir, target string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// #nosec G204 - target is a package path chosen by the workflow
	cmd := exec.CommandContext(ctx, "go", "build", "-o", os.DevNull, target)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()

	return output, err
}
