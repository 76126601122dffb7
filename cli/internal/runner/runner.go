// Package runner invokes a local model runner ("ollama run <model>") as an
// external process: the prompt goes in on stdin and the full stdout comes
// back as the reply.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultBin is the runner binary looked up on PATH when none is configured.
const DefaultBin = "ollama"

// ErrModelUnavailable means the runner binary could not be found or started.
var ErrModelUnavailable = errors.New("model runner not available")

// ErrInvocationFailed means the runner started but the invocation did not succeed.
var ErrInvocationFailed = errors.New("model invocation failed")

// Process runs "<Bin> run <Model>" once per prompt. There is no timeout and
// no retry; ctx cancellation kills the process.
type Process struct {
	Bin   string // binary name or path (default "ollama")
	Model string
	Dir   string   // optional working directory
	Env   []string // optional extra KEY=VALUE entries
}

func (p *Process) bin() string {
	if p.Bin == "" {
		return DefaultBin
	}
	return p.Bin
}

// Available reports ErrModelUnavailable when bin is not on PATH.
func Available(bin string) error {
	if bin == "" {
		bin = DefaultBin
	}
	if _, err := exec.LookPath(bin); err != nil {
		return fmt.Errorf("%w: %s not found on PATH", ErrModelUnavailable, bin)
	}
	return nil
}

// Generate pipes prompt to the runner and returns its stdout, trimmed, with
// invalid UTF-8 replaced. A non-zero exit wraps ErrInvocationFailed and
// carries the runner's stderr.
func (p *Process) Generate(ctx context.Context, prompt string) (string, error) {
	if p == nil {
		return "", fmt.Errorf("%w: nil runner", ErrModelUnavailable)
	}
	if p.Model == "" {
		return "", fmt.Errorf("%w: no model configured", ErrInvocationFailed)
	}
	cmd := exec.CommandContext(ctx, p.bin(), "run", p.Model)
	cmd.Dir = p.Dir
	cmd.Stdin = strings.NewReader(prompt)
	if len(p.Env) > 0 {
		cmd.Env = append(cmd.Environ(), p.Env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || cmd.Process == nil {
			// Never started: missing binary or not executable.
			return "", fmt.Errorf("%w: %v", ErrModelUnavailable, err)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(strings.ToValidUTF8(stderr.String(), "\uFFFD"))
			if msg == "" {
				return "", fmt.Errorf("%w: %s run %s: exit status %d", ErrInvocationFailed, p.bin(), p.Model, exitErr.ExitCode())
			}
			return "", fmt.Errorf("%w: %s run %s: exit status %d: %s", ErrInvocationFailed, p.bin(), p.Model, exitErr.ExitCode(), msg)
		}
		return "", fmt.Errorf("%w: %v", ErrInvocationFailed, err)
	}
	return strings.TrimSpace(strings.ToValidUTF8(stdout.String(), "\uFFFD")), nil
}
