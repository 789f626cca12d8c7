package hooks

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Timeout is the hard limit on a single hook invocation.
const Timeout = 300 * time.Second

// Result is the captured outcome of one hook process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
}

// Runner spawns external hook processes. Tests substitute a fake that
// returns scripted results instead of forking.
type Runner interface {
	Run(ctx context.Context, name string, args []string, dir string, env []string, stdin string) (Result, error)
}

// ExecRunner runs hooks with os/exec under the hook timeout.
type ExecRunner struct{}

func (ExecRunner) Run(ctx context.Context, name string, args []string, dir string, env []string, stdin string) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Env = env
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if ctx.Err() == context.DeadlineExceeded {
		res.TimedOut = true
		return res, nil
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, errors.Wrapf(err, "running %s", name)
	}
	return res, nil
}
