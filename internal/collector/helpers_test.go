package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/Guliveer/prtg-sensors/internal/runner"
)

// fakeRunner answers commands from a table keyed by "name arg1 arg2 ...".
// Unknown commands fail as if the binary did not exist.
type fakeRunner map[string]fakeResult

type fakeResult struct {
	stdout   string
	stderr   string
	exitCode int
}

func (f fakeRunner) Run(_ context.Context, name string, args ...string) (runner.Output, error) {
	key := strings.TrimSpace(name + " " + strings.Join(args, " "))
	res, ok := f[key]
	if !ok {
		return runner.Output{}, &runner.CommandError{Command: key, ExitCode: -1, Err: fmt.Errorf("executable file not found")}
	}
	out := runner.Output{Stdout: []byte(res.stdout), Stderr: []byte(res.stderr)}
	if res.exitCode != 0 {
		return out, &runner.CommandError{Command: key, ExitCode: res.exitCode, Stderr: strings.TrimSpace(res.stderr)}
	}
	return out, nil
}
