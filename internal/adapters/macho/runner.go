// Package macho inspects and patches Mach-O binaries by driving the
// otool and install_name_tool command-line utilities.
package macho

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"

	"go.trai.ch/zerr"
)

// runTool executes a command-line tool and returns its stdout. Stderr is
// captured separately and attached to the error on failure.
func runTool(ctx context.Context, tool string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, tool, args...) //nolint:gosec // tool paths come from configuration
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		err = zerr.With(zerr.Wrap(err, "command failed"), "tool", tool)
		err = zerr.With(err, "exit_code", exitCode)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = zerr.With(err, "stderr", msg)
		}
		return "", err
	}

	return stdout.String(), nil
}
