package internal

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

const secretPrefix = "op://"

// Overridable for testing.
var (
	commandContext = exec.CommandContext
	lookPath       = exec.LookPath
)

// ResolveSecretReference resolves a 1Password secret reference of the
// form op://vault/item/field via the op CLI. It returns the resolved
// value and whether the input was a reference at all; plain values pass
// through untouched.
func ResolveSecretReference(ctx context.Context, value string) (string, bool, error) {
	if !strings.HasPrefix(value, secretPrefix) {
		return value, false, nil
	}

	if _, err := lookPath("op"); err != nil {
		return "", true, fmt.Errorf("1Password CLI (op) not found in PATH: %w", err)
	}

	cmd := commandContext(ctx, "op", "read", value)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", true, fmt.Errorf("reading secret from 1Password: %s", strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", true, fmt.Errorf("reading secret from 1Password: %w", err)
	}

	return strings.TrimSpace(string(output)), true, nil
}
