// Package msdoc extracts text from legacy binary Word (.doc) files.
//
// Conversion is delegated to a driven.LegacyDocConverter. The antiword
// converter shells out to the antiword binary; Unavailable always fails so
// that .doc files are counted as extraction failures when no converter is
// installed.
package msdoc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// DefaultBinary is the converter executable looked up in PATH.
const DefaultBinary = "antiword"

// ErrAntiwordNotFound is returned when the antiword binary cannot be found.
var ErrAntiwordNotFound = fmt.Errorf("%w: antiword not found in PATH", domain.ErrConverterUnavailable)

// Ensure converters implement the interface.
var (
	_ driven.LegacyDocConverter = (*Antiword)(nil)
	_ driven.LegacyDocConverter = Unavailable{}
	_ driven.CommandRunner      = ExecRunner{}
)

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run executes name and returns its standard output.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return out, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return out, err
	}
	return out, nil
}

// Antiword converts .doc files with the antiword binary.
type Antiword struct {
	binary   string
	runner   driven.CommandRunner
	lookPath func(string) (string, error)
}

// New creates an antiword converter. An empty binary uses DefaultBinary.
func New(binary string) *Antiword {
	return NewWithRunner(binary, ExecRunner{})
}

// NewWithRunner creates an antiword converter with a custom command runner.
func NewWithRunner(binary string, runner driven.CommandRunner) *Antiword {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Antiword{
		binary:   binary,
		runner:   runner,
		lookPath: exec.LookPath,
	}
}

// Available reports whether the antiword binary can be found.
func (a *Antiword) Available() error {
	if _, err := a.lookPath(a.binary); err != nil {
		return ErrAntiwordNotFound
	}
	return nil
}

// Convert runs antiword on path and returns its text output.
func (a *Antiword) Convert(ctx context.Context, path string) (string, error) {
	if err := a.Available(); err != nil {
		return "", err
	}

	// -w 0 keeps each paragraph on a single line
	out, err := a.runner.Run(ctx, a.binary, "-w", "0", path)
	if err != nil {
		return "", fmt.Errorf("%w: antiword failed: %v", domain.ErrExtractionFailed, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// Unavailable is the converter used when no .doc converter is installed.
type Unavailable struct{}

// Available always fails.
func (Unavailable) Available() error {
	return domain.ErrConverterUnavailable
}

// Convert always fails.
func (Unavailable) Convert(context.Context, string) (string, error) {
	return "", domain.ErrConverterUnavailable
}

// Detect returns the antiword converter when binary is installed and
// Unavailable otherwise.
func Detect(binary string) driven.LegacyDocConverter {
	a := New(binary)
	if a.Available() != nil {
		return Unavailable{}
	}
	return a
}

// InstallInstructions returns platform-specific instructions for installing antiword.
func InstallInstructions() string {
	return `Legacy .doc extraction requires antiword.

Install it with:
  macOS:         brew install antiword
  Ubuntu/Debian: sudo apt install antiword
  Fedora:        sudo dnf install antiword

Or set antiword_path in config.toml to the binary location.`
}
