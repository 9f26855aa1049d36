// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// Packager compiles an iconset directory into a single icon file.
type Packager interface {
	Package(ctx context.Context, iconset, output string) error
}

// PackagerFunc is a function that implements [Packager].
type PackagerFunc func(ctx context.Context, iconset, output string) error

// Package calls f(ctx, iconset, output).
func (f PackagerFunc) Package(ctx context.Context, iconset, output string) error {
	return f(ctx, iconset, output)
}

var errNoOutput = errors.New("no output file produced")

// Iconutil is a [Packager] that runs the macOS iconutil command.
type Iconutil struct {
	// Path is the iconutil binary. If empty, iconutil is looked up in PATH.
	Path string
}

func (u Iconutil) bin() string {
	if u.Path != "" {
		return u.Path
	}
	return "iconutil"
}

// LookPath returns the location of the iconutil binary, or an error if it
// can't be found.
func (u Iconutil) LookPath() (string, error) {
	return exec.LookPath(u.bin())
}

// Package runs "iconutil -c icns iconset -o output". Any existing output
// file is removed first.
func (u Iconutil) Package(ctx context.Context, iconset, output string) error {
	if err := os.Remove(output); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, u.bin(), "-c", "icns", iconset, "-o", output)
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &PackageError{Args: cmd.Args, Err: err, Stderr: strings.TrimSpace(stderr.String())}
	}
	// Success means this run wrote the output, not only a zero exit status.
	if _, err := os.Stat(output); err != nil {
		return &PackageError{Args: cmd.Args, Err: fmt.Errorf("%w: %v", errNoOutput, err), Stderr: strings.TrimSpace(stderr.String())}
	}
	return nil
}

// PackageError is returned when compiling the iconset fails.
type PackageError struct {
	// Args is the command line that was run.
	Args []string
	// Err is the underlying error, usually *exec.ExitError.
	Err error
	// Stderr is what the command printed to standard error.
	Stderr string
}

func (e *PackageError) Error() string {
	msg := fmt.Sprintf("%s failed: %v", strings.Join(e.Args, " "), e.Err)
	if e.Stderr != "" {
		msg += ":\n" + e.Stderr
	}
	return msg
}

func (e *PackageError) Unwrap() error { return e.Err }
