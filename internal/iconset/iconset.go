// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package iconset renders the application icon into a macOS iconset and
compiles it into an .icns file.

# Directory Structure

By default, paths are derived from the project root:

	icon.svg                  The source image. SVG and PNG are supported.
	Locate/AppIcon.iconset    The staging directory. It's removed and
	                          recreated on each run.
	Locate/AppIcon.icns       The compiled icon, written by iconutil.
	Locate/Info.plist         The application descriptor that should
	                          reference the compiled icon.

See Config for how to change them.
*/
package iconset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.astrophena.name/iconset/internal/logger"

	"github.com/dustin/go-humanize"
)

// Possible errors, used in tests.
var (
	// ErrSourceMissing is returned when the source image doesn't exist.
	ErrSourceMissing     = errors.New("source image not found")
	errUnsupportedFormat = errors.New("unsupported source format")
	errInvalidIcon       = errors.New("invalid icon")
	errNoViewBox         = errors.New("svg has no usable viewBox")
)

// Icon is one image of the iconset.
type Icon struct {
	// Size is the width and height of the image, in pixels.
	Size int `toml:"size"`
	// Name is the file name of the image inside the iconset directory.
	Name string `toml:"name"`
}

// icons is the size ladder iconutil expects. The @2x entries reuse the
// pixel size of the next larger image under their own name.
var icons = [...]Icon{
	{16, "icon_16x16.png"},
	{32, "icon_16x16@2x.png"},
	{32, "icon_32x32.png"},
	{64, "icon_32x32@2x.png"},
	{128, "icon_128x128.png"},
	{256, "icon_128x128@2x.png"},
	{256, "icon_256x256.png"},
	{512, "icon_256x256@2x.png"},
	{512, "icon_512x512.png"},
	{1024, "icon_512x512@2x.png"},
}

// Icons returns the default macOS icon sizes, from the smallest to the
// largest. Each call returns a new slice.
func Icons() []Icon { return slices.Clone(icons[:]) }

// Config represents an icon generation configuration.
type Config struct {
	// Root is the project root. If empty, uses the current directory.
	// Relative paths below are resolved against it.
	Root string
	// AppDir is the application directory, relative to Root. If empty, uses
	// "Locate".
	AppDir string
	// Src is the source image. If empty, uses icon.svg in Root.
	Src string
	// Iconset is the staging directory for rendered images. If empty, uses
	// AppIcon.iconset in the application directory.
	Iconset string
	// Output is the path of the compiled icon. If empty, uses AppIcon.icns in
	// the application directory.
	Output string
	// Plist is the path of the application descriptor. If empty, uses
	// Info.plist in the application directory.
	Plist string
	// Icons is the list of images to render. If empty, uses Icons.
	Icons []Icon
	// Packager compiles the iconset. If nil, uses Iconutil.
	Packager Packager
	// SkipPackage determines if the iconset shouldn't be compiled.
	SkipPackage bool
	// MinifiedSVG, if set, is where a minified copy of the SVG source is
	// written.
	MinifiedSVG string
	// Logf receives progress messages. If nil, they are discarded.
	Logf logger.Logf
}

func (c *Config) setDefaults() {
	if c.Root == "" {
		c.Root = "."
	}
	if abs, err := filepath.Abs(c.Root); err == nil {
		c.Root = abs
	}
	if c.AppDir == "" {
		c.AppDir = "Locate"
	}
	appDir := filepath.Join(c.Root, c.AppDir)

	c.Src = c.resolve(c.Src, filepath.Join(c.Root, "icon.svg"))
	c.Iconset = c.resolve(c.Iconset, filepath.Join(appDir, "AppIcon.iconset"))
	c.Output = c.resolve(c.Output, filepath.Join(appDir, "AppIcon.icns"))
	c.Plist = c.resolve(c.Plist, filepath.Join(appDir, "Info.plist"))
	c.MinifiedSVG = c.resolve(c.MinifiedSVG, "")
	if len(c.Icons) == 0 {
		c.Icons = Icons()
	}
	if c.Packager == nil {
		c.Packager = Iconutil{}
	}
	if c.Logf == nil {
		c.Logf = func(string, ...any) {}
	}
}

// resolve returns def if path is empty, and path relative to Root otherwise.
func (c *Config) resolve(path, def string) string {
	switch {
	case path == "":
		return def
	case filepath.IsAbs(path):
		return path
	}
	return filepath.Join(c.Root, path)
}

// Result describes the outcome of Generate.
type Result struct {
	// Files are the rendered images, in the order of Config.Icons.
	Files []string
	// Output is the compiled icon. It's empty if packaging was skipped.
	Output string
}

// Generate renders the source image at every size of the configuration into
// the iconset directory and compiles it, based on the provided [Config].
//
// If the source image doesn't exist, Generate returns an error wrapping
// ErrSourceMissing and leaves the file system untouched. Packaging failures
// are reported as *PackageError.
func Generate(ctx context.Context, c *Config) (*Result, error) {
	c.setDefaults()
	c.Logf("Generating app icon from %s...", filepath.Base(c.Src))

	if err := validateIcons(c.Icons); err != nil {
		return nil, err
	}
	if err := checkSource(c.Src); err != nil {
		return nil, err
	}
	src, err := loadSource(c.Src)
	if err != nil {
		return nil, err
	}
	if _, isSVG := src.(*svgSource); c.MinifiedSVG != "" && !isSVG {
		return nil, fmt.Errorf("%w: minified SVG requested for %s", errUnsupportedFormat, c.Src)
	}

	if err := resetIconset(c.Iconset); err != nil {
		return nil, err
	}

	res := new(Result)
	c.Logf("Generating icon sizes...")
	for _, icon := range c.Icons {
		path := filepath.Join(c.Iconset, icon.Name)
		n, err := renderIcon(src, icon.Size, path)
		if err != nil {
			return res, fmt.Errorf("rendering %s: %w", icon.Name, err)
		}
		c.Logf("  %dx%d -> %s (%s)", icon.Size, icon.Size, icon.Name, humanize.Bytes(uint64(n)))
		res.Files = append(res.Files, path)
	}

	if c.MinifiedSVG != "" {
		if err := MinifySVG(c.Src, c.MinifiedSVG); err != nil {
			return res, err
		}
		c.Logf("Wrote minified %s", c.MinifiedSVG)
	}

	if c.SkipPackage {
		return res, nil
	}

	c.Logf("Creating .icns file...")
	if err := c.Packager.Package(ctx, c.Iconset, c.Output); err != nil {
		return res, err
	}
	res.Output = c.Output

	return res, nil
}

func checkSource(path string) error {
	_, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w at %s", ErrSourceMissing, path)
	}
	return err
}

// resetIconset removes everything left from the previous run.
func resetIconset(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return os.MkdirAll(dir, 0o755)
}

func validateIcons(icons []Icon) error {
	seen := make(map[string]bool, len(icons))
	for _, icon := range icons {
		switch {
		case icon.Size <= 0:
			return fmt.Errorf("%w: %s: size must be positive, got %d", errInvalidIcon, icon.Name, icon.Size)
		case filepath.Base(icon.Name) != icon.Name || icon.Name == "." || icon.Name == "..":
			return fmt.Errorf("%w: %q is not a file name", errInvalidIcon, icon.Name)
		case !strings.HasSuffix(icon.Name, ".png"):
			return fmt.Errorf("%w: %s: must have the .png extension", errInvalidIcon, icon.Name)
		case seen[icon.Name]:
			return fmt.Errorf("%w: duplicate name %s", errInvalidIcon, icon.Name)
		}
		seen[icon.Name] = true
	}
	return nil
}
