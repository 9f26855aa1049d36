// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.astrophena.name/base/cli"
	"go.astrophena.name/iconset/internal/devtools"
	"go.astrophena.name/iconset/internal/iconset"
	"go.astrophena.name/iconset/internal/logger"
)

func main() { cli.Main(new(app)) }

type app struct {
	root        string
	appDir      string
	src         string
	config      string
	minifiedSVG string
	skipPackage bool
	watch       bool

	packager iconset.Packager // used in tests
}

func (a *app) Flags(fs *flag.FlagSet) {
	fs.StringVar(&a.root, "root", "", "Project root `dir`. Defaults to the enclosing Git repository or the current directory.")
	fs.StringVar(&a.appDir, "app", "", "Application directory, relative to the root (default \"Locate\").")
	fs.StringVar(&a.src, "src", "", "Source image `file`, relative to the root (default \"icon.svg\").")
	fs.StringVar(&a.config, "config", "", "Read configuration from TOML `file`.")
	fs.StringVar(&a.minifiedSVG, "minified-svg", "", "Also write a minified copy of the SVG source to `file`, relative to the root.")
	fs.BoolVar(&a.skipPackage, "skip-package", false, "Only render the iconset, don't run iconutil.")
	fs.BoolVar(&a.watch, "watch", false, "Regenerate the icon when the source image changes.")
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)
	return a.run(ctx, env.Args, env.Stdout)
}

func (a *app) run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: no arguments expected, got %q", cli.ErrInvalidArgs, args)
	}

	c, err := a.buildConfig()
	if err != nil {
		return err
	}

	if a.packager != nil {
		c.Packager = a.packager
	} else if !c.SkipPackage {
		if _, err := (iconset.Iconutil{}).LookPath(); err != nil {
			return errors.New("iconutil not found; install the Xcode command line tools with \"xcode-select --install\" or pass -skip-package")
		}
	}

	c.Logf = logger.Writer(stdout)

	if a.watch {
		return iconset.Watch(ctx, c)
	}

	res, err := iconset.Generate(ctx, c)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "✅ Icon generated successfully!")
	fmt.Fprintf(stdout, "   - Iconset: %s\n", c.Iconset)
	if res.Output == "" {
		fmt.Fprintln(stdout, "   - ICNS: skipped")
		return nil
	}
	fmt.Fprintf(stdout, "   - ICNS: %s\n", res.Output)

	icon := filepath.Base(res.Output)
	ok, err := iconset.PlistReferencesIcon(c.Plist, icon)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout)
	if ok {
		fmt.Fprintf(stdout, "Info.plist already references %s\n", icon)
	} else {
		fmt.Fprintf(stdout, "Next: Update Info.plist to reference %s\n", icon)
	}
	return nil
}

// buildConfig merges the configuration file, if any, with flags. Paths are
// left relative; iconset resolves them against the final root.
func (a *app) buildConfig() (*iconset.Config, error) {
	c := new(iconset.Config)
	if a.config != "" {
		var err error
		c, err = iconset.LoadConfig(a.config)
		if err != nil {
			return nil, err
		}
	}

	if a.root != "" {
		c.Root = a.root
	}
	if c.Root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		c.Root = wd
		if root, err := devtools.FindRoot(wd); err == nil {
			c.Root = root
		}
	}
	if a.appDir != "" {
		c.AppDir = a.appDir
	}
	if a.src != "" {
		c.Src = a.src
	}
	if a.minifiedSVG != "" {
		c.MinifiedSVG = a.minifiedSVG
	}
	if a.skipPackage {
		c.SkipPackage = true
	}
	return c, nil
}
