// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

var errUnknownKeys = errors.New("unknown configuration keys")

type fileConfig struct {
	Root        string `toml:"root"`
	AppDir      string `toml:"app_dir"`
	Src         string `toml:"src"`
	Iconset     string `toml:"iconset"`
	Output      string `toml:"output"`
	Plist       string `toml:"plist"`
	MinifiedSVG string `toml:"minified_svg"`
	SkipPackage bool   `toml:"skip_package"`
	Icons       []Icon `toml:"icon"`
}

// LoadConfig reads a [Config] from the TOML file at path:
//
//	root = "."
//	app_dir = "Locate"
//	src = "icon.svg"
//	skip_package = false
//
//	[[icon]]
//	size = 16
//	name = "icon_16x16.png"
//
// A relative root is resolved against the directory of the file. Other
// paths are kept as written and resolved against the root when the
// configuration is used, so replacing Root moves them along. If any [[icon]] tables are
// present, they replace the default sizes entirely.
func LoadConfig(path string) (*Config, error) {
	var fc fileConfig
	md, err := toml.DecodeFile(path, &fc)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: %s", path, errUnknownKeys, strings.Join(keys, ", "))
	}
	if err := validateIcons(fc.Icons); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	root := fc.Root
	if !filepath.IsAbs(root) {
		root = filepath.Join(filepath.Dir(path), root)
	}

	return &Config{
		Root:        root,
		AppDir:      fc.AppDir,
		Src:         fc.Src,
		Iconset:     fc.Iconset,
		Output:      fc.Output,
		Plist:       fc.Plist,
		MinifiedSVG: fc.MinifiedSVG,
		SkipPackage: fc.SkipPackage,
		Icons:       fc.Icons,
	}, nil
}
