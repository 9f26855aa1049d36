// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Gen-icon generates the macOS app icon from icon.svg.

# Usage

	$ go tool gen-icon [flags]

This tool renders the source image (icon.svg at the repository root by
default) at every size macOS expects, writes the images into
Locate/AppIcon.iconset, and compiles them into Locate/AppIcon.icns.
The iconset directory is recreated on each run.

It requires iconutil, which ships with the Xcode command line tools, to be
installed and available in the system's PATH. Pass -skip-package to only
render the iconset, for example on Linux.

# Configuration

Paths and sizes can be read from a TOML file passed with -config:

	app_dir = "Locate"
	src = "icon.svg"

	[[icon]]
	size = 16
	name = "icon_16x16.png"

Flags take precedence over the file. Relative paths, whether they come
from flags or from the file, are resolved against the project root, so
-root moves every path the file names along with it. A relative root in
the file is resolved against the directory containing the file.

# Watch mode

With -watch, the icon is regenerated each time the source image changes,
until the tool is interrupted.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
