// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Addcopyright adds copyright header to each Go file.
package main

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.astrophena.name/iconset/internal/devtools"
)

const (
	template = `// © %d Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

`
	header = `// ©`
)

// skipDirs are not walked: testdata holds fixtures and _examples is
// reference material.
var skipDirs = []string{
	"testdata",
	"_examples",
}

func main() {
	devtools.EnsureRoot()

	if err := filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		updated, ok := addHeader(content, info.ModTime().Year())
		if !ok {
			return nil
		}
		return os.WriteFile(path, updated, 0o644)
	}); err != nil {
		log.Fatal(err)
	}
}

func shouldSkipDir(name string) bool {
	for _, dir := range skipDirs {
		if name == dir {
			return true
		}
	}
	return strings.HasPrefix(name, ".") && name != "."
}

// addHeader prepends the copyright header for year to content. It returns
// false if content already has a header.
func addHeader(content []byte, year int) ([]byte, bool) {
	if bytes.HasPrefix(content, []byte(header)) {
		return nil, false
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, template, year)
	buf.Write(content)
	return buf.Bytes(), true
}
