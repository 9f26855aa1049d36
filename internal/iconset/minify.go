// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

const svgMediaType = "image/svg+xml"

type minifier struct {
	m *minify.M
}

func newMinifier() *minifier {
	m := minify.New()
	m.AddFunc(svgMediaType, svg.Minify)
	return &minifier{m: m}
}

func (m *minifier) Bytes(mediaType string, b []byte) ([]byte, error) {
	return m.m.Bytes(mediaType, b)
}

// MinifySVG writes a minified copy of the SVG file src to dst, creating
// parent directories of dst as needed.
func MinifySVG(src, dst string) error {
	if ext := strings.ToLower(filepath.Ext(src)); ext != ".svg" {
		return fmt.Errorf("%w: can't minify %q", errUnsupportedFormat, ext)
	}

	b, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	mb, err := newMinifier().Bytes(svgMediaType, b)
	if err != nil {
		return fmt.Errorf("minifying %s: %w", src, err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, mb, 0o644)
}
