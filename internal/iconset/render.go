// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

// source is a decoded source image that can be rendered at any size.
type source interface {
	render(size int) image.Image
}

func loadSource(path string) (source, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".svg":
		icon, err := oksvg.ReadIconStream(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
			return nil, fmt.Errorf("%s: %w", path, errNoViewBox)
		}
		return &svgSource{icon: icon}, nil
	case ".png":
		img, err := png.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return &rasterSource{img: img}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnsupportedFormat, ext)
	}
}

type svgSource struct {
	icon *oksvg.SvgIcon
}

func (s *svgSource) render(size int) image.Image {
	// SetTarget replaces the transform left by the previous render.
	s.icon.SetTarget(0, 0, float64(size), float64(size))
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	s.icon.Draw(raster, 1.0)
	return img
}

type rasterSource struct {
	img image.Image
}

func (s *rasterSource) render(size int) image.Image {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Rect, s.img, s.img.Bounds(), draw.Src, nil)
	return dst
}

var encoder = &png.Encoder{CompressionLevel: png.BestCompression}

// renderIcon renders src at size×size and writes it as PNG to path. It
// returns the number of bytes written.
func renderIcon(src source, size int, path string) (int, error) {
	var buf bytes.Buffer
	if err := encoder.Encode(&buf, src.render(size)); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, err
	}
	return buf.Len(), nil
}
