// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlistReferencesIcon reports whether the CFBundleIconFile entry of the
// Info.plist at path names icon. The .icns extension is optional on both
// sides. A missing plist references nothing.
func PlistReferencesIcon(path, icon string) (bool, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return false, err
	}

	want := strings.TrimSuffix(filepath.Base(icon), ".icns")
	var found bool
	doc.Find("key").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.TrimSpace(s.Text()) != "CFBundleIconFile" {
			return true
		}
		val := strings.TrimSpace(s.NextFiltered("string").Text())
		found = strings.TrimSuffix(val, ".icns") == want
		return false
	})
	return found, nil
}
