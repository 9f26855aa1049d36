// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const plistTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>CFBundleExecutable</key>
	<string>Locate</string>
	<key>LSUIElement</key>
	<true/>
	%s
	<key>CFBundleName</key>
	<string>Locate</string>
</dict>
</plist>
`

func TestPlistReferencesIcon(t *testing.T) {
	cases := map[string]struct {
		entry string
		want  bool
	}{
		"with extension": {
			entry: "<key>CFBundleIconFile</key>\n\t<string>AppIcon.icns</string>",
			want:  true,
		},
		"without extension": {
			entry: "<key>CFBundleIconFile</key>\n\t<string>AppIcon</string>",
			want:  true,
		},
		"other icon": {
			entry: "<key>CFBundleIconFile</key>\n\t<string>OldIcon</string>",
			want:  false,
		},
		"no icon key": {
			entry: "",
			want:  false,
		},
		"icon name only": {
			entry: "<key>CFBundleIconName</key>\n\t<string>AppIcon</string>",
			want:  false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "Info.plist")
			if err := os.WriteFile(path, []byte(fmt.Sprintf(plistTemplate, tc.entry)), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := PlistReferencesIcon(path, filepath.Join("Locate", "AppIcon.icns"))
			if err != nil {
				t.Fatal(err)
			}
			if got != tc.want {
				t.Fatalf("PlistReferencesIcon: want %v, got %v", tc.want, got)
			}
		})
	}
}

func TestPlistReferencesIconMissing(t *testing.T) {
	got, err := PlistReferencesIcon(filepath.Join(t.TempDir(), "Info.plist"), "AppIcon.icns")
	if err != nil {
		t.Fatal(err)
	}
	if got {
		t.Fatal("missing plist references the icon")
	}
}
