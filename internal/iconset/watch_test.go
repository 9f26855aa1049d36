// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestWatch(t *testing.T) {
	root := newRoot(t)
	src := filepath.Join(root, "icon.svg")

	ready := make(chan struct{})
	watchReadyHook = func() { close(ready) }
	regenerated := make(chan error, 10)
	regenerateHook = func(err error) { regenerated <- err }
	t.Cleanup(func() {
		watchReadyHook = nil
		regenerateHook = nil
	})

	var wg sync.WaitGroup
	errCh := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := Watch(ctx, &Config{Root: root, SkipPackage: true}); err != nil {
			errCh <- err
		}
	}()

	// Wait until the watcher is ready.
	select {
	case err := <-errCh:
		t.Fatalf("Watch failed during startup: %v", err)
	case <-ready:
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for Watch to start")
	}

	iconsetDir := filepath.Join(root, "Locate", "AppIcon.iconset")
	if got := len(listDir(t, iconsetDir)); got != len(Icons()) {
		t.Fatalf("initial generation: want %d files, got %d", len(Icons()), got)
	}

	// Leave a stale file behind, then touch the source.
	stale := filepath.Join(iconsetDir, "stale.png")
	if err := os.WriteFile(stale, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	updated := strings.Replace(string(b), "#2f6feb", "#e5534b", 1)
	if err := os.WriteFile(src, []byte(updated), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-regenerated:
		if err != nil {
			t.Fatalf("regeneration failed: %v", err)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for regeneration")
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale file survived regeneration: %v", err)
	}
	if got := len(listDir(t, iconsetDir)); got != len(Icons()) {
		t.Fatalf("after regeneration: want %d files, got %d", len(Icons()), got)
	}

	// Try to gracefully stop watching.
	cancel()
	wg.Wait()
	select {
	case err := <-errCh:
		t.Fatalf("Watch failed during shutdown: %v", err)
	default:
	}
}

func TestWatchWaitsForRegeneration(t *testing.T) {
	root := newRoot(t)
	src := filepath.Join(root, "icon.svg")

	ready := make(chan struct{})
	watchReadyHook = func() { close(ready) }
	regenerating := make(chan struct{}, 10)
	release := make(chan struct{})
	regenerateHook = func(error) {
		regenerating <- struct{}{}
		<-release
	}
	t.Cleanup(func() {
		watchReadyHook = nil
		regenerateHook = nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, &Config{Root: root, SkipPackage: true})
	}()

	select {
	case <-ready:
	case err := <-done:
		t.Fatalf("Watch returned during startup: %v", err)
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for Watch to start")
	}

	b, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, b, 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-regenerating:
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for regeneration")
	}

	// Regeneration is blocked in the hook; Watch must not return yet.
	cancel()
	select {
	case err := <-done:
		t.Fatalf("Watch returned during regeneration: %v", err)
	case <-time.After(200 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for Watch to return")
	}
}

func TestShouldRegenerate(t *testing.T) {
	src := filepath.Join(string(filepath.Separator)+"project", "icon.svg")

	cases := map[string]struct {
		path string
		op   fsnotify.Op
		want bool
	}{
		"source write":       {src, fsnotify.Write, true},
		"source create":      {src, fsnotify.Create, true},
		"source chmod":       {src, fsnotify.Chmod, false},
		"source remove":      {src, fsnotify.Remove, false},
		"source rename":      {src, fsnotify.Rename, false},
		"other file":         {filepath.Join(filepath.Dir(src), "README.md"), fsnotify.Write, false},
		"vim swap file":      {src + ".swp", fsnotify.Write, false},
		"vim backup file":    {src + "~", fsnotify.Create, false},
		"unclean path write": {filepath.Join(filepath.Dir(src), ".", "icon.svg"), fsnotify.Write, true},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			got := shouldRegenerate(src, tc.path, tc.op)
			if got != tc.want {
				t.Fatalf("shouldRegenerate(%q, %q, %+v): want %v, got %v", src, tc.path, tc.op, tc.want, got)
			}
		})
	}
}
