// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package iconset

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"go.astrophena.name/base/logger"

	"github.com/fsnotify/fsnotify"
)

var (
	watchReadyHook func()      // used in tests, called when Watch started watching
	regenerateHook func(error) // used in tests, called after each regeneration
)

// debouncer delays execution of a function until a specified duration has
// passed without any new events.
type debouncer struct {
	d  time.Duration
	mu sync.Mutex
	f  func()
	t  *time.Timer
}

func newDebouncer(d time.Duration, f func()) *debouncer {
	return &debouncer{
		d: d,
		f: f,
	}
}

// Do schedules a function to be executed.
func (d *debouncer) Do() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}

	d.t = time.AfterFunc(d.d, d.f)
}

// Stop cancels the scheduled execution, if any.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.t != nil {
		d.t.Stop()
	}
}

// Watch generates icons based on the provided [Config], then regenerates
// them each time the source image changes, until ctx is canceled.
// Generation errors are logged and don't stop watching.
func Watch(ctx context.Context, c *Config) error {
	c.setDefaults()

	src, err := filepath.Abs(c.Src)
	if err != nil {
		return err
	}

	logger.Info(ctx, "performing an initial generation")
	if _, err := Generate(ctx, c); err != nil {
		logger.Error(ctx, "initial generation failed", slog.Any("err", err))
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	// Editors often replace files instead of writing to them, so watch the
	// directory.
	if err := watcher.Add(filepath.Dir(src)); err != nil {
		return err
	}

	var (
		mu      sync.Mutex
		stopped bool
	)
	regenerate := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}

		logger.Info(ctx, "source changed, regenerating", slog.String("src", src))
		_, err := Generate(ctx, c)
		if err != nil {
			logger.Error(ctx, "failed to regenerate icons", slog.Any("err", err))
		}
		if regenerateHook != nil {
			regenerateHook(err)
		}
	}
	debouncer := newDebouncer(250*time.Millisecond, regenerate)
	// A regeneration in progress finishes before Watch returns.
	defer func() {
		debouncer.Stop()
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()

	logger.Info(ctx, "started watching for changes", slog.String("src", src))
	if watchReadyHook != nil {
		watchReadyHook()
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "stopped watching")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldRegenerate(src, event.Name, event.Op) {
				debouncer.Do()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error(ctx, "watcher error", slog.Any("err", err))
		}
	}
}

func shouldRegenerate(src, path string, op fsnotify.Op) bool {
	if filepath.Clean(path) != src {
		return false
	}
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write)
}
