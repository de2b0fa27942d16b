package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"k8s.io/klog/v2"
)

// debouncer coalesces bursts of trigger calls into one signal on C, sent
// once no trigger has arrived for delay.
type debouncer struct {
	delay time.Duration
	C     chan struct{}

	mu    sync.Mutex
	timer *time.Timer
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{delay: delay, C: make(chan struct{}, 1)}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	select {
	case d.C <- struct{}{}:
	default:
	}
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

// watchFiles calls render once, then again after every debounced change to
// one of paths, until ctx is done. Parent directories are watched so that
// editors which save by renaming a temp file over the original are seen.
func watchFiles(ctx context.Context, paths []string, delay time.Duration, render func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	targets := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		clean := filepath.Clean(p)
		targets[clean] = true
		dir := filepath.Dir(clean)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		dirs[dir] = true
		klog.V(1).Infof("watching %s", dir)
	}

	if err := render(); err != nil {
		klog.Errorf("render: %v", err)
	}
	d := newDebouncer(delay)
	defer d.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(ev.Name)] {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			klog.V(2).Infof("watch event %s", ev)
			d.trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			klog.Warningf("watch: %v", err)
		case <-d.C:
			klog.V(1).Info("input changed, re-rendering")
			if err := render(); err != nil {
				klog.Errorf("render: %v", err)
			}
		}
	}
}
