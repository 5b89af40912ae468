package config

import (
	"context"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"filegrip/internal/eventbus"
)

// Watch publishes a ConfigChangedEvent whenever the config file is rewritten
// on disk, so a dark-mode edit made outside the running client takes effect
// without a restart. Blocks until ctx is cancelled; run it in a goroutine.
func Watch(ctx context.Context, svc ConfigService, bus eventbus.EventBus) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory, not the file: editors replace files on save and
	// the watch would otherwise die with the old inode.
	if err := watcher.Add(filepath.Dir(svc.Path())); err != nil {
		return err
	}

	target := filepath.Base(svc.Path())
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			cfg, err := svc.LoadFromPath(svc.Path())
			if err != nil {
				log.Printf("config: reloading after change: %v", err)
				continue
			}
			bus.Publish(eventbus.ConfigChangedEvent{DarkMode: cfg.DarkMode})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config: watcher: %v", err)

		case <-ctx.Done():
			return nil
		}
	}
}
