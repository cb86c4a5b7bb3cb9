// Copyright 2026, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the config when one of its env files changes.
type Watcher struct {
	envFiles []string
	files    map[string]bool
	watcher  *fsnotify.Watcher
}

// MakeWatcher starts watching the directories of envFiles, so files that do not
// exist yet are picked up once they are created.
func MakeWatcher(envFiles ...string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	w := &Watcher{envFiles: envFiles, files: make(map[string]bool), watcher: fsWatcher}
	dirs := make(map[string]bool)
	for _, fileName := range envFiles {
		absName, err := filepath.Abs(fileName)
		if err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("bad env file name %q: %w", fileName, err)
		}
		w.files[absName] = true
		dirs[filepath.Dir(absName)] = true
	}
	for dir := range dirs {
		if err := fsWatcher.Add(dir); err != nil {
			fsWatcher.Close()
			return nil, fmt.Errorf("cannot watch %s: %w", dir, err)
		}
	}
	return w, nil
}

func (w *Watcher) isWatched(name string) bool {
	absName, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return w.files[absName]
}

// Run calls onChange with the reloaded config after every change, until ctx is
// done.  Configs that fail to load are logged and skipped.
func (w *Watcher) Run(ctx context.Context, onChange func(*Config)) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !w.isWatched(event.Name) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			cfg, err := Load(w.envFiles...)
			if err != nil {
				log.Printf("config reload failed (%s): %v\n", event.Name, err)
				continue
			}
			onChange(cfg)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("config watcher error: %v\n", err)
		}
	}
}
