package content

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events editors emit on save.
const reloadDebounce = 250 * time.Millisecond

// Store holds the active catalogue and swaps it atomically on reload.
type Store struct {
	mu      sync.RWMutex
	catalog *Catalog
	// forced default variant, reapplied on every reload
	defaultKey string
}

// NewStore creates a store serving catalog.
func NewStore(catalog *Catalog) *Store {
	return &Store{catalog: catalog}
}

// Catalog returns the active catalogue.
func (s *Store) Catalog() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Variant returns the content for key, or the default when key is empty.
func (s *Store) Variant(key string) (*Content, bool) {
	return s.Catalog().Variant(key)
}

// Default returns the default variant.
func (s *Store) Default() *Content {
	return s.Catalog().Default()
}

// ForceDefault makes key the default variant of the active catalogue and of
// every catalogue loaded by ReloadFile.
func (s *Store) ForceDefault(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.catalog.SetDefault(key); err != nil {
		return err
	}
	s.defaultKey = key
	return nil
}

// Replace swaps in a new catalogue.
func (s *Store) Replace(c *Catalog) {
	s.mu.Lock()
	s.catalog = c
	s.mu.Unlock()
}

// ReloadFile loads path and swaps it in. On error the current catalogue
// stays active.
func (s *Store) ReloadFile(path string) error {
	c, err := LoadFile(path)
	if err != nil {
		return err
	}

	s.mu.RLock()
	defaultKey := s.defaultKey
	s.mu.RUnlock()
	if defaultKey != "" {
		if err := c.SetDefault(defaultKey); err != nil {
			return err
		}
	}
	s.Replace(c)
	return nil
}

// Watch reloads path whenever it changes until ctx is cancelled. The parent
// directory is watched so that editors which replace the file on save are
// picked up too.
func (s *Store) Watch(ctx context.Context, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create content watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Printf("[INFO] Watching content file %s for changes", path)

	target := filepath.Clean(path)
	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(reloadDebounce)
			} else {
				timer.Reset(reloadDebounce)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			if err := s.ReloadFile(path); err != nil {
				log.Printf("[WARNING] Content reload failed, keeping previous content: %v", err)
				continue
			}
			log.Printf("[INFO] Content reloaded from %s", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("[WARNING] Content watcher error: %v", err)
		}
	}
}
