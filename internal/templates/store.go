package templates

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ErrTemplateNotFound is returned when no template exists for an app and name
var ErrTemplateNotFound = errors.New("template not found")

const (
	// PartialsDir holds partials shared by every app
	PartialsDir = "partials"

	templateExt = ".hbs"
)

// Store holds template sources loaded from <dir>/<app>/<name>.hbs
type Store struct {
	dir       string
	logger    *zap.Logger
	mu        sync.RWMutex
	templates map[string]map[string]string
	partials  map[string]string
}

// NewStore creates a store for the given directory. Call Load before use.
func NewStore(dir string, logger *zap.Logger) *Store {
	return &Store{
		dir:       dir,
		logger:    logger,
		templates: make(map[string]map[string]string),
		partials:  make(map[string]string),
	}
}

// Load reads every template and partial from disk and replaces the current set
func (s *Store) Load() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("failed to read template dir: %w", err)
	}

	templates := make(map[string]map[string]string)
	partials := make(map[string]string)
	count := 0

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sources, err := readTemplates(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			return err
		}
		if entry.Name() == PartialsDir {
			partials = sources
			continue
		}
		templates[entry.Name()] = sources
		count += len(sources)
	}

	s.mu.Lock()
	s.templates = templates
	s.partials = partials
	s.mu.Unlock()

	s.logger.Info("templates loaded",
		zap.String("dir", s.dir),
		zap.Int("apps", len(templates)),
		zap.Int("templates", count),
		zap.Int("partials", len(partials)),
	)

	return nil
}

// readTemplates reads the .hbs files of one directory keyed by base name
func readTemplates(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	sources := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != templateExt {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}
		sources[strings.TrimSuffix(entry.Name(), templateExt)] = string(data)
	}
	return sources, nil
}

// Get returns the source of a template
func (s *Store) Get(app, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src, ok := s.templates[app][name]
	if !ok {
		return "", fmt.Errorf("%w: %s/%s", ErrTemplateNotFound, app, name)
	}
	return src, nil
}

// Partials returns a copy of the shared partials
func (s *Store) Partials() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]string, len(s.partials))
	for name, src := range s.partials {
		out[name] = src
	}
	return out
}

// Apps returns the app names that have templates
func (s *Store) Apps() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return sortedKeys(s.templates)
}

// Walk calls fn for every template in app and name order and stops at the first error
func (s *Store) Walk(fn func(app, name, src string) error) error {
	s.mu.RLock()
	templates := s.templates
	s.mu.RUnlock()

	for _, app := range sortedKeys(templates) {
		for _, name := range sortedKeys(templates[app]) {
			if err := fn(app, name, templates[app][name]); err != nil {
				return err
			}
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Watch reloads the store whenever a template file changes and then calls onReload.
// It returns once the watcher is running; watching stops when ctx is done.
func (s *Store) Watch(ctx context.Context, onReload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	dirs := []string{s.dir}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		watcher.Close()
		return fmt.Errorf("failed to read template dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(s.dir, entry.Name()))
		}
	}
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
	}

	s.logger.Info("watching templates", zap.String("dir", s.dir))

	go s.watchLoop(ctx, watcher, onReload)
	return nil
}

func (s *Store) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, onReload func()) {
	defer watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}

			// New app directories need their own watch. A directory moved in
			// already holds templates, so it is loaded right away.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						s.logger.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
					}
					s.reload(onReload)
					continue
				}
			}

			if filepath.Ext(event.Name) != templateExt {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			s.reload(onReload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("template watcher error", zap.Error(err))
		}
	}
}

func (s *Store) reload(onReload func()) {
	if err := s.Load(); err != nil {
		s.logger.Error("failed to reload templates", zap.Error(err))
		return
	}
	if onReload != nil {
		onReload()
	}
}
