package catalogue

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync/atomic"

	"github.com/hyperjump/courtfinder/internal/config"
	"github.com/hyperjump/courtfinder/internal/models"
	"github.com/hyperjump/courtfinder/internal/watcher"
	"go.uber.org/zap"
)

// ErrNotWatchable is returned by Watch when the store has no on-disk directory.
var ErrNotWatchable = errors.New("catalogue has no directory to watch")

// Store publishes the current Catalogue. Readers always get a complete
// snapshot; Reload swaps in a new one without touching the old.
type Store struct {
	source  fs.FS
	dir     string
	current atomic.Pointer[Catalogue]
	logger  *zap.Logger
}

// NewStore loads the catalogue from source. dir is the on-disk directory
// behind source, or "" when there is none (e.g. the embedded sample).
func NewStore(source fs.FS, dir string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{source: source, dir: dir, logger: logger}
	cat, err := Load(source)
	if err != nil {
		return nil, err
	}
	s.current.Store(cat)
	return s, nil
}

// Open returns a store for cfg: the directory at cfg.Path, or the built-in
// sample catalogue when Path is empty.
func Open(cfg config.CatalogueConfig, logger *zap.Logger) (*Store, error) {
	if cfg.Path == "" {
		return NewStore(SampleFS(), "", logger)
	}
	return NewStore(os.DirFS(cfg.Path), cfg.Path, logger)
}

// Current returns the catalogue snapshot in use.
func (s *Store) Current() *Catalogue {
	return s.current.Load()
}

// Courts returns the courts of the current snapshot.
func (s *Store) Courts() []models.Court {
	return s.Current().Courts()
}

// Court returns the detail record for slug from the current snapshot.
func (s *Store) Court(slug string) (models.CourtDetail, error) {
	return s.Current().Court(slug)
}

// Reload re-reads the source. On failure the previous snapshot stays in place.
func (s *Store) Reload() error {
	cat, err := Load(s.source)
	if err != nil {
		s.logger.Warn("catalogue reload failed, keeping previous catalogue", zap.Error(err))
		return err
	}
	prev := s.current.Swap(cat)
	s.logger.Info("catalogue reloaded",
		zap.Int("courts", cat.Len()),
		zap.Int("previous_courts", prev.Len()),
	)
	return nil
}

// Watch reloads the catalogue whenever its files change, until ctx is done.
// The returned watcher is already started; callers may Stop it early.
func (s *Store) Watch(ctx context.Context, opts ...watcher.WatcherOption) (*watcher.Watcher, error) {
	if s.dir == "" {
		return nil, ErrNotWatchable
	}
	opts = append([]watcher.WatcherOption{watcher.WithLogger(s.logger)}, opts...)
	w := watcher.NewWatcher(s.dir, Extensions, func(paths []string) {
		s.logger.Debug("catalogue files changed", zap.Strings("paths", paths))
		_ = s.Reload()
	}, opts...)
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	s.logger.Info("watching catalogue", zap.String("dir", s.dir))
	return w, nil
}
