package storage

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/LuckyTW/ppt-creator/internal/infra/logger"
	"github.com/LuckyTW/ppt-creator/internal/infra/metrics"
	"github.com/LuckyTW/ppt-creator/pkg/errors"
	"github.com/LuckyTW/ppt-creator/pkg/util"
)

const backendLocal = "local"

type localEntry struct {
	path string
	obj  Object
}

// Local keeps blobs as files under basePath with an in-memory index.
type Local struct {
	basePath string
	opts     options
	logger   *logger.Logger

	mu      sync.Mutex
	entries map[string]localEntry
}

func NewLocal(basePath string, log *logger.Logger, opts ...Option) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to create storage directory")
	}
	return &Local{
		basePath: basePath,
		opts:     buildOptions(opts),
		logger:   logger.OrNop(log),
		entries:  make(map[string]localEntry),
	}, nil
}

func (s *Local) Put(ctx context.Context, data []byte, name string) (*Object, error) {
	id := util.NewID()
	path := filepath.Join(s.basePath, id+detectExtension(name, data))

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to write file")
	}

	now := s.opts.now()
	obj := Object{
		ID:        id,
		Name:      name,
		CreatedAt: now,
		ExpiresAt: now.Add(s.opts.retention),
	}

	s.mu.Lock()
	s.entries[id] = localEntry{path: path, obj: obj}
	s.mu.Unlock()

	metrics.IncStorage(backendLocal, "put")
	s.logger.Info("saved file locally", "id", id, "path", path, "size", len(data))

	obj.Data = data
	return &obj, nil
}

func (s *Local) Get(ctx context.Context, id string) (*Object, error) {
	s.mu.Lock()
	entry, ok := s.entries[id]
	if ok && !s.opts.now().Before(entry.obj.ExpiresAt) {
		delete(s.entries, id)
		s.mu.Unlock()
		s.remove(entry.path)
		metrics.IncStorage(backendLocal, "expire")
		metrics.IncStorage(backendLocal, "miss")
		return nil, notFound(id)
	}
	s.mu.Unlock()

	if !ok {
		metrics.IncStorage(backendLocal, "miss")
		return nil, notFound(id)
	}

	data, err := os.ReadFile(entry.path)
	if err != nil {
		if os.IsNotExist(err) {
			metrics.IncStorage(backendLocal, "miss")
			return nil, notFound(id)
		}
		return nil, errors.Wrap(err, errors.ErrCodeStorage, "failed to read file")
	}

	metrics.IncStorage(backendLocal, "get")
	obj := entry.obj
	obj.Data = data
	return &obj, nil
}

func (s *Local) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	entry, ok := s.entries[id]
	delete(s.entries, id)
	s.mu.Unlock()

	if ok {
		s.remove(entry.path)
	}
	return nil
}

// Sweep removes every expired entry and returns how many it removed.
func (s *Local) Sweep(ctx context.Context) (int, error) {
	now := s.opts.now()

	var expired []localEntry
	s.mu.Lock()
	for id, entry := range s.entries {
		if !now.Before(entry.obj.ExpiresAt) {
			expired = append(expired, entry)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, entry := range expired {
		s.remove(entry.path)
		metrics.IncStorage(backendLocal, "expire")
	}
	return len(expired), nil
}

func (s *Local) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove stored file", "path", path, "error", err)
	}
}

// detectExtension prefers the extension of name and falls back to sniffing
// the content.
func detectExtension(name string, data []byte) string {
	if ext := filepath.Ext(name); ext != "" && len(ext) <= 10 {
		return ext
	}
	if len(data) < 4 {
		return ".bin"
	}
	// PPTX (ZIP)
	if data[0] == 0x50 && data[1] == 0x4B {
		return ".pptx"
	}
	return ".bin"
}
