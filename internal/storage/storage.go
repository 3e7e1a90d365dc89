package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nikbrunner/shelf/internal/config"
	"github.com/nikbrunner/shelf/internal/logger"
)

// Well-known keys.
const (
	KeyBookmarks = "bookmarks"
	KeyTheme     = "theme"
)

// ErrInvalidKey is returned for keys that cannot be stored.
var ErrInvalidKey = errors.New("invalid storage key")

// Adapter persists string values under string keys.
// Load reports found=false for a key that was never saved.
type Adapter interface {
	Load(ctx context.Context, key string) (value string, found bool, err error)
	Save(ctx context.Context, key, value string) error
}

// Backend is an Adapter that holds resources.
type Backend interface {
	Adapter
	Close() error
}

func validateKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}

// FileStorage stores every key as <dir>/<key>.json.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a FileStorage rooted at dir.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// Dir returns the storage directory.
func (s *FileStorage) Dir() string {
	return s.dir
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// Load reads the value for key.
// A missing file is not an error.
func (s *FileStorage) Load(_ context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	return string(data), true, nil
}

// Save writes the value for key.
// Creates the directory if it doesn't exist and replaces the file atomically.
func (s *FileStorage) Save(_ context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+key+"-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), s.path(key))
}

// Close is a no-op.
func (s *FileStorage) Close() error { return nil }

// MemoryStorage keeps values in a map. Used for tests and ephemeral sessions.
type MemoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string]string)}
}

func (s *MemoryStorage) Load(_ context.Context, key string) (string, bool, error) {
	if err := validateKey(key); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *MemoryStorage) Save(_ context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *MemoryStorage) Close() error { return nil }

// Open returns the backend selected by cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig, log logger.Logger) (Backend, error) {
	switch cfg.Backend {
	case "", "file":
		log.Debug("using file storage", logger.String("dir", cfg.Dir))
		return NewFileStorage(cfg.Dir), nil
	case "sqlite":
		log.Debug("using sqlite storage", logger.String("path", cfg.SQLitePath))
		s, err := NewSQLiteStorage(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return s, nil
	case "redis":
		s, err := NewRedisStorage(ctx, RedisOptions{
			Addr:           cfg.Redis.Addr,
			User:           cfg.Redis.Username,
			Password:       cfg.Redis.Password,
			DB:             cfg.Redis.DB,
			Prefix:         cfg.Redis.Prefix,
			DialTimeout:    cfg.Redis.DialTimeout,
			ConnectTimeout: cfg.Redis.ConnectTimeout,
			RetryInterval:  cfg.Redis.RetryInterval,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return s, nil
	case "memory":
		log.Debug("using in-memory storage")
		return NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
