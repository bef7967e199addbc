package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"breathbot/config"
)

// Store persists the progress document. Save always writes the full document.
type Store interface {
	Load(ctx context.Context) (State, error)
	Save(ctx context.Context, s State) error
	Describe() string
}

// Open builds the store selected by cfg.Backend. The returned close func
// releases any client connection and is never nil.
func Open(ctx context.Context, cfg config.StateConfig, logger *slog.Logger) (Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Backend {
	case config.StateFile, "":
		return NewFileStore(cfg.Path), noop, nil

	case config.StateS3:
		client, err := NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, noop, fmt.Errorf("create s3 client: %w", err)
		}
		logger.Info("☁️ Using S3 progress store", "bucket", cfg.S3.Bucket, "key", cfg.S3.Key)
		return NewS3Store(client, cfg.S3.Bucket, cfg.S3.Key), noop, nil

	case config.StateRedis:
		client, err := NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, noop, err
		}
		logger.Info("🗄️ Using redis progress store", "addr", cfg.Redis.Addr, "key", cfg.Redis.Key)
		return NewRedisStore(client, cfg.Redis.Key), client.Close, nil

	default:
		return nil, noop, fmt.Errorf("%w: unknown state backend %q", config.ErrInvalidConfig, cfg.Backend)
	}
}

func decode(data []byte) (State, error) {
	if len(data) == 0 {
		return NewState(), nil
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	if s == nil {
		s = NewState()
	}
	return s, nil
}

func encode(s State) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return data, nil
}

// FileStore keeps progress in a local JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Describe() string { return "file:" + f.path }

// Load returns an empty document when the file does not exist yet.
func (f *FileStore) Load(_ context.Context) (State, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return NewState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read progress file: %w", err)
	}
	return decode(data)
}

// Save writes to a temp file beside the target and renames it into place.
func (f *FileStore) Save(_ context.Context, s State) error {
	data, err := encode(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp progress file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write progress file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close progress file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace progress file: %w", err)
	}
	return nil
}
