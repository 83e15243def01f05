package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// URLPrefix is where the web server exposes the local upload directory.
const URLPrefix = "/uploads/"

type Local struct {
	basePath string
}

func NewLocal(basePath string) (*Local, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &Local{basePath: basePath}, nil
}

func (l *Local) Dir() string {
	return l.basePath
}

func (l *Local) Save(_ context.Context, name string, content io.Reader, _ string) (string, error) {
	key := newKey(name, time.Now())
	fullPath := filepath.Join(l.basePath, key)
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	_, err = io.Copy(file, content)
	err = errors.Join(err, file.Close())
	if err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("write file: %w", err)
	}
	return key, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(l.basePath, filepath.Base(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (l *Local) URL(key string) string {
	if key == "" {
		return ""
	}
	return URLPrefix + key
}
