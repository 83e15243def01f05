package uploads

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
)

const MaxSize = 16 * 1024 * 1024

// Store keeps uploaded images under generated keys.
type Store interface {
	Save(ctx context.Context, name string, content io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
	URL(key string) string
}

type Backend string

const (
	BackendLocal Backend = "local"
	BackendS3    Backend = "s3"
)

type Config struct {
	Backend   Backend  `toml:"backend"`
	LocalPath string   `toml:"local_path"`
	S3        S3Config `toml:"s3"`
}

type S3Config struct {
	Bucket        string `toml:"bucket"`
	Region        string `toml:"region"`
	PublicBaseURL string `toml:"public_base_url"`
}

var allowedExtensions = mapset.NewSet("png", "jpg", "jpeg", "gif")

// Allowed reports whether the file name has one of the accepted image extensions.
func Allowed(name string) bool {
	return allowedExtensions.Contains(extension(name))
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	name = unsafeChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	if name == "" {
		return "upload"
	}
	return name
}

// newKey builds a collision free key that keeps the original extension.
func newKey(name string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s",
		now.Format("20060102_150405"),
		uuid.NewString()[:8],
		sanitizeFilename(name),
	)
}

func New(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		return NewLocal(cfg.LocalPath)
	case BackendS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Backend)
	}
}
