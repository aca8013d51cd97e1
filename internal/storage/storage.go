// Package storage guarda os arquivos das fotos dos cortes, em disco ou num bucket S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
)

// Store grava um arquivo e devolve a URL pela qual ele é servido.
// Remove recebe essa mesma URL; arquivo inexistente não é erro.
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) (string, error)
	Remove(ctx context.Context, url string) error
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName monta "<unix-nanos>-<nome>" com espaços trocados por "_".
func FileName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "photo"
	}
	base = whitespace.ReplaceAllString(base, "_")
	return fmt.Sprintf("%d-%s", now.UnixNano(), base)
}

// ThumbName deriva o nome da miniatura WebP de um arquivo salvo.
func ThumbName(name string) string {
	return "thumb-" + strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
}

func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocalStore(cfg.UploadsDir, cfg.URLPrefix)
	case "s3":
		return NewS3Store(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Driver)
	}
}
