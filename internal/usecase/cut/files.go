package cut

import (
	"context"

	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/metrics"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/storage"
)

// FileRemover apaga os arquivos de fotos cujos registros já foram removidos.
// Falhas são logadas e ignoradas.
type FileRemover struct {
	store storage.Store
}

func NewFileRemover(store storage.Store) *FileRemover {
	return &FileRemover{store: store}
}

func (r *FileRemover) Remove(ctx context.Context, photos []models.CutPhoto, reason string) {
	for _, p := range photos {
		r.removeURL(ctx, p.Path)
		r.removeURL(ctx, p.ThumbPath)
		metrics.PhotosDeletedTotal.WithLabelValues(reason).Inc()
	}
}

func (r *FileRemover) removeURL(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := r.store.Remove(ctx, url); err != nil {
		log := logger.Get()
		log.Warn().Err(err).Str("path", url).Msg("failed to remove photo file")
	}
}
