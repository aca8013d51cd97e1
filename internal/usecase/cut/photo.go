package cut

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/cut"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/imaging"
	"github.com/BruksfildServices01/barbershop-manager/internal/logger"
	"github.com/BruksfildServices01/barbershop-manager/internal/metrics"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
	"github.com/BruksfildServices01/barbershop-manager/internal/storage"
)

// ======================================================
// ADD PHOTO
// ======================================================

type AddPhotoInput struct {
	ActorID uint
	CutID   uint

	FileName    string
	ContentType string
	Body        io.Reader
}

type AddPhoto struct {
	repo  domain.Repository
	store storage.Store
	files *FileRemover
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewAddPhoto(
	repo domain.Repository,
	store storage.Store,
	files *FileRemover,
	audit *audit.Dispatcher,
) *AddPhoto {
	return &AddPhoto{
		repo:  repo,
		store: store,
		files: files,
		audit: audit,
		now:   time.Now,
	}
}

func (uc *AddPhoto) Execute(ctx context.Context, in AddPhotoInput) (*models.CutPhoto, error) {
	if in.Body == nil {
		return nil, httperr.ErrBusiness("missing_photo")
	}

	if _, err := uc.repo.GetCut(ctx, in.CutID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("cut_not_found")
		}
		return nil, err
	}

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	name := storage.FileName(in.FileName, uc.now())
	path, err := uc.store.Save(ctx, name, bytes.NewReader(data), in.ContentType)
	if err != nil {
		return nil, err
	}

	photo := &models.CutPhoto{Path: path, CutID: in.CutID}

	// uploads que não são imagem, ou grandes demais para decodificar, ficam sem miniatura
	thumb, err := imaging.Thumbnail(data, imaging.DefaultMaxSide)
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		log := logger.Get()
		log.Warn().Str("path", path).Msg("image too large for thumbnail")
	case err == nil:
		thumbPath, err := uc.store.Save(ctx, storage.ThumbName(name), bytes.NewReader(thumb), "image/webp")
		if err != nil {
			log := logger.Get()
			log.Warn().Err(err).Str("path", path).Msg("failed to store thumbnail")
		} else {
			photo.ThumbPath = thumbPath
		}
	}

	if err := uc.repo.CreatePhoto(ctx, photo); err != nil {
		uc.files.removeURL(ctx, photo.Path)
		uc.files.removeURL(ctx, photo.ThumbPath)
		return nil, err
	}

	metrics.PhotosUploadedTotal.Inc()
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "photo_uploaded",
		Entity:   "cut_photo",
		EntityID: &photo.ID,
		Metadata: map[string]any{"cutId": in.CutID, "path": photo.Path},
	})

	return photo, nil
}

// ======================================================
// DELETE PHOTO
// ======================================================

type DeletePhoto struct {
	repo  domain.Repository
	files *FileRemover
	audit *audit.Dispatcher
}

func NewDeletePhoto(repo domain.Repository, files *FileRemover, audit *audit.Dispatcher) *DeletePhoto {
	return &DeletePhoto{repo: repo, files: files, audit: audit}
}

func (uc *DeletePhoto) Execute(ctx context.Context, actorID, cutID, photoID uint) error {
	photo, err := uc.repo.GetPhoto(ctx, cutID, photoID)
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrBusiness("photo_not_found")
	}
	if err != nil {
		return err
	}

	uc.files.Remove(ctx, []models.CutPhoto{*photo}, "photo")

	if err := uc.repo.DeletePhoto(ctx, photo.ID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return httperr.ErrBusiness("photo_not_found")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "photo_deleted",
		Entity:   "cut_photo",
		EntityID: &photo.ID,
		Metadata: map[string]any{"cutId": cutID},
	})
	return nil
}
