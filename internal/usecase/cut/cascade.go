package cut

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/cut"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
)

// DeleteClient remove o cliente junto com os cortes e fotos dele.
type DeleteClient struct {
	repo  domain.Repository
	files *FileRemover
	audit *audit.Dispatcher
}

func NewDeleteClient(repo domain.Repository, files *FileRemover, audit *audit.Dispatcher) *DeleteClient {
	return &DeleteClient{repo: repo, files: files, audit: audit}
}

func (uc *DeleteClient) Execute(ctx context.Context, actorID, clientID uint) (int64, error) {
	photos, err := uc.repo.DeleteClientCascade(ctx, clientID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, httperr.ErrBusiness("client_not_found")
	}
	if err != nil {
		return 0, err
	}

	uc.files.Remove(ctx, photos, "cascade")
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &clientID,
		Metadata: map[string]any{"photos": len(photos)},
	})
	return 1, nil
}

// DeleteBarber remove o barbeiro junto com os cortes e fotos dele.
type DeleteBarber struct {
	repo  domain.Repository
	files *FileRemover
	audit *audit.Dispatcher
}

func NewDeleteBarber(repo domain.Repository, files *FileRemover, audit *audit.Dispatcher) *DeleteBarber {
	return &DeleteBarber{repo: repo, files: files, audit: audit}
}

func (uc *DeleteBarber) Execute(ctx context.Context, actorID, barberID uint) (int64, error) {
	photos, err := uc.repo.DeleteBarberCascade(ctx, barberID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, httperr.ErrBusiness("barber_not_found")
	}
	if err != nil {
		return 0, err
	}

	uc.files.Remove(ctx, photos, "cascade")
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "barber_deleted",
		Entity:   "barber",
		EntityID: &barberID,
		Metadata: map[string]any{"photos": len(photos)},
	})
	return 1, nil
}
