package cut

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

var ErrNotFound = errors.New("not found")

type Filter struct {
	Date    string
	Service string
}

// Repository devolve ErrNotFound quando o registro pedido não existe.
// As remoções em cascata rodam numa transação e devolvem as fotos apagadas,
// cujos arquivos o chamador remove depois do commit.
type Repository interface {
	// -------- References --------
	ClientExists(ctx context.Context, id uint) (bool, error)
	BarberExists(ctx context.Context, id uint) (bool, error)

	// -------- Cut --------
	CreateCut(ctx context.Context, c *models.Cut) error
	GetCut(ctx context.Context, id uint) (*models.Cut, error)
	ListCuts(ctx context.Context, f Filter) ([]models.Cut, error)
	UpdateCut(ctx context.Context, c *models.Cut) error
	DeleteCut(ctx context.Context, id uint) ([]models.CutPhoto, error)

	// -------- Photo --------
	CreatePhoto(ctx context.Context, p *models.CutPhoto) error
	GetPhoto(ctx context.Context, cutID, photoID uint) (*models.CutPhoto, error)
	DeletePhoto(ctx context.Context, photoID uint) error

	// -------- Cascades --------
	DeleteClientCascade(ctx context.Context, clientID uint) ([]models.CutPhoto, error)
	DeleteBarberCascade(ctx context.Context, barberID uint) ([]models.CutPhoto, error)
}
