package cut

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barbershop-manager/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/cut"
	"github.com/BruksfildServices01/barbershop-manager/internal/httperr"
	"github.com/BruksfildServices01/barbershop-manager/internal/metrics"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

// ======================================================
// CREATE
// ======================================================

type CreateCutInput struct {
	ActorID uint

	ClientID   uint
	BarberID   uint
	Service    string
	Date       string
	Detail     string
	Nota       string
	MetodoPago string
}

type CreateCut struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateCut(repo domain.Repository, audit *audit.Dispatcher) *CreateCut {
	return &CreateCut{repo: repo, audit: audit}
}

func (uc *CreateCut) Execute(ctx context.Context, in CreateCutInput) (*models.Cut, error) {
	if err := assertReferences(ctx, uc.repo, in.ClientID, in.BarberID); err != nil {
		return nil, err
	}

	c := &models.Cut{
		Service:    in.Service,
		Date:       in.Date,
		Detail:     in.Detail,
		Nota:       in.Nota,
		MetodoPago: in.MetodoPago,
		ClientID:   in.ClientID,
		BarberID:   in.BarberID,
	}
	if err := uc.repo.CreateCut(ctx, c); err != nil {
		return nil, err
	}

	metrics.CutsCreatedTotal.WithLabelValues(domain.ServiceLabel(c.Service)).Inc()
	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "cut_created",
		Entity:   "cut",
		EntityID: &c.ID,
		Metadata: map[string]any{"clientId": c.ClientID, "barberId": c.BarberID, "service": c.Service},
	})

	return c, nil
}

// ======================================================
// READ
// ======================================================

type ListCuts struct {
	repo domain.Repository
}

func NewListCuts(repo domain.Repository) *ListCuts {
	return &ListCuts{repo: repo}
}

func (uc *ListCuts) Execute(ctx context.Context, f domain.Filter) ([]models.Cut, error) {
	return uc.repo.ListCuts(ctx, f)
}

type GetCut struct {
	repo domain.Repository
}

func NewGetCut(repo domain.Repository) *GetCut {
	return &GetCut{repo: repo}
}

func (uc *GetCut) Execute(ctx context.Context, id uint) (*models.Cut, error) {
	c, err := uc.repo.GetCut(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.ErrBusiness("cut_not_found")
	}
	return c, err
}

// ======================================================
// UPDATE
// ======================================================

// UpdateCutInput: campos nil ficam como estão.
type UpdateCutInput struct {
	ActorID uint
	ID      uint

	ClientID   *uint
	BarberID   *uint
	Service    *string
	Date       *string
	Detail     *string
	Nota       *string
	MetodoPago *string
}

type UpdateCut struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateCut(repo domain.Repository, audit *audit.Dispatcher) *UpdateCut {
	return &UpdateCut{repo: repo, audit: audit}
}

func (uc *UpdateCut) Execute(ctx context.Context, in UpdateCutInput) (int64, error) {
	c, err := uc.repo.GetCut(ctx, in.ID)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, httperr.ErrBusiness("cut_not_found")
	}
	if err != nil {
		return 0, err
	}

	clientID, barberID := c.ClientID, c.BarberID
	if in.ClientID != nil {
		clientID = *in.ClientID
	}
	if in.BarberID != nil {
		barberID = *in.BarberID
	}
	if clientID != c.ClientID || barberID != c.BarberID {
		if err := assertReferences(ctx, uc.repo, clientID, barberID); err != nil {
			return 0, err
		}
	}

	c.ClientID, c.BarberID = clientID, barberID
	c.Client, c.Barber, c.Photos = nil, nil, nil
	apply(&c.Service, in.Service)
	apply(&c.Date, in.Date)
	apply(&c.Detail, in.Detail)
	apply(&c.Nota, in.Nota)
	apply(&c.MetodoPago, in.MetodoPago)

	if err := uc.repo.UpdateCut(ctx, c); err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "cut_updated",
		Entity:   "cut",
		EntityID: &c.ID,
	})
	return 1, nil
}

func apply(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// ======================================================
// DELETE
// ======================================================

type DeleteCut struct {
	repo  domain.Repository
	files *FileRemover
	audit *audit.Dispatcher
}

func NewDeleteCut(repo domain.Repository, files *FileRemover, audit *audit.Dispatcher) *DeleteCut {
	return &DeleteCut{repo: repo, files: files, audit: audit}
}

func (uc *DeleteCut) Execute(ctx context.Context, actorID, id uint) (int64, error) {
	photos, err := uc.repo.DeleteCut(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return 0, httperr.ErrBusiness("cut_not_found")
	}
	if err != nil {
		return 0, err
	}

	uc.files.Remove(ctx, photos, "cascade")
	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "cut_deleted",
		Entity:   "cut",
		EntityID: &id,
		Metadata: map[string]any{"photos": len(photos)},
	})
	return 1, nil
}

// ======================================================
// HELPERS
// ======================================================

func assertReferences(ctx context.Context, repo domain.Repository, clientID, barberID uint) error {
	ok, err := repo.ClientExists(ctx, clientID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness("unknown_client")
	}

	ok, err = repo.BarberExists(ctx, barberID)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness("unknown_barber")
	}
	return nil
}
