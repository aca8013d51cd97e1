package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-manager/internal/db/dbtest"
	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/cut"
	"github.com/BruksfildServices01/barbershop-manager/internal/infra/repository"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

type fixture struct {
	db     *gorm.DB
	repo   *repository.CutGormRepository
	client models.Client
	barber models.Barber
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db := dbtest.New(t)

	f := &fixture{
		db:     db,
		repo:   repository.NewCutGormRepository(db),
		client: models.Client{Name: "Ana"},
		barber: models.Barber{Name: "Juan"},
	}
	require.NoError(t, db.Create(&f.client).Error)
	require.NoError(t, db.Create(&f.barber).Error)
	return f
}

func (f *fixture) cut(t *testing.T, service, date string, photos ...string) models.Cut {
	t.Helper()
	c := models.Cut{Service: service, Date: date, ClientID: f.client.ID, BarberID: f.barber.ID}
	require.NoError(t, f.repo.CreateCut(context.Background(), &c))
	for _, p := range photos {
		require.NoError(t, f.repo.CreatePhoto(context.Background(), &models.CutPhoto{Path: p, CutID: c.ID}))
	}
	return c
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestCut_GetPreloads(t *testing.T) {
	f := setup(t)
	c := f.cut(t, "Corte", "2024-05-01", "/uploads/a.jpg")

	got, err := f.repo.GetCut(context.Background(), c.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", got.Client.Name)
	require.Equal(t, "Juan", got.Barber.Name)
	require.Len(t, got.Photos, 1)

	_, err = f.repo.GetCut(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCut_ListFilters(t *testing.T) {
	f := setup(t)
	f.cut(t, "Corte", "2024-05-01")
	f.cut(t, "Barba", "2024-05-01")
	last := f.cut(t, "Corte", "2024-05-02")

	all, err := f.repo.ListCuts(context.Background(), domain.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, last.ID, all[0].ID)

	byDate, err := f.repo.ListCuts(context.Background(), domain.Filter{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, byDate, 2)

	both, err := f.repo.ListCuts(context.Background(), domain.Filter{Date: "2024-05-01", Service: "Barba"})
	require.NoError(t, err)
	require.Len(t, both, 1)
}

func TestCut_DeleteRemovesPhotos(t *testing.T) {
	f := setup(t)
	c := f.cut(t, "Corte", "2024-05-01", "/uploads/a.jpg", "/uploads/b.jpg")

	photos, err := f.repo.DeleteCut(context.Background(), c.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	require.Zero(t, count(t, f.db, &models.CutPhoto{}))
	require.Zero(t, count(t, f.db, &models.Cut{}))

	_, err = f.repo.DeleteCut(context.Background(), c.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCascade_Barber(t *testing.T) {
	f := setup(t)
	f.cut(t, "Corte", "2024-05-01", "/uploads/a.jpg")
	f.cut(t, "Barba", "2024-05-02", "/uploads/b.jpg", "/uploads/c.jpg")

	other := models.Barber{Name: "Pedro"}
	require.NoError(t, f.db.Create(&other).Error)
	kept := models.Cut{Service: "Corte", Date: "2024-05-03", ClientID: f.client.ID, BarberID: other.ID}
	require.NoError(t, f.repo.CreateCut(context.Background(), &kept))

	photos, err := f.repo.DeleteBarberCascade(context.Background(), f.barber.ID)
	require.NoError(t, err)
	require.Len(t, photos, 3)

	require.Equal(t, int64(1), count(t, f.db, &models.Cut{}))
	require.Zero(t, count(t, f.db, &models.CutPhoto{}))
	require.Equal(t, int64(1), count(t, f.db, &models.Barber{}))

	_, err = f.repo.DeleteBarberCascade(context.Background(), f.barber.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCascade_Client(t *testing.T) {
	f := setup(t)
	f.cut(t, "Corte", "2024-05-01", "/uploads/a.jpg")

	photos, err := f.repo.DeleteClientCascade(context.Background(), f.client.ID)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	require.Zero(t, count(t, f.db, &models.Client{}))
	require.Zero(t, count(t, f.db, &models.Cut{}))

	exists, err := f.repo.ClientExists(context.Background(), f.client.ID)
	require.NoError(t, err)
	require.False(t, exists)
}

func TestPhoto_ScopedToCut(t *testing.T) {
	f := setup(t)
	a := f.cut(t, "Corte", "2024-05-01", "/uploads/a.jpg")
	b := f.cut(t, "Corte", "2024-05-01")

	got, err := f.repo.GetCut(context.Background(), a.ID)
	require.NoError(t, err)
	photoID := got.Photos[0].ID

	_, err = f.repo.GetPhoto(context.Background(), b.ID, photoID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, f.repo.DeletePhoto(context.Background(), photoID))
	require.ErrorIs(t, f.repo.DeletePhoto(context.Background(), photoID), domain.ErrNotFound)
}
