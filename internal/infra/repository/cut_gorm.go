package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barbershop-manager/internal/domain/cut"
	"github.com/BruksfildServices01/barbershop-manager/internal/models"
)

var _ domain.Repository = (*CutGormRepository)(nil)

type CutGormRepository struct {
	db *gorm.DB
}

func NewCutGormRepository(db *gorm.DB) *CutGormRepository {
	return &CutGormRepository{db: db}
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// References
// --------------------------------------------------

func (r *CutGormRepository) ClientExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *CutGormRepository) BarberExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Barber{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// --------------------------------------------------
// Cut
// --------------------------------------------------

func (r *CutGormRepository) CreateCut(ctx context.Context, c *models.Cut) error {
	return r.db.WithContext(ctx).Omit("Client", "Barber", "Photos").Create(c).Error
}

func (r *CutGormRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("Barber").
		Preload("Photos", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

func (r *CutGormRepository) GetCut(ctx context.Context, id uint) (*models.Cut, error) {
	var c models.Cut
	if err := r.withRelations(ctx).First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *CutGormRepository) ListCuts(ctx context.Context, f domain.Filter) ([]models.Cut, error) {
	q := r.withRelations(ctx)
	if f.Date != "" {
		q = q.Where("date = ?", f.Date)
	}
	if f.Service != "" {
		q = q.Where("service = ?", f.Service)
	}

	var cuts []models.Cut
	if err := q.Order("created_at DESC").Order("id DESC").Find(&cuts).Error; err != nil {
		return nil, err
	}
	return cuts, nil
}

func (r *CutGormRepository) UpdateCut(ctx context.Context, c *models.Cut) error {
	return r.db.WithContext(ctx).Omit("Client", "Barber", "Photos").Save(c).Error
}

func (r *CutGormRepository) DeleteCut(ctx context.Context, id uint) ([]models.CutPhoto, error) {
	var photos []models.CutPhoto

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Cut
		if err := tx.Select("id").First(&c, id).Error; err != nil {
			return notFound(err)
		}

		var err error
		photos, err = deleteCuts(tx, []uint{id})
		return err
	})
	if err != nil {
		return nil, err
	}
	return photos, nil
}

// --------------------------------------------------
// Photo
// --------------------------------------------------

func (r *CutGormRepository) CreatePhoto(ctx context.Context, p *models.CutPhoto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CutGormRepository) GetPhoto(ctx context.Context, cutID, photoID uint) (*models.CutPhoto, error) {
	var p models.CutPhoto
	if err := r.db.WithContext(ctx).
		Where("id = ? AND cut_id = ?", photoID, cutID).
		First(&p).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *CutGormRepository) DeletePhoto(ctx context.Context, photoID uint) error {
	res := r.db.WithContext(ctx).Delete(&models.CutPhoto{}, photoID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Cascades
// --------------------------------------------------

func (r *CutGormRepository) DeleteClientCascade(ctx context.Context, clientID uint) ([]models.CutPhoto, error) {
	return r.deleteOwner(ctx, &models.Client{}, "client_id", clientID)
}

func (r *CutGormRepository) DeleteBarberCascade(ctx context.Context, barberID uint) ([]models.CutPhoto, error) {
	return r.deleteOwner(ctx, &models.Barber{}, "barber_id", barberID)
}

// deleteOwner apaga fotos, cortes e por fim o dono (cliente ou barbeiro) numa transação.
func (r *CutGormRepository) deleteOwner(ctx context.Context, owner any, column string, id uint) ([]models.CutPhoto, error) {
	var photos []models.CutPhoto

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cutIDs []uint
		if err := tx.Model(&models.Cut{}).
			Where(column+" = ?", id).
			Pluck("id", &cutIDs).Error; err != nil {
			return err
		}

		var err error
		photos, err = deleteCuts(tx, cutIDs)
		if err != nil {
			return err
		}

		res := tx.Delete(owner, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return photos, nil
}

func deleteCuts(tx *gorm.DB, cutIDs []uint) ([]models.CutPhoto, error) {
	if len(cutIDs) == 0 {
		return nil, nil
	}

	var photos []models.CutPhoto
	if err := tx.Where("cut_id IN ?", cutIDs).Find(&photos).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("cut_id IN ?", cutIDs).Delete(&models.CutPhoto{}).Error; err != nil {
		return nil, err
	}
	if err := tx.Where("id IN ?", cutIDs).Delete(&models.Cut{}).Error; err != nil {
		return nil, err
	}
	return photos, nil
}
