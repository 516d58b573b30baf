package merchants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/palengkeph/palengke-backend/pkg/db/models"
)

// Repository exposes persistence operations for merchant data.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a merchant repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID returns a merchant row or gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error) {
	var row models.Merchant
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByIDs returns the merchants matching ids, in no particular order.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Merchant, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Merchant
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListActive returns active merchants for storefront browsing.
func (r *Repository) ListActive(ctx context.Context) ([]models.Merchant, error) {
	var rows []models.Merchant
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
