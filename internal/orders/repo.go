package orders

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/palengkeph/palengke-backend/pkg/db/models"
)

// Repository exposes persistence operations for placed orders.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts the order with its merchant slices and line items inside the
// caller's transaction.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, record *models.OrderRecord) error {
	if tx == nil {
		return errors.New("transaction required")
	}
	return tx.WithContext(ctx).Create(record).Error
}

// FindByID loads an order with its merchant slices and line items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.OrderRecord, error) {
	var record models.OrderRecord
	err := r.db.WithContext(ctx).
		Preload("Merchants", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("LineItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("id = ?", id).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (r *Repository) ListByCustomer(ctx context.Context, customerRef string) ([]models.OrderRecord, error) {
	var rows []models.OrderRecord
	err := r.db.WithContext(ctx).
		Where("customer_ref = ?", customerRef).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
