package payments

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/palengkeph/palengke-backend/pkg/db/models"
	"github.com/palengkeph/palengke-backend/pkg/enums"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
)

// Service resolves the payment methods offerable for a cart.
type Service interface {
	MethodsForCart(ctx context.Context, merchantIDs []uuid.UUID) ([]models.PaymentMethod, error)
	ValidateForCart(ctx context.Context, methodID uuid.UUID, merchantIDs []uuid.UUID) (*models.PaymentMethod, error)
}

type catalogLoader interface {
	ListActive(ctx context.Context) ([]models.PaymentMethod, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PaymentMethod, error)
}

type service struct {
	repo catalogLoader
}

// NewService constructs a payments service.
func NewService(repo catalogLoader) (*service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "payments repo required")
	}
	return &service{repo: repo}, nil
}

// MethodsForCart returns the catalog filtered for the cart's merchant mix.
func (s *service) MethodsForCart(ctx context.Context, merchantIDs []uuid.UUID) ([]models.PaymentMethod, error) {
	catalog, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading payment methods")
	}
	return Resolve(catalog, merchantIDs), nil
}

// ValidateForCart confirms the chosen method exists, is active, and is
// offerable for the cart's merchant mix.
func (s *service) ValidateForCart(ctx context.Context, methodID uuid.UUID, merchantIDs []uuid.UUID) (*models.PaymentMethod, error) {
	if methodID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment method is required")
	}
	method, err := s.repo.FindByID(ctx, methodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment method not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading payment method")
	}
	if !method.Active {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment method is no longer offered")
	}
	if method.Scope == enums.PaymentScopeMerchant {
		if len(merchantIDs) != 1 || method.MerchantID == nil || *method.MerchantID != merchantIDs[0] {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "payment method not available for this cart")
		}
	}
	return method, nil
}
