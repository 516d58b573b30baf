package cart

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/palengkeph/palengke-backend/internal/merchants"
	"github.com/palengkeph/palengke-backend/pkg/db/models"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/logger"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

// ItemInput is one cart line as submitted by the storefront.
type ItemInput struct {
	MerchantID     uuid.UUID
	Name           string
	UnitPrice      decimal.Decimal
	Quantity       int
	Customizations []string
}

// Service manages the customer's active cart.
type Service interface {
	ActiveCart(ctx context.Context, customerRef string) (*models.CartRecord, error)
	ReplaceItems(ctx context.Context, customerRef string, items []ItemInput) (*models.CartRecord, error)
	SetDestination(ctx context.Context, customerRef string, dest types.Destination) (*models.CartRecord, error)
	SetCustomerDetails(ctx context.Context, customerRef string, name, phone, notes string) (*models.CartRecord, error)
}

type cartStore interface {
	Create(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	Update(ctx context.Context, record *models.CartRecord) (*models.CartRecord, error)
	FindActiveByCustomer(ctx context.Context, customerRef string) (*models.CartRecord, error)
	ReplaceItems(ctx context.Context, record *models.CartRecord, items []models.CartItem) error
}

type merchantLoader interface {
	Snapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]merchants.Snapshot, error)
}

type service struct {
	repo      cartStore
	merchants merchantLoader
	logg      *logger.Logger
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Repo      cartStore
	Merchants merchantLoader
	Logger    *logger.Logger
}

// NewService constructs a cart service.
func NewService(params ServiceParams) (*service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart repo required")
	}
	if params.Merchants == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "merchant loader required")
	}
	return &service{repo: params.Repo, merchants: params.Merchants, logg: params.Logger}, nil
}

// ActiveCart returns the customer's active cart, creating one when absent.
func (s *service) ActiveCart(ctx context.Context, customerRef string) (*models.CartRecord, error) {
	ref := strings.TrimSpace(customerRef)
	if ref == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer reference is required")
	}
	record, err := s.repo.FindActiveByCustomer(ctx, ref)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading active cart")
	}
	created, err := s.repo.Create(ctx, &models.CartRecord{CustomerRef: ref})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating cart")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithCartID(ctx, created.ID.String()), "cart created")
	}
	return created, nil
}

// ReplaceItems swaps the full cart contents. Merchant names are snapshotted
// onto the rows so later rendering never re-reads the merchant table.
func (s *service) ReplaceItems(ctx context.Context, customerRef string, items []ItemInput) (*models.CartRecord, error) {
	record, err := s.ActiveCart(ctx, customerRef)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]struct{})
	for _, item := range items {
		if item.MerchantID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required on every item")
		}
		if strings.TrimSpace(item.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item name is required")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
		if item.UnitPrice.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item unit price must not be negative")
		}
		if _, ok := seen[item.MerchantID]; !ok {
			seen[item.MerchantID] = struct{}{}
			ids = append(ids, item.MerchantID)
		}
	}

	snaps, err := s.merchants.Snapshots(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := snaps[id]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown merchant in cart").
				WithDetails(map[string]string{"merchantId": id.String()})
		}
	}

	rows := make([]models.CartItem, 0, len(items))
	subtotal := decimal.Zero
	for _, item := range items {
		lineTotal := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		rows = append(rows, models.CartItem{
			MerchantID:     item.MerchantID,
			MerchantName:   snaps[item.MerchantID].Name,
			Name:           strings.TrimSpace(item.Name),
			UnitPrice:      item.UnitPrice,
			Quantity:       item.Quantity,
			Customizations: types.StringList(item.Customizations),
			LineTotal:      lineTotal,
		})
	}

	record.Subtotal = subtotal
	if err := s.repo.ReplaceItems(ctx, record, rows); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing cart items")
	}
	return record, nil
}

// SetDestination stores the delivery destination on the active cart.
func (s *service) SetDestination(ctx context.Context, customerRef string, dest types.Destination) (*models.CartRecord, error) {
	record, err := s.ActiveCart(ctx, customerRef)
	if err != nil {
		return nil, err
	}
	record.Destination = &dest
	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving destination")
	}
	return updated, nil
}

// SetCustomerDetails stores contact details used at checkout.
func (s *service) SetCustomerDetails(ctx context.Context, customerRef string, name, phone, notes string) (*models.CartRecord, error) {
	record, err := s.ActiveCart(ctx, customerRef)
	if err != nil {
		return nil, err
	}
	record.CustomerName = optional(name)
	record.CustomerPhone = optional(phone)
	record.Notes = optional(notes)
	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "saving customer details")
	}
	return updated, nil
}

// Lines converts persisted cart items to the in-memory shape the quote and
// checkout pipelines consume.
func Lines(record *models.CartRecord) []LineItem {
	if record == nil {
		return nil
	}
	lines := make([]LineItem, 0, len(record.Items))
	for _, row := range record.Items {
		lines = append(lines, LineItem{
			MerchantID:     row.MerchantID,
			MerchantName:   row.MerchantName,
			Name:           row.Name,
			UnitPrice:      row.UnitPrice,
			Quantity:       row.Quantity,
			Customizations: row.Customizations,
		})
	}
	return lines
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
