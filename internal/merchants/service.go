package merchants

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/palengkeph/palengke-backend/pkg/db/models"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/logger"
)

// Service loads merchant snapshots for quoting and checkout.
type Service interface {
	Snapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error)
	Snapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Snapshot, error)
	ListActive(ctx context.Context) ([]Snapshot, error)
}

type merchantFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Merchant, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Merchant, error)
	ListActive(ctx context.Context) ([]models.Merchant, error)
}

type service struct {
	repo merchantFinder
	logg *logger.Logger
}

// NewService constructs a merchant service.
func NewService(repo merchantFinder, logg *logger.Logger) (*service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "merchant repo required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Snapshot returns the quoting read model for one merchant.
func (s *service) Snapshot(ctx context.Context, id uuid.UUID) (*Snapshot, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "merchant not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading merchant")
	}
	snap := s.toSnapshot(ctx, *row)
	return &snap, nil
}

// Snapshots loads the read models for the given ids. Missing merchants are
// simply absent from the result; callers decide what absence means.
func (s *service) Snapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]Snapshot, error) {
	rows, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading merchants")
	}
	out := make(map[uuid.UUID]Snapshot, len(rows))
	for _, row := range rows {
		out[row.ID] = s.toSnapshot(ctx, row)
	}
	return out, nil
}

// ListActive returns snapshots for all active merchants.
func (s *service) ListActive(ctx context.Context) ([]Snapshot, error) {
	rows, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing merchants")
	}
	out := make([]Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, s.toSnapshot(ctx, row))
	}
	return out, nil
}

func (s *service) toSnapshot(ctx context.Context, row models.Merchant) Snapshot {
	// A single coordinate is unusable for quoting. Surface it once in the
	// logs and treat the merchant as having no coordinates.
	lat, lng := row.Lat, row.Lng
	if (lat == nil) != (lng == nil) {
		if s.logg != nil {
			logCtx := s.logg.WithMerchantID(ctx, row.ID.String())
			s.logg.Warn(logCtx, "merchant has partial coordinates")
		}
		lat, lng = nil, nil
	}
	return Snapshot{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Lat:         lat,
		Lng:         lng,
		MaxRadiusKm: row.MaxRadiusKm,
		BaseFee:     row.DeliveryBaseFee,
		LegacyFee:   row.DeliveryFee,
		PerKmRate:   row.PerKmRate,
		MinFee:      row.MinDeliveryFee,
		MaxFee:      row.MaxDeliveryFee,
		Active:      row.Active,
	}
}
