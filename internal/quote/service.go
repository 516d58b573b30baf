package quote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/internal/merchants"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/logger"
	"github.com/palengkeph/palengke-backend/pkg/metrics"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

// Service runs the quote pipeline: snapshot load, engine evaluation, and
// optional memoization.
type Service interface {
	QuoteMerchants(ctx context.Context, ids []uuid.UUID, dest *types.Destination) ([]DeliveryQuote, error)
}

type merchantLoader interface {
	Snapshots(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]merchants.Snapshot, error)
}

type service struct {
	engine    *Engine
	merchants merchantLoader
	cache     *Cache
	metrics   *metrics.PipelineMetrics
	logg      *logger.Logger
}

// ServiceParams groups dependencies for the quote service. Cache and Metrics
// are optional.
type ServiceParams struct {
	Engine    *Engine
	Merchants merchantLoader
	Cache     *Cache
	Metrics   *metrics.PipelineMetrics
	Logger    *logger.Logger
}

// NewService constructs a quote service.
func NewService(params ServiceParams) (*service, error) {
	if params.Engine == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "quote engine required")
	}
	if params.Merchants == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "merchant loader required")
	}
	return &service{
		engine:    params.Engine,
		merchants: params.Merchants,
		cache:     params.Cache,
		metrics:   params.Metrics,
		logg:      params.Logger,
	}, nil
}

// QuoteMerchants quotes the given merchants against the destination. Results
// come back in the same order as ids.
func (s *service) QuoteMerchants(ctx context.Context, ids []uuid.UUID, dest *types.Destination) ([]DeliveryQuote, error) {
	start := time.Now()
	fingerprint := Fingerprint(ids, dest)

	if s.cache != nil {
		cached, hit, err := s.cache.Lookup(ctx, fingerprint)
		if err != nil {
			// Redis being down should not block quoting.
			if s.logg != nil {
				s.logg.Warn(ctx, "quote cache lookup failed")
			}
		} else if hit {
			// The fingerprint is order-insensitive, so the stored set may be
			// in another request's order. Realign before returning.
			if ordered, ok := alignQuotes(cached, ids); ok {
				s.metrics.IncQuoteCache("hit")
				s.metrics.ObserveQuoteDuration("cache", time.Since(start))
				return ordered, nil
			}
		}
		s.metrics.IncQuoteCache("miss")
	}

	snaps, err := s.merchants.Snapshots(ctx, ids)
	if err != nil {
		return nil, err
	}
	quotes := s.engine.QuoteAll(ids, snaps, dest)

	for _, q := range quotes {
		if q.Deliverable {
			s.metrics.IncQuoteOutcome("deliverable")
		} else {
			s.metrics.IncQuoteOutcome(string(q.FailureCode))
		}
	}
	s.metrics.ObserveQuoteDuration("engine", time.Since(start))

	if s.cache != nil {
		if err := s.cache.Store(ctx, fingerprint, quotes); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "quote cache store failed")
		}
	}
	return quotes, nil
}

// alignQuotes reorders a cached quote set to match the requested ids. A set
// missing any requested merchant is unusable and counts as a miss.
func alignQuotes(quotes []DeliveryQuote, ids []uuid.UUID) ([]DeliveryQuote, bool) {
	byMerchant := make(map[uuid.UUID]DeliveryQuote, len(quotes))
	for _, q := range quotes {
		byMerchant[q.MerchantID] = q
	}
	ordered := make([]DeliveryQuote, 0, len(ids))
	for _, id := range ids {
		q, ok := byMerchant[id]
		if !ok {
			return nil, false
		}
		ordered = append(ordered, q)
	}
	return ordered, true
}

// FeeTotal sums the fees of deliverable quotes. Non-deliverable merchants
// contribute nothing.
func FeeTotal(quotes []DeliveryQuote) decimal.Decimal {
	total := decimal.Zero
	for _, q := range quotes {
		if q.Deliverable && q.Fee != nil {
			total = total.Add(*q.Fee)
		}
	}
	return total
}

// AllDeliverable reports whether every quote in the set is deliverable.
// An empty set counts as deliverable; there is nothing to block on.
func AllDeliverable(quotes []DeliveryQuote) bool {
	for _, q := range quotes {
		if !q.Deliverable {
			return false
		}
	}
	return true
}
