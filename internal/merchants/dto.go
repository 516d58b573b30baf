package merchants

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Snapshot is the read model the quoting pipeline works against. Optional
// columns stay pointers so "not configured" is distinguishable from zero.
type Snapshot struct {
	ID          uuid.UUID
	Name        string
	Slug        string
	Lat         *float64
	Lng         *float64
	MaxRadiusKm *float64
	BaseFee     *decimal.Decimal
	LegacyFee   *decimal.Decimal
	PerKmRate   *decimal.Decimal
	MinFee      *decimal.Decimal
	MaxFee      *decimal.Decimal
	Active      bool
}

// HasCoordinates reports whether both coordinates are present. A merchant with
// only one coordinate set is treated as having none.
func (s Snapshot) HasCoordinates() bool {
	return s.Lat != nil && s.Lng != nil
}
