package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestQuoteFeeLinearCurve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		distance float64
		base     string
		rate     string
		want     string
	}{
		{name: "two km at four per km", distance: 2, base: "20", rate: "4", want: "28"},
		{name: "zero distance", distance: 0, base: "35", rate: "7", want: "35"},
		{name: "fractional distance rounds", distance: 1.333, base: "10", rate: "3", want: "14"},
		{name: "zero everything", distance: 0, base: "0", rate: "0", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuoteFee(tt.distance, dec(tt.base), dec(tt.rate), nil, nil)
			if !got.Equal(dec(tt.want)) {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestQuoteFeeMonotonicInDistance(t *testing.T) {
	t.Parallel()

	base, rate := dec("15"), dec("6")
	prev := QuoteFee(0, base, rate, nil, nil)
	for _, d := range []float64{0.5, 1, 2.75, 5, 12, 40} {
		fee := QuoteFee(d, base, rate, nil, nil)
		if fee.LessThan(prev) {
			t.Fatalf("fee decreased from %s to %s at distance %v", prev, fee, d)
		}
		prev = fee
	}
}

func TestQuoteFeeMinimumClamp(t *testing.T) {
	t.Parallel()

	got := QuoteFee(2, dec("10"), dec("10"), decPtr("50"), nil)
	if !got.Equal(dec("50")) {
		t.Fatalf("expected floor 50, got %s", got)
	}

	// above the floor, the raw fee wins
	got = QuoteFee(10, dec("10"), dec("10"), decPtr("50"), nil)
	if !got.Equal(dec("110")) {
		t.Fatalf("expected raw 110, got %s", got)
	}
}

func TestQuoteFeeMaximumClamp(t *testing.T) {
	t.Parallel()

	got := QuoteFee(100, dec("20"), dec("4"), nil, decPtr("99"))
	if !got.Equal(dec("99")) {
		t.Fatalf("expected ceiling 99, got %s", got)
	}
}

func TestQuoteFeeMaxBelowMinMaxWins(t *testing.T) {
	t.Parallel()

	// misconfigured curve: ceiling below floor. The minimum is applied first,
	// then the maximum — so the maximum wins.
	got := QuoteFee(1, dec("10"), dec("5"), decPtr("100"), decPtr("60"))
	if !got.Equal(dec("60")) {
		t.Fatalf("expected max to win with 60, got %s", got)
	}
}

func TestQuoteFeeRoundsToCurrencyPrecision(t *testing.T) {
	t.Parallel()

	got := QuoteFee(1.111, dec("0"), dec("1"), nil, nil)
	if !got.Equal(dec("1.11")) {
		t.Fatalf("expected 1.11, got %s", got)
	}

	got = QuoteFee(1.115, dec("0"), dec("1"), nil, nil)
	if !got.Equal(dec("1.12")) {
		t.Fatalf("expected half-up rounding to 1.12, got %s", got)
	}
}

func TestQuoteFeeNegativeInputsNotRejected(t *testing.T) {
	t.Parallel()

	// validation is a configuration-time concern upstream; the curve stays
	// deterministic for bad inputs.
	got := QuoteFee(2, dec("-5"), dec("-1"), nil, nil)
	if !got.Equal(dec("-7")) {
		t.Fatalf("expected -7, got %s", got)
	}
}
