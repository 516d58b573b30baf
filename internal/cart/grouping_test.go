package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func item(merchantID uuid.UUID, merchant, name string, price string, qty int) LineItem {
	return LineItem{
		MerchantID:   merchantID,
		MerchantName: merchant,
		Name:         name,
		UnitPrice:    decimal.RequireFromString(price),
		Quantity:     qty,
	}
}

func TestGroupByMerchantPreservesFirstSeenOrder(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	items := []LineItem{
		item(a, "Aling Nena's", "Adobo", "120", 1),
		item(b, "Kusina ni Maria", "Sinigang", "150", 1),
		item(a, "Aling Nena's", "Rice", "15", 3),
	}

	groups := GroupByMerchant(items)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].MerchantID != a || groups[1].MerchantID != b {
		t.Fatalf("groups out of first-seen order: %+v", groups)
	}
	if len(groups[0].Items) != 2 {
		t.Fatalf("expected 2 items for first merchant, got %d", len(groups[0].Items))
	}
	if groups[0].Items[0].Name != "Adobo" || groups[0].Items[1].Name != "Rice" {
		t.Fatalf("item order not preserved within group: %+v", groups[0].Items)
	}
}

func TestGroupSubtotal(t *testing.T) {
	t.Parallel()

	a := uuid.New()
	groups := GroupByMerchant([]LineItem{
		item(a, "Aling Nena's", "Adobo", "120.50", 2),
		item(a, "Aling Nena's", "Rice", "15", 3),
	})
	if len(groups) != 1 {
		t.Fatalf("expected one group, got %d", len(groups))
	}
	want := decimal.RequireFromString("286.00")
	if !groups[0].Subtotal().Equal(want) {
		t.Fatalf("expected subtotal %s, got %s", want, groups[0].Subtotal())
	}
}

func TestMerchantIDsDeduplicates(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	ids := MerchantIDs([]LineItem{
		item(b, "Kusina ni Maria", "Sinigang", "150", 1),
		item(a, "Aling Nena's", "Adobo", "120", 1),
		item(b, "Kusina ni Maria", "Halo-halo", "95", 2),
	})
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	if ids[0] != b || ids[1] != a {
		t.Fatalf("ids out of first-seen order: %v", ids)
	}
}

func TestEmptyCart(t *testing.T) {
	t.Parallel()

	if groups := GroupByMerchant(nil); len(groups) != 0 {
		t.Fatalf("expected no groups, got %d", len(groups))
	}
	if ids := MerchantIDs(nil); len(ids) != 0 {
		t.Fatalf("expected no ids, got %d", len(ids))
	}
	if !Subtotal(nil).Equal(decimal.Zero) {
		t.Fatalf("expected zero subtotal")
	}
}

func TestSubtotalAcrossMerchants(t *testing.T) {
	t.Parallel()

	a, b := uuid.New(), uuid.New()
	total := Subtotal([]LineItem{
		item(a, "Aling Nena's", "Adobo", "120", 1),
		item(b, "Kusina ni Maria", "Sinigang", "150.25", 2),
	})
	want := decimal.RequireFromString("420.50")
	if !total.Equal(want) {
		t.Fatalf("expected %s, got %s", want, total)
	}
}
