package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/pkg/types"
)

// LineItem is the in-memory cart line the quoting pipeline works on.
type LineItem struct {
	MerchantID     uuid.UUID
	MerchantName   string
	Name           string
	UnitPrice      decimal.Decimal
	Quantity       int
	Customizations types.StringList
}

// LineTotal returns unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// MerchantGroup is one merchant's slice of the cart. Items keep the order
// they were added in.
type MerchantGroup struct {
	MerchantID   uuid.UUID
	MerchantName string
	Items        []LineItem
}

// Subtotal sums the group's line totals.
func (g MerchantGroup) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range g.Items {
		total = total.Add(item.LineTotal())
	}
	return total
}

// GroupByMerchant partitions items by merchant. Groups appear in the order
// each merchant first shows up in the cart, so rendering the groups yields a
// stable order message.
func GroupByMerchant(items []LineItem) []MerchantGroup {
	groups := make([]MerchantGroup, 0)
	index := make(map[uuid.UUID]int)
	for _, item := range items {
		i, seen := index[item.MerchantID]
		if !seen {
			i = len(groups)
			index[item.MerchantID] = i
			groups = append(groups, MerchantGroup{
				MerchantID:   item.MerchantID,
				MerchantName: item.MerchantName,
			})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// MerchantIDs returns the distinct merchant ids in first-seen order.
func MerchantIDs(items []LineItem) []uuid.UUID {
	ids := make([]uuid.UUID, 0)
	seen := make(map[uuid.UUID]struct{})
	for _, item := range items {
		if _, ok := seen[item.MerchantID]; ok {
			continue
		}
		seen[item.MerchantID] = struct{}{}
		ids = append(ids, item.MerchantID)
	}
	return ids
}

// Subtotal sums line totals across the whole cart.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.LineTotal())
	}
	return total
}
