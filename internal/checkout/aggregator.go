package checkout

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/palengkeph/palengke-backend/internal/cart"
	"github.com/palengkeph/palengke-backend/internal/quote"
	"github.com/palengkeph/palengke-backend/pkg/db/models"
	"github.com/palengkeph/palengke-backend/pkg/types"
)

const messageDivider = "--------------------"

// BlockedKind distinguishes why placement is blocked so the storefront can
// point the customer at the right fix.
type BlockedKind string

const (
	BlockedMissingField  BlockedKind = "missing_field"
	BlockedUndeliverable BlockedKind = "undeliverable"
	BlockedEmptyCart     BlockedKind = "empty_cart"
)

// BlockedReason is one user-visible obstacle to placing the order.
type BlockedReason struct {
	Kind    BlockedKind `json:"kind"`
	Message string      `json:"message"`
}

// MerchantSummary is one merchant's slice of the order summary.
type MerchantSummary struct {
	MerchantID uuid.UUID           `json:"merchantId"`
	Name       string              `json:"name"`
	Subtotal   decimal.Decimal     `json:"subtotal"`
	Quote      quote.DeliveryQuote `json:"quote"`
	Items      []cart.LineItem     `json:"items"`
}

// Summary is the outcome of one checkout aggregation pass. It is built fresh
// per attempt and never mutated afterwards.
type Summary struct {
	Merchants        []MerchantSummary `json:"merchants"`
	ItemsSubtotal    decimal.Decimal   `json:"itemsSubtotal"`
	DeliveryFeeTotal decimal.Decimal   `json:"deliveryFeeTotal"`
	GrandTotal       decimal.Decimal   `json:"grandTotal"`
	CanPlaceOrder    bool              `json:"canPlaceOrder"`
	BlockedReasons   []BlockedReason   `json:"blockedReasons,omitempty"`
	Message          string            `json:"message"`
	MessageEncoded   string            `json:"messageEncoded"`
}

// BuildInput carries the immutable snapshots one aggregation pass reads.
type BuildInput struct {
	Groups        []cart.MerchantGroup
	Quotes        []quote.DeliveryQuote
	Destination   *types.Destination
	CustomerName  string
	CustomerPhone string
	Notes         string
	Payment       *models.PaymentMethod
}

// Aggregator assembles order summaries. It holds only rendering config and
// performs no I/O.
type Aggregator struct {
	currencySymbol string
}

// NewAggregator constructs an aggregator rendering amounts with the given
// currency symbol.
func NewAggregator(currencySymbol string) *Aggregator {
	if currencySymbol == "" {
		currencySymbol = "₱"
	}
	return &Aggregator{currencySymbol: currencySymbol}
}

// Build combines cart groups, quotes and the payment selection into a
// summary with totals, gating, and the rendered order message.
func (a *Aggregator) Build(input BuildInput) Summary {
	quotesByMerchant := make(map[uuid.UUID]quote.DeliveryQuote, len(input.Quotes))
	for _, q := range input.Quotes {
		quotesByMerchant[q.MerchantID] = q
	}

	summary := Summary{
		ItemsSubtotal:    decimal.Zero,
		DeliveryFeeTotal: decimal.Zero,
	}

	for _, group := range input.Groups {
		q := quotesByMerchant[group.MerchantID]
		subtotal := group.Subtotal()
		summary.ItemsSubtotal = summary.ItemsSubtotal.Add(subtotal)
		if q.Deliverable && q.Fee != nil {
			summary.DeliveryFeeTotal = summary.DeliveryFeeTotal.Add(*q.Fee)
		}
		summary.Merchants = append(summary.Merchants, MerchantSummary{
			MerchantID: group.MerchantID,
			Name:       group.MerchantName,
			Subtotal:   subtotal,
			Quote:      q,
			Items:      group.Items,
		})
	}
	summary.GrandTotal = summary.ItemsSubtotal.Add(summary.DeliveryFeeTotal)

	summary.BlockedReasons = a.blockedReasons(input)
	summary.CanPlaceOrder = len(summary.BlockedReasons) == 0

	summary.Message = a.render(input, summary)
	summary.MessageEncoded = url.QueryEscape(summary.Message)
	return summary
}

func (a *Aggregator) blockedReasons(input BuildInput) []BlockedReason {
	var reasons []BlockedReason

	if len(input.Groups) == 0 {
		reasons = append(reasons, BlockedReason{Kind: BlockedEmptyCart, Message: "cart is empty"})
	}
	if strings.TrimSpace(input.CustomerName) == "" {
		reasons = append(reasons, BlockedReason{Kind: BlockedMissingField, Message: "customer name is required"})
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		reasons = append(reasons, BlockedReason{Kind: BlockedMissingField, Message: "customer phone is required"})
	}
	if input.Destination == nil || !input.Destination.Confirmed() {
		reasons = append(reasons, BlockedReason{Kind: BlockedMissingField, Message: "delivery destination not confirmed"})
	}

	quotesByMerchant := make(map[uuid.UUID]quote.DeliveryQuote, len(input.Quotes))
	for _, q := range input.Quotes {
		quotesByMerchant[q.MerchantID] = q
	}
	for _, group := range input.Groups {
		q, ok := quotesByMerchant[group.MerchantID]
		if !ok || !q.Deliverable {
			reason := q.Reason
			if reason == "" {
				reason = "no delivery quote"
			}
			reasons = append(reasons, BlockedReason{
				Kind:    BlockedUndeliverable,
				Message: fmt.Sprintf("%s: %s", group.MerchantName, reason),
			})
		}
	}
	return reasons
}

// render produces the order message. Field order and labels are contractual:
// the counterpart is a human reading a chat message.
func (a *Aggregator) render(input BuildInput, summary Summary) string {
	var b strings.Builder
	b.WriteString("NEW ORDER\n")
	b.WriteString(messageDivider)
	b.WriteString("\n")

	for _, m := range summary.Merchants {
		b.WriteString(m.Name)
		b.WriteString("\n")
		for _, item := range m.Items {
			b.WriteString("  ")
			b.WriteString(strconv.Itoa(item.Quantity))
			b.WriteString("x ")
			b.WriteString(item.Name)
			if len(item.Customizations) > 0 {
				b.WriteString(" (")
				b.WriteString(strings.Join(item.Customizations, ", "))
				b.WriteString(")")
			}
			b.WriteString(" — ")
			b.WriteString(a.money(item.LineTotal()))
			b.WriteString("\n")
		}
		b.WriteString("  Subtotal: ")
		b.WriteString(a.money(m.Subtotal))
		b.WriteString("\n")
		if m.Quote.Deliverable && m.Quote.Fee != nil && m.Quote.DistanceKm != nil {
			b.WriteString("  Delivery (")
			b.WriteString(formatKm(*m.Quote.DistanceKm))
			b.WriteString(" km): ")
			b.WriteString(a.money(*m.Quote.Fee))
			b.WriteString("\n")
		} else {
			reason := m.Quote.Reason
			if reason == "" {
				reason = "no delivery quote"
			}
			b.WriteString("  Delivery: unavailable (")
			b.WriteString(reason)
			b.WriteString(")\n")
		}
	}

	b.WriteString(messageDivider)
	b.WriteString("\n")
	b.WriteString("Items subtotal: ")
	b.WriteString(a.money(summary.ItemsSubtotal))
	b.WriteString("\n")
	b.WriteString("Delivery fees: ")
	b.WriteString(a.money(summary.DeliveryFeeTotal))
	b.WriteString("\n")
	b.WriteString("Deliver to: ")
	if input.Destination != nil {
		b.WriteString(input.Destination.Label)
	}
	b.WriteString("\n")
	b.WriteString("TOTAL: ")
	b.WriteString(a.money(summary.GrandTotal))
	b.WriteString("\n")
	b.WriteString("Payment: ")
	if input.Payment != nil {
		b.WriteString(input.Payment.DisplayName)
	} else {
		b.WriteString("not selected")
	}
	if notes := strings.TrimSpace(input.Notes); notes != "" {
		b.WriteString("\nNotes: ")
		b.WriteString(notes)
	}
	return b.String()
}

func (a *Aggregator) money(amount decimal.Decimal) string {
	return a.currencySymbol + amount.StringFixed(2)
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
