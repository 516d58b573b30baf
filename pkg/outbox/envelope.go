package outbox

import (
	"encoding/json"
	"time"
)

// PayloadEnvelope is the stable payload structure stored in outbox_events.
type PayloadEnvelope struct {
	Version    int             `json:"version"`
	EventID    string          `json:"eventId"`
	OccurredAt time.Time       `json:"occurredAt"`
	Data       json.RawMessage `json:"data"`
}

// OrderPlacedData is the event body for order.created. The rendered message
// travels with the event so the publisher never re-renders totals.
type OrderPlacedData struct {
	OrderID        string   `json:"orderId"`
	CustomerName   string   `json:"customerName"`
	CustomerPhone  string   `json:"customerPhone"`
	MerchantIDs    []string `json:"merchantIds"`
	GrandTotal     string   `json:"grandTotal"`
	Message        string   `json:"message"`
	MessageEncoded string   `json:"messageEncoded"`
}
