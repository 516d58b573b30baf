package enums

// CartStatus tracks the lifecycle of a persisted cart snapshot.
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConverted CartStatus = "converted"
	CartStatusAbandoned CartStatus = "abandoned"
)

// PaymentMethodScope tells whether a payment method is offerable for any
// merchant mix or bound to a single merchant.
type PaymentMethodScope string

const (
	PaymentScopeGlobal   PaymentMethodScope = "global"
	PaymentScopeMerchant PaymentMethodScope = "merchant"
)

// OrderStatus tracks placed order records.
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// QuoteFailure identifies why a merchant cannot be served. The human-readable
// reason lives on the quote itself; these codes are stable for callers.
type QuoteFailure string

const (
	QuoteFailureMerchantNotFound       QuoteFailure = "merchant_not_found"
	QuoteFailureDestinationUnconfirmed QuoteFailure = "destination_unconfirmed"
	QuoteFailureMerchantNoCoordinates  QuoteFailure = "merchant_no_coordinates"
	QuoteFailureOutsideRadius          QuoteFailure = "outside_radius"
)

// OutboxEventType enumerates domain events flowing through the outbox.
type OutboxEventType string

const (
	EventOrderCreated OutboxEventType = "order.created"
)

// OutboxAggregateType names the aggregate an outbox event belongs to.
type OutboxAggregateType string

const (
	AggregateOrder OutboxAggregateType = "order"
)

// OutboxStatus tracks publication state of an outbox event.
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusPublished OutboxStatus = "published"
	OutboxStatusFailed    OutboxStatus = "failed"
	OutboxStatusTerminal  OutboxStatus = "terminal"
)
