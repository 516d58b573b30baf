package middleware

import "context"

type contextKey string

const ctxCustomerRef contextKey = "customer_ref"

func CustomerRefFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCustomerRef).(string); ok {
		return v
	}
	return ""
}

// WithCustomerRef injects the customer reference into the context for
// downstream handlers.
func WithCustomerRef(ctx context.Context, customerRef string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCustomerRef, customerRef)
}
