package middleware

import (
	"net/http"
	"strings"

	"github.com/palengkeph/palengke-backend/api/responses"
	pkgerrors "github.com/palengkeph/palengke-backend/pkg/errors"
	"github.com/palengkeph/palengke-backend/pkg/logger"
)

const customerRefHeader = "X-Customer-Ref"

// CustomerContext requires the anonymous customer reference header and
// injects it into the request context. The storefront assigns the reference
// client-side; the API only needs it to be present and stable.
func CustomerContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ref := strings.TrimSpace(r.Header.Get(customerRefHeader))
			if ref == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "customer reference header missing"))
				return
			}

			ctx := WithCustomerRef(r.Context(), ref)
			if logg != nil {
				ctx = logg.WithField(ctx, "customer_ref", ref)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
