package middleware

import (
	"context"
	"net/http"

	"crowdfund/internal/domain"
)

// PrincipalHeader carries the authenticated caller identity set by the
// fronting proxy. Verification happens upstream; the ledger treats the
// value as opaque. An absent header means the caller is anonymous.
const PrincipalHeader = "X-Principal"

const principalKey contextKey = "principal"

func Principal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := domain.Principal(r.Header.Get(PrincipalHeader))
		ctx := context.WithValue(r.Context(), principalKey, p)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func PrincipalFromContext(ctx context.Context) domain.Principal {
	if p, ok := ctx.Value(principalKey).(domain.Principal); ok {
		return p
	}
	return ""
}
