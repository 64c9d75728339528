package middleware

import (
	"context"
	"net/http"
	"strings"

	"kennel-scheduler/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const StaffHeader = "X-Staff-ID"

// StaffContext toma el staff del header X-Staff-ID y lo deja en el contexto.
// Si no viene, el request sigue igual; los handlers deciden si lo exigen.
func StaffContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := strings.TrimSpace(r.Header.Get(StaffHeader))
		if sid == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, auth.Claims{StaffID: sid})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}
