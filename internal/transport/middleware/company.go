package middleware

import (
	"net/http"
	"strconv"

	apperrors "github.com/heitorcapra/contas-backend/internal"
	"github.com/heitorcapra/contas-backend/pkg/logger"
)

// CompanyScope resolves the tenant from the X-Company-ID header and puts it
// on the request context. Every row the handlers touch is scoped to it.
func CompanyScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("X-Company-ID")
		if header == "" {
			writeScopeError(w, "missing X-Company-ID header")
			return
		}

		companyID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || companyID <= 0 {
			writeScopeError(w, "invalid X-Company-ID header")
			return
		}

		ctx := apperrors.ContextWithCompanyID(r.Context(), companyID)
		ctx = logger.With(ctx, "company_id", companyID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeScopeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	w.Write([]byte(`{"code": 400, "message": "` + message + `"}`))
}
