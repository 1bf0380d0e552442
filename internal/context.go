package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextCompanyKey ctxKey = "companyID"

// CompanyIDFromContext returns the tenant company ID carried by the request
// context, or zero when none is set.
func CompanyIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if companyID, ok := ctx.Value(ContextCompanyKey).(int64); ok {
		return companyID
	}
	return 0
}

func ContextWithCompanyID(ctx context.Context, companyID int64) context.Context {
	return context.WithValue(ctx, ContextCompanyKey, companyID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
