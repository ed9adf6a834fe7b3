package middleware

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/SergeyBogomolovv/shared-payment-service/pkg/utils"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit limits requests per client address. When the limiter itself fails
// the request is let through.
func RateLimit(logger *slog.Logger, limiter Limiter) func(next http.Handler) http.Handler {
	logger = logger.With(slog.String("component", "ratelimit"))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.WarnContext(r.Context(), "rate limiter unavailable", slog.Any("error", err))
				rateLimited.WithLabelValues("error").Inc()
				next.ServeHTTP(w, r)
				return
			}
			if !ok {
				rateLimited.WithLabelValues("rejected").Inc()
				utils.WriteError(w, "too many requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
