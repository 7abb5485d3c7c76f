package middleware

import (
	"net/http"

	"github.com/ndewijer/Portfolio-Pro-Backend/internal/api/response"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond rps per second (with the given burst)
// with 429 Too Many Requests. One limiter is shared by every route the
// middleware wraps. A non-positive rps disables limiting.
func RateLimit(rps float64, burst int, log zerolog.Logger) func(http.Handler) http.Handler {
	if rps <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Warn().Str("path", sanitize(r.URL.Path)).Msg("Rate limit exceeded")
				response.RespondError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests), "")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
