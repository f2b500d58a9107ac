package http

import (
	"math"
	"net"
	"net/http"
	"strconv"
)

// clientKey identifies the caller for rate limiting. Behind RequireUser the
// caller is limited per user, so users behind one NAT do not share a bucket.
// Elsewhere the user header is ignored and the client IP is used.
func clientKey(r *http.Request) string {
	if user := userID(r); user != "" {
		return "user:" + user
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return "ip:" + ip
}

func RateLimitMiddleware(limiter *RateLimiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, wait := limiter.Reserve(clientKey(r))
		if !ok {
			seconds := int(math.Ceil(wait.Seconds()))
			w.Header().Set("Retry-After", strconv.Itoa(max(seconds, 1)))
			errorf(w, http.StatusTooManyRequests, "Rate limits exceeded, please try again later.")
			return
		}

		next.ServeHTTP(w, r)
	})
}
