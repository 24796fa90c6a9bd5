package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	KeyPrefix         string
}

// windowScript increments the counter and arms its expiry in one step. A
// counter left without a TTL is re-armed so it cannot block a client forever.
var windowScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if redis.call("PTTL", KEYS[1]) < 0 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// fixedWindow counts requests per client in Redis. The counter expires one
// window after the client's first request.
type fixedWindow struct {
	client *redis.Client
	config RateLimitConfig
}

func (f fixedWindow) key(clientID string) string {
	return f.config.KeyPrefix + ":" + clientID
}

// hit records one request and returns the count so far in the window.
func (f fixedWindow) hit(ctx context.Context, clientID string) (int64, error) {
	return windowScript.Run(ctx, f.client, []string{f.key(clientID)}, f.config.Window.Milliseconds()).Int64()
}

// resetIn returns the time until the client's window closes.
func (f fixedWindow) resetIn(ctx context.Context, clientID string) time.Duration {
	ttl, err := f.client.TTL(ctx, f.key(clientID)).Result()
	if err != nil || ttl <= 0 {
		return f.config.Window
	}
	return ttl
}

// RateLimitMiddleware limits each presented cart session, or the remote
// address for requests that brought none, to RequestsPerWindow per Window.
// Redis errors fail open.
func RateLimitMiddleware(redisClient *redis.Client, config RateLimitConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	limiter := fixedWindow{client: redisClient, config: config}
	limit := strconv.Itoa(config.RequestsPerWindow)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientID, ok := ClientSessionID(r.Context())
			if !ok {
				clientID = r.RemoteAddr
			}

			count, err := limiter.hit(r.Context(), clientID)
			if err != nil {
				logger.Error("Rate limiter unavailable", zap.Error(err), zap.String("client_id", clientID))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", limit)

			if count > int64(config.RequestsPerWindow) {
				resetIn := limiter.resetIn(r.Context(), clientID)

				logger.Warn("Rate limit exceeded",
					zap.String("client_id", clientID),
					zap.Int64("count", count),
				)

				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(time.Now().Add(resetIn).Unix(), 10))
				w.Header().Set("Retry-After", strconv.Itoa(int(resetIn.Seconds())))

				RespondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(config.RequestsPerWindow)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}
