package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.uber.org/zap"

	resp "rp-market/internal/transport/http/response"
)

const limiterPrefix = "rp_market_limiter"

// NewLimiterStore uses redis when a client is given, memory otherwise.
func NewLimiterStore(ctx context.Context, rdb *redis.Client) (limiter.Store, error) {
	if rdb == nil {
		return memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: limiterPrefix}), nil
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return sredis.NewStoreWithOptions(rdb, limiter.StoreOptions{Prefix: limiterPrefix})
}

// PerIP throttles by client IP at a formatted rate such as "10-M".
func PerIP(store limiter.Store, formatted string, l *zap.Logger) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("parse rate %q: %w", formatted, err)
	}
	return mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			resp.Abort(c, http.StatusTooManyRequests, "too many attempts, try again later")
		}),
		mgin.WithErrorHandler(func(c *gin.Context, err error) {
			// fail open
			l.Warn("rate limiter store error", zap.Error(err))
			c.Next()
		}),
	), nil
}
