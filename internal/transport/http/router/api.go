package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"rp-market/internal/core/auth"
	"rp-market/internal/core/server"
	"rp-market/internal/domain"
	"rp-market/internal/transport/http/handler"
	mdw "rp-market/internal/transport/http/middleware"
)

type Options struct {
	Logger       *zap.Logger
	JWT          *auth.JWTer
	TokenCookie  string
	CORSOrigins  []string
	RPS          float64
	Burst        int
	MaxInFlight  int64
	MaxBodyBytes int64
	Timeout      time.Duration
	// LoginLimiter guards the credential endpoints; nil disables it.
	LoginLimiter gin.HandlerFunc
	// Metrics serves /metrics; defaults to the global prometheus registry.
	Metrics http.Handler
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.TokenCookie == "" {
		o.TokenCookie = "token"
	}
	if o.MaxInFlight <= 0 {
		o.MaxInFlight = 256
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = 1 << 20
	}
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
}

func NewAPIEngine(o Options, reg *Registry) *gin.Engine {
	o.defaults()
	lim := rate.Inf
	if o.RPS > 0 {
		lim = rate.Limit(o.RPS)
	}
	r := server.NewRouter(o.Logger, o.CORSOrigins)
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(lim, o.Burst),
		mdw.ConcurrencyLimit(o.MaxInFlight),
		mdw.MaxBodyBytes(o.MaxBodyBytes),
		mdw.Timeout(o.Timeout),
		mdw.Metrics(),
		mdw.AccessLog(o.Logger),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	metrics := o.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.GET("/metrics", gin.WrapH(metrics))

	public := r.Group("", mdw.OptionalAuth(o.JWT, o.TokenCookie))
	throttled := r.Group("")
	if o.LoginLimiter != nil {
		throttled.Use(o.LoginLimiter)
	}
	reg.MountAll(handler.Routes{
		Public:    public,
		Throttled: throttled,
		Authed:    r.Group("", mdw.AuthJWT(o.JWT, o.TokenCookie, "")),
		Admin:     r.Group("", mdw.AuthJWT(o.JWT, o.TokenCookie, domain.RoleAdmin)),
	})
	return r
}
