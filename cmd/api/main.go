package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	limiter "github.com/ulule/limiter/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"

	"rp-market/internal/core/auth"
	"rp-market/internal/core/config"
	"rp-market/internal/core/database"
	"rp-market/internal/core/logger"
	"rp-market/internal/core/server"
	"rp-market/internal/core/session"
	"rp-market/internal/notify"
	"rp-market/internal/repo"
	"rp-market/internal/service"
	"rp-market/internal/task"
	"rp-market/internal/transport/http/handler"
	mdw "rp-market/internal/transport/http/middleware"
	"rp-market/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))

	log, cleanup := logger.FromConfig(cfg.Log, cfg.App)
	defer cleanup()
	undoStd := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undoStd()
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)
	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))
	if cfg.DB.AutoMigrate {
		if err := repo.AutoMigrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	jwter := &auth.JWTer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, TTL: cfg.JWT.TTL()}
	backdoorJWT := &auth.JWTer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer + "-backdoor", TTL: cfg.JWT.TTL()}

	sameSite := handler.ParseSameSite(cfg.Cookie.SameSite)
	cookies := handler.CookieConfig{
		Name:         cfg.Cookie.Name,
		BackdoorName: cfg.Cookie.BackdoorName,
		Secure:       cfg.Cookie.Secure,
		SameSite:     sameSite,
		Domain:       cfg.Cookie.Domain,
	}
	sessionKey := cfg.Session.Key
	if sessionKey == "" {
		sessionKey = cfg.JWT.Secret
	}
	sessions := session.New(session.Options{
		Name:     cfg.Session.Name,
		Key:      []byte(sessionKey),
		MaxAge:   int(cfg.JWT.TTL().Seconds()),
		Secure:   cfg.Cookie.Secure,
		SameSite: sameSite,
		Domain:   cfg.Cookie.Domain,
	})

	loginLimiter, err := mdw.PerIP(limiterStore(ctx, cfg, log), cfg.RateLimit.Login, log)
	if err != nil {
		log.Fatal("login limiter", zap.Error(err))
	}

	relay := notify.New(notify.Options{
		URL:         cfg.Notify.WebhookURL,
		MinInterval: time.Duration(cfg.Notify.MinIntervalMS) * time.Millisecond,
		QueueSize:   cfg.Notify.QueueSize,
		Timeout:     time.Duration(cfg.Notify.TimeoutSec) * time.Second,
	}, log)
	relay.Start(ctx)

	users := repo.NewUserRepo(db)
	products := repo.NewProductRepo(db)
	orders := repo.NewOrderRepo(db)
	backdoors := repo.NewBackDoorRepo(db)

	stats, err := task.NewStatsTask(task.Sources{
		UnreadOrders:    orders.CountUnread,
		VisibleProducts: products.CountVisible,
		ActiveBackdoors: backdoors.CountActive,
	}, prometheus.DefaultRegisterer, log)
	if err != nil {
		log.Fatal("stats task", zap.Error(err))
	}
	if err := stats.Start(ctx, cfg.Tasks.StatsSpec); err != nil {
		log.Fatal("stats task start", zap.Error(err))
	}

	reg := &router.Registry{}
	reg.Register(
		handler.NewAuthHandler(service.NewAuthService(users, jwter, log), cookies, sessions, log),
		handler.NewProductHandler(service.NewCatalogService(products, log)),
		handler.NewOrderHandler(service.NewOrderService(orders, products, relay, log)),
		handler.NewSaleHandler(service.NewSaleService(repo.NewSaleRepo(db))),
		handler.NewNoteHandler(service.NewNoteService(repo.NewNoteRepo(db))),
		handler.NewBackDoorHandler(service.NewBackDoorService(backdoors, backdoorJWT, log), cookies, backdoorJWT.TTL),
		handler.NewSettingHandler(service.NewSettingService(repo.NewSettingRepo(db))),
	)

	r := router.NewAPIEngine(router.Options{
		Logger:       log,
		JWT:          jwter,
		TokenCookie:  cfg.Cookie.Name,
		CORSOrigins:  cfg.App.CORS.AllowedOrigins,
		RPS:          cfg.RateLimit.RPS,
		Burst:        cfg.RateLimit.Burst,
		MaxInFlight:  cfg.App.HTTP.MaxConcurrent,
		MaxBodyBytes: cfg.App.HTTP.MaxBodyBytes,
		Timeout:      time.Duration(cfg.App.HTTP.HandlerTimeoutSec) * time.Second,
		LoginLimiter: loginLimiter,
	}, reg)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)
	if el, err := logger.ToStdLogger(log, zapcore.WarnLevel); err == nil {
		srv.ErrorLog = el
	}

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("health", baseURL+"/health"),
		zap.String("metrics", baseURL+"/metrics"),
	)

	go func() {
		if err := server.StartHTTP(srv, log); err != nil {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	if err := server.Shutdown(srv, 10*time.Second); err != nil {
		log.Warn("http shutdown", zap.Error(err))
	}
	stats.Stop()
	relay.Stop()
	stop()
	log.Info("api stopped gracefully")
}

// limiterStore prefers redis when configured and falls back to memory if it
// cannot be reached at startup.
func limiterStore(ctx context.Context, cfg *config.Config, l *zap.Logger) limiter.Store {
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	}
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	store, err := mdw.NewLimiterStore(pingCtx, rdb)
	if err == nil {
		if rdb != nil {
			l.Info("login limiter on redis", zap.String("addr", cfg.Redis.Addr))
		}
		return store
	}
	l.Warn("redis unavailable, login limiter falls back to memory", zap.Error(err))
	_ = rdb.Close()
	store, _ = mdw.NewLimiterStore(ctx, nil)
	return store
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
		Log:                l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
