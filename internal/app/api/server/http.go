package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/fatflowers/storefront/docs"
	"github.com/fatflowers/storefront/internal/app/api/handlers"
	mw "github.com/fatflowers/storefront/internal/app/api/middleware"
	nh "github.com/fatflowers/storefront/internal/app/service/notification_handler"
	notificationlog "github.com/fatflowers/storefront/internal/app/service/notification_log"
	"github.com/fatflowers/storefront/internal/app/service/payment"
	"github.com/fatflowers/storefront/internal/app/service/preference"
	"github.com/fatflowers/storefront/internal/app/service/statistics"
	cfgpkg "github.com/fatflowers/storefront/pkg/config"
	metrics "github.com/fatflowers/storefront/pkg/metrics"
)

func newEngine(cfg *cfgpkg.Config) *gin.Engine {
	if cfg.Env != cfgpkg.EnvDev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	return r
}

type routeDeps struct {
	fx.In

	Log          *zap.SugaredLogger
	Cfg          *cfgpkg.Config
	NotifHandler *nh.NotificationHandler
	Hooks        *notificationlog.Service
	Payments     *payment.Service
	Preferences  *preference.Service
	Stats        *statistics.Service
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	log, cfg := d.Log, d.Cfg

	// Prometheus metrics
	if cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			MetricsList: []*metrics.Metric{metrics.MetricsBusinessProcess},
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return c.Request.URL.Path
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	// Public group: request logger + access log
	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	handlers.RegisterHealthRoutes(pub)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Storefront functions: CORS for browsers and provider callbacks
	fn := r.Group("/")
	fn.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(), mw.CORS(cfg.CORS))
	handlers.RegisterMPWebhookRoutes(fn, d.NotifHandler)

	callables := fn.Group("/")
	callables.Use(mw.NewRateLimiter(cfg.RateLimit).Handler())
	handlers.RegisterMPCallableRoutes(callables, d.Preferences)

	// Admin APIs
	apiV1 := r.Group("/api/v1")
	apiV1.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware())
	admin := apiV1.Group("/admin", mw.AdminAuthMiddleware(cfg.Admin.JWTSecret))
	handlers.RegisterAdminPaymentRoutes(admin, d.Payments, d.Hooks, d.NotifHandler, d.Stats)
	if cfg.Admin.JWTSecret == "" {
		log.Warnw("admin api disabled: admin.jwt_secret is empty")
	}
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	// outbound Mercado Pago calls are bounded by mercadopago.timeout; leave room for them
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      cfg.MercadoPago.Timeout + 30*time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
