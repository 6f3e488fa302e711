package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/expense_tracker/internal/core/ports/services"
	"github.com/SscSPs/expense_tracker/internal/middleware"
	"github.com/SscSPs/expense_tracker/internal/platform/config"
	"github.com/SscSPs/expense_tracker/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

const defaultRateLimit = "100-M"

type routeOptions struct {
	now func() time.Time
}

// RouteOption customizes RegisterRoutes.
type RouteOption func(*routeOptions)

// WithClock sets the clock used for "today" and "current month" defaults.
func WithClock(now func() time.Time) RouteOption {
	return func(o *routeOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
	opts ...RouteOption,
) {
	RegisterValidators()

	o := routeOptions{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, posthogClient, o)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	posthogClient *utils.PosthogClientWrapper,
	o routeOptions,
) {
	var authOpts []jwt.ParserOption
	if cfg.JWTIssuer != "" {
		authOpts = append(authOpts, jwt.WithIssuer(cfg.JWTIssuer))
	}

	v1 := r.Group("/api/v1",
		corsMiddleware(cfg),
		middleware.RateLimit(newLimiter(cfg.RateLimit)),
		middleware.AuthMiddleware(cfg.JWTSecret, authOpts...),
		middleware.ResolveUser(service.User),
		middleware.PosthogMiddleware(posthogClient),
	)

	loc := cfg.Location()

	registerMeRoutes(v1)
	registerCategoryRoutes(v1, service.Category)
	registerTransactionRoutes(v1, service.Transaction)
	registerBudgetRoutes(v1, service.Budget, loc, o.now)
	registerReportingRoutes(v1, service.Reporting)
	registerFxRoutes(v1, service.FxRate, loc, o.now)
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	return cors.New(corsCfg)
}

// newLimiter builds an in-memory limiter, falling back to the default rate on a bad format.
func newLimiter(formatted string) *limiter.Limiter {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		slog.Warn("Invalid rate limit, using default", slog.String("rate", formatted), slog.String("error", err.Error()))
		rate, _ = limiter.NewRateFromFormatted(defaultRateLimit)
	}
	return limiter.New(memory.NewStore(), rate)
}
