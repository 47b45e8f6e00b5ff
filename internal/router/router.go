package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/companies/internal/auth"
	"github.com/monocle-dev/companies/internal/handlers"
	"github.com/monocle-dev/companies/internal/middleware"
	"github.com/monocle-dev/companies/internal/models"
	"github.com/monocle-dev/companies/internal/repository"
	"github.com/monocle-dev/companies/internal/services"
	log "github.com/sirupsen/logrus"
)

// Dependencies are the long-lived values the routes are built from. Revoker,
// Checker, Hub, Metrics and AuthLimiter get defaults when left nil. Notifier
// receives change events alongside the websocket hub and is optional.
type Dependencies struct {
	Store          *repository.Store
	Tokens         *auth.TokenService
	Revoker        auth.Revoker
	Checker        auth.RoleChecker
	Hub            *handlers.Hub
	Notifier       services.Notifier
	Metrics        *middleware.Metrics
	AuthLimiter    *middleware.RateLimiter
	AllowedOrigins []string
	// TrustedProxies may set X-Forwarded-For. Empty trusts no proxy, so the
	// rate limiter keys on the TCP peer.
	TrustedProxies []string
}

func (d *Dependencies) defaults() {
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if d.Revoker == nil {
		d.Revoker = auth.NopRevoker{}
	}
	if d.Checker == nil {
		d.Checker = auth.ClaimRoleChecker{}
	}
	if d.Hub == nil {
		d.Hub = handlers.NewHub(d.AllowedOrigins)
	}
	if d.Metrics == nil {
		d.Metrics = middleware.NewMetrics("companies")
	}
	if d.AuthLimiter == nil {
		d.AuthLimiter = middleware.NewRateLimiter(5, 10)
	}
}

func NewRouter(deps Dependencies) *gin.Engine {
	deps.defaults()

	r := gin.New()

	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		log.WithError(err).Error("Invalid trusted proxies, trusting none")
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(deps.Metrics.MetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	store := deps.Store
	notifier := services.Notifiers(deps.Hub, deps.Notifier)

	authHandler := handlers.NewAuthHandler(services.NewAuthService(store.Users, deps.Tokens, deps.Revoker))
	companyHandler := handlers.NewCompanyHandler(services.NewCompanyService(store.Companies, notifier))
	reviewHandler := handlers.NewReviewHandler(services.NewReviewService(store.Companies, store.Reviews, deps.Checker, notifier))
	accomplishmentHandler := handlers.NewAccomplishmentHandler(services.NewAccomplishmentService(store.Companies, store.Accomplishments, notifier))
	statsHandler := handlers.NewStatsHandler(services.NewStatsService(store.Stats))
	healthHandler := handlers.NewHealthHandler(store.Backend)

	authenticated := middleware.AuthMiddleware(deps.Tokens, deps.Revoker)
	adminOnly := middleware.RequireRole(deps.Checker, models.RoleAdmin)

	r.GET("/health", healthHandler.HealthCheck)
	r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	r.GET("/ws/companies/:id", deps.Hub.WebSocket)

	r.POST("/register", deps.AuthLimiter.Handler(), authHandler.Register)
	r.POST("/login", deps.AuthLimiter.Handler(), authHandler.Login)
	r.POST("/logout", authenticated, authHandler.Logout)
	r.GET("/profile", authenticated, authHandler.Profile)

	companies := r.Group("/companies")
	{
		companies.GET("", companyHandler.ListCompanies)
		companies.POST("", authenticated, adminOnly, companyHandler.CreateCompany)

		// Statistics
		companies.GET("/top-rated", statsHandler.TopRated)
		companies.GET("/review-counts", statsHandler.ReviewCounts)
		companies.GET("/engagement", statsHandler.Engagement)
		companies.GET("/:id/average-rating", statsHandler.AverageRating)
		companies.GET("/:id/rating-distribution", statsHandler.RatingDistribution)
		companies.GET("/:id/top-accomplishments", statsHandler.TopAccomplishments)

		companies.GET("/:id", companyHandler.GetCompany)
		companies.PUT("/:id", authenticated, adminOnly, companyHandler.UpdateCompany)
		companies.DELETE("/:id", authenticated, adminOnly, companyHandler.DeleteCompany)

		companies.GET("/:id/reviews", reviewHandler.ListReviews)
		companies.POST("/:id/reviews", authenticated, reviewHandler.CreateReview)

		companies.GET("/:id/accomplishments", accomplishmentHandler.ListAccomplishments)
		companies.POST("/:id/accomplishments", authenticated, adminOnly, accomplishmentHandler.CreateAccomplishment)
	}

	r.PUT("/reviews/:id", authenticated, reviewHandler.UpdateReview)
	r.DELETE("/reviews/:id", authenticated, adminOnly, reviewHandler.DeleteReview)

	r.PUT("/accomplishments/:id", authenticated, adminOnly, accomplishmentHandler.UpdateAccomplishment)
	r.DELETE("/accomplishments/:id", authenticated, adminOnly, accomplishmentHandler.DeleteAccomplishment)

	return r
}
