package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hireproof/hireproof-backend/internal/config"
	"github.com/hireproof/hireproof-backend/internal/handler"
	"github.com/hireproof/hireproof-backend/internal/middleware"
	"github.com/hireproof/hireproof-backend/internal/response"
	"github.com/hireproof/hireproof-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Enterprise *handler.EnterpriseHandler
	Test       *handler.TestHandler
	Candidate  *handler.CandidateHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	tokenService *service.TokenService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestID())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	public := router.Group("/api/v1")
	{
		public.POST("/enterprises", handlers.Enterprise.Register)
	}

	// ─── 2. Auth Group (Public) ────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/admin/login", handlers.Auth.AdminLogin)
		auth.POST("/candidate/login", handlers.Auth.CandidateLogin)
		auth.POST("/logout", handlers.Auth.Logout)
	}

	// ─── 3. Candidate Group (Candidate Token) ──────────────────────────
	candidate := router.Group("/api/v1/candidate")
	candidate.Use(middleware.RequireCandidate(tokenService))
	{
		candidate.GET("/paper", handlers.Candidate.GetPaper)
		candidate.POST("/submission", handlers.Candidate.SubmitTest)
		candidate.GET("/results", handlers.Candidate.GetResults)
	}

	// ─── 4. Admin Group (Admin Token) ──────────────────────────────────
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.RequireAdmin(tokenService))
	{
		admin.POST("/questions", handlers.Test.CreateQuestion)
		admin.GET("/questions", handlers.Test.ListQuestions)
		admin.POST("/tests", handlers.Test.CreateTest)
		admin.GET("/tests", handlers.Test.ListTests)
		admin.GET("/tests/:test_id/questions", handlers.Test.ListTestQuestions)
		admin.POST("/tests/:test_id/invitations", handlers.Test.InviteCandidates)
		admin.GET("/tests/:test_id/sessions", handlers.Test.ListSessions)
	}

	return router
}
