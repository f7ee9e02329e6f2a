package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hireproof/hireproof-backend/internal/config"
	"github.com/hireproof/hireproof-backend/internal/database"
	"github.com/hireproof/hireproof-backend/internal/grader"
	"github.com/hireproof/hireproof-backend/internal/handler"
	"github.com/hireproof/hireproof-backend/internal/logger"
	"github.com/hireproof/hireproof-backend/internal/mailer"
	"github.com/hireproof/hireproof-backend/internal/repository"
	"github.com/hireproof/hireproof-backend/internal/router"
	"github.com/hireproof/hireproof-backend/internal/service"
	"github.com/hireproof/hireproof-backend/internal/validator"
	"github.com/hireproof/hireproof-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Hireproof Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	enterpriseRepo := repository.NewEnterpriseRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	testRepo := repository.NewTestRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	answerRepo := repository.NewCandidateAnswerRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.TokenExpiry)
	authService := service.NewAuthService(adminRepo, sessionRepo, tokenService)
	enterpriseService := service.NewEnterpriseService(enterpriseRepo, adminRepo, cfg.BcryptCost)
	mail := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	testService := service.NewTestService(questionRepo, testRepo, sessionRepo, mail)
	aiGrader := grader.NewOpenAIGrader(cfg.GraderBaseURL, cfg.GraderAPIKey, cfg.GraderModel, cfg.GraderTimeout)
	submissionService := service.NewSubmissionService(sessionRepo, questionRepo, answerRepo, aiGrader, cfg.PassThreshold)
	paperService := service.NewPaperService(sessionRepo, testRepo, questionRepo, rdb, cfg.PaperCacheTTL)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService, paperService, cfg.TokenExpiry),
		Enterprise: handler.NewEnterpriseHandler(enterpriseService),
		Test:       handler.NewTestHandler(testService),
		Candidate:  handler.NewCandidateHandler(paperService, submissionService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	expiryWorker := worker.NewExpiryWorker(sessionRepo, cfg.SweepInterval, log)
	go expiryWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(tokenService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
