package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/hireproof/hireproof-backend/internal/config"
	"github.com/hireproof/hireproof-backend/internal/database"
	"github.com/hireproof/hireproof-backend/internal/logger"
	"github.com/hireproof/hireproof-backend/internal/model"
	"github.com/hireproof/hireproof-backend/internal/repository"
	"github.com/hireproof/hireproof-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Initialize Service ────────────────────────────────────────────
	enterpriseRepo := repository.NewEnterpriseRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	enterpriseService := service.NewEnterpriseService(enterpriseRepo, adminRepo, cfg.BcryptCost)

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	fmt.Println("=== Register New Enterprise ===")

	fmt.Print("Enter Enterprise Name: ")
	name, _ := reader.ReadString('\n')
	name = strings.TrimSpace(name)
	if name == "" {
		fmt.Println("Error: Enterprise name is required")
		return
	}

	fmt.Print("Enter Admin Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Println("Error: Admin username is required")
		return
	}

	fmt.Print("Enter Admin Password: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		fmt.Println("\nError reading password")
		return
	}
	password := string(bytePassword)
	fmt.Println()
	if len(password) < 8 {
		fmt.Println("Error: Password must be at least 8 characters")
		return
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	enterprise, admin, err := enterpriseService.Register(ctx, model.RegisterEnterpriseRequest{
		Name:          name,
		AdminUsername: username,
		AdminPassword: password,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to register enterprise")
	}

	fmt.Printf("\nSuccess! Enterprise '%s' (%s) created with admin '%s'\n",
		enterprise.Name, enterprise.ID, admin.Username)
}
