// Command migrate applies the SQL migrations in migrations/ against the
// configured database.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/hireproof/hireproof-backend/internal/config"
)

func main() {
	dir := flag.String("path", "migrations", "directory holding the migration files")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+*dir, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open migrations: %v", err)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return
	}

	if err := run(m, args); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, args []string) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("up: %w", err)
		}
		fmt.Println("database is up to date")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("down: %w", err)
		}
		fmt.Println("all migrations rolled back")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
	case "force":
		if len(args) < 2 {
			return errors.New("force needs a version argument")
		}
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad version %q: %w", args[1], err)
		}
		if err := m.Force(v); err != nil {
			return fmt.Errorf("force: %w", err)
		}
		fmt.Printf("version forced to %d\n", v)
	default:
		usage()
	}
	return nil
}

func usage() {
	fmt.Println("usage: migrate [-path dir] <up|down|version|force <version>>")
}
