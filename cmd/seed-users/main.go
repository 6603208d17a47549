package main

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"toolhub_backend/internal/config"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
	"toolhub_backend/internal/seeding"
)

// seed-users provisions accounts from a JSON file. Existing accounts are
// skipped, bad rows are reported, and the run never stops on one failure.
//
// The exit status only reflects configuration and infrastructure failures
// (missing environment, unreachable database, unreadable seed file).
// Per-row failures are part of a normal run: they are tallied, printed,
// and exit 0.
//
// Required environment:
//
//	DATABASE_URL    Postgres DSN
//	SEED_USERS_FILE path to a JSON array of {email, name, password, role}
func main() {
	env, err := config.RequireEnv("DATABASE_URL", "SEED_USERS_FILE")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(env["DATABASE_URL"]), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(&models.User{}, &models.RefreshToken{}); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	users, err := seeding.LoadSeedFile(env["SEED_USERS_FILE"])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	seeder := seeding.NewSeeder(repositories.NewUserRepository(db))
	result := seeder.Seed(users)

	fmt.Printf("Seeding finished: %d total, %d created, %d skipped, %d errors\n",
		result.Total, result.Success, result.Skipped, len(result.Errors))
	for _, seedErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", seedErr.Email, seedErr.Reason)
	}
}
