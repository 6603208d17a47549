package main

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"toolhub_backend/internal/auth"
	"toolhub_backend/internal/config"
	"toolhub_backend/internal/repositories"
)

// reset-password force-sets a new password for one account and revokes its
// sessions. The account is flagged to change the password on next login.
//
// Required environment:
//
//	DATABASE_URL Postgres DSN
//	RESET_EMAIL  email of the account
//	NEW_PASSWORD the replacement password, at least 8 characters
func main() {
	env, err := config.RequireEnv("DATABASE_URL", "RESET_EMAIL", "NEW_PASSWORD")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := auth.ValidatePassword(env["NEW_PASSWORD"]); err != nil {
		fmt.Fprintf(os.Stderr, "invalid password: %v\n", err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(env["DATABASE_URL"]), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	userRepo := repositories.NewUserRepository(db)
	user, err := userRepo.FindByEmail(env["RESET_EMAIL"])
	if err != nil {
		if err == repositories.ErrUserNotFound {
			fmt.Fprintf(os.Stderr, "no account for %s\n", env["RESET_EMAIL"])
		} else {
			fmt.Fprintf(os.Stderr, "lookup failed: %v\n", err)
		}
		os.Exit(1)
	}

	hash, err := auth.HashPassword(env["NEW_PASSWORD"])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	if err := userRepo.UpdatePassword(user.ID, hash, true); err != nil {
		fmt.Fprintf(os.Stderr, "failed to update password: %v\n", err)
		os.Exit(1)
	}
	if err := userRepo.DeleteUserRefreshTokens(user.ID); err != nil {
		fmt.Fprintf(os.Stderr, "failed to revoke sessions: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("password reset for %s, sessions revoked, change required on next login\n", user.Email)
}
