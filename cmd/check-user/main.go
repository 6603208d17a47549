package main

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"toolhub_backend/internal/config"
	"toolhub_backend/internal/repositories"
)

// check-user prints the account state for one email: role, status, MFA
// enrollment, and whether a password change is pending. Used to diagnose
// login problems without opening a database shell.
//
// Required environment:
//
//	DATABASE_URL Postgres DSN
//	LOOKUP_EMAIL email of the account to inspect
func main() {
	env, err := config.RequireEnv("DATABASE_URL", "LOOKUP_EMAIL")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	db, err := gorm.Open(postgres.Open(env["DATABASE_URL"]), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	userRepo := repositories.NewUserRepository(db)
	user, err := userRepo.FindByEmail(env["LOOKUP_EMAIL"])
	if err != nil {
		if err == repositories.ErrUserNotFound {
			fmt.Fprintf(os.Stderr, "no account for %s\n", env["LOOKUP_EMAIL"])
		} else {
			fmt.Fprintf(os.Stderr, "lookup failed: %v\n", err)
		}
		os.Exit(1)
	}

	sessions, err := userRepo.CountUserRefreshTokens(user.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to count sessions: %v\n", err)
		os.Exit(1)
	}

	notificationRepo := repositories.NewNotificationRepository(db)
	unread, err := notificationRepo.UnreadCount(user.ID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to count unread notifications: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("id:                   %s\n", user.ID)
	fmt.Printf("email:                %s\n", user.Email)
	fmt.Printf("name:                 %s\n", user.Name)
	fmt.Printf("role:                 %s\n", user.Role)
	fmt.Printf("status:               %s\n", user.Status)
	fmt.Printf("mfa_enabled:          %t\n", user.MFAEnabled)
	fmt.Printf("must_change_password: %t\n", user.MustChangePassword)
	fmt.Printf("active_sessions:      %d\n", sessions)
	fmt.Printf("unread_notifications: %d\n", unread)
	fmt.Printf("created_at:           %s\n", user.CreatedAt.Format("2006-01-02 15:04:05"))
}
