package seeding

import (
	"encoding/json"
	"fmt"
	"os"

	"toolhub_backend/internal/auth"
	"toolhub_backend/internal/models"
	"toolhub_backend/internal/repositories"
)

// SeedUser is one entry of the seed file consumed by the seed-users CLI.
type SeedUser struct {
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Password string          `json:"password"`
	Role     models.UserRole `json:"role"`
}

// SeedResult tallies a run. Every input row lands in exactly one bucket,
// so Success + Skipped + len(Errors) always equals Total.
type SeedResult struct {
	Total   int
	Success int
	Skipped int
	Errors  []SeedError
}

type SeedError struct {
	Email  string
	Reason string
}

type Seeder struct {
	userRepo repositories.UserRepository
}

func NewSeeder(userRepo repositories.UserRepository) *Seeder {
	return &Seeder{userRepo: userRepo}
}

// LoadSeedFile parses a JSON array of seed users.
func LoadSeedFile(path string) ([]SeedUser, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var users []SeedUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	return users, nil
}

// Seed processes the entries one at a time. An invalid or conflicting row
// is recorded and the run continues; an existing account is a skip, not an
// error, so re-running the same file is safe.
func (s *Seeder) Seed(users []SeedUser) *SeedResult {
	result := &SeedResult{Total: len(users)}

	for _, entry := range users {
		if reason := validateEntry(entry); reason != "" {
			result.Errors = append(result.Errors, SeedError{Email: entry.Email, Reason: reason})
			continue
		}

		_, err := s.userRepo.FindByEmail(entry.Email)
		if err == nil {
			result.Skipped++
			continue
		}
		if err != repositories.ErrUserNotFound {
			result.Errors = append(result.Errors, SeedError{Email: entry.Email, Reason: err.Error()})
			continue
		}

		hash, err := auth.HashPassword(entry.Password)
		if err != nil {
			result.Errors = append(result.Errors, SeedError{Email: entry.Email, Reason: err.Error()})
			continue
		}

		user := &models.User{
			Email:        entry.Email,
			Name:         entry.Name,
			PasswordHash: hash,
			Role:         entry.Role,
			Status:       models.UserStatusActive,
		}
		if err := s.userRepo.Create(user); err != nil {
			if err == repositories.ErrUserAlreadyExists {
				result.Skipped++
				continue
			}
			result.Errors = append(result.Errors, SeedError{Email: entry.Email, Reason: err.Error()})
			continue
		}

		result.Success++
	}

	return result
}

func validateEntry(entry SeedUser) string {
	if entry.Email == "" {
		return "email is required"
	}
	if entry.Name == "" {
		return "name is required"
	}
	if err := auth.ValidatePassword(entry.Password); err != nil {
		return err.Error()
	}
	if !models.ValidUserRole(entry.Role) {
		return fmt.Sprintf("invalid role %q", entry.Role)
	}
	return ""
}
