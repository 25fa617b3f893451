// Command create-user provisions an API user with a bcrypt-hashed
// password. Intended for bootstrapping and operator use, not exposed
// through the API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pwsupply/erp-api/internal/config"
	"github.com/pwsupply/erp-api/internal/database"
	"github.com/pwsupply/erp-api/internal/domain"
	"github.com/pwsupply/erp-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	email := flag.String("email", "", "user email (required)")
	name := flag.String("name", "", "display name (required)")
	password := flag.String("password", "", "password (required)")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		flag.Usage()
		return fmt.Errorf("email, name and password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        *email,
		DisplayName:  *name,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.Create(context.Background(), user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	fmt.Printf("User created: %s (%s)\n", user.Email, user.ID)
	return nil
}
