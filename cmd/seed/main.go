package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spendwise/backend/internal/database"
	"github.com/spendwise/backend/internal/models"
	"github.com/spendwise/backend/internal/services"
	"github.com/spendwise/backend/internal/store"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

type seedData struct {
	AccountName  string
	AccountEmail string
	Users        []seedUser
}

func defaultSeed() seedData {
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "ChangeMe123"
	}

	return seedData{
		AccountName:  "Default Organization",
		AccountEmail: "admin@admin.com",
		Users: []seedUser{
			{Name: "Default Admin", Email: "owner@admin.com", Password: password, Role: models.RoleAdmin},
			{Name: "Finance Admin", Email: "finance@admin.com", Password: password, Role: models.RoleAdmin},
		},
	}
}

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db := database.MustOpen(ctx)
	defer db.Close()

	if err := run(ctx, store.NewPostgresStore(db), services.NewBcryptHasher(10), defaultSeed()); err != nil {
		log.Fatalf("[SEED] Failed: %v", err)
	}
	log.Println("[SEED] Done")
}

// run creates the seed account and users. Existing records are kept; existing
// users are re-linked to the seed account.
func run(ctx context.Context, s store.Store, hasher services.PasswordHasher, data seedData) error {
	account, err := s.FindAccountByEmail(ctx, data.AccountEmail)
	switch {
	case errors.Is(err, store.ErrNotFound):
		account = &models.Account{Name: data.AccountName, Email: data.AccountEmail}
		if err := s.CreateAccount(ctx, account); err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		log.Printf("[SEED] Created account: %s", account.Name)
	case err != nil:
		return fmt.Errorf("find account: %w", err)
	default:
		log.Printf("[SEED] Account already exists: %s", account.Name)
	}

	for _, item := range data.Users {
		if !item.Role.Valid() {
			return fmt.Errorf("seed user %s: unknown role %q", item.Email, item.Role)
		}

		existing, err := s.FindUserByEmail(ctx, item.Email)
		if err == nil {
			if existing.AccountID != account.ID {
				existing.AccountID = account.ID
				if err := s.UpdateUser(ctx, existing); err != nil {
					return fmt.Errorf("link user %s: %w", item.Email, err)
				}
				log.Printf("[SEED] Linked existing user %s to account %s", item.Email, account.Name)
			} else {
				log.Printf("[SEED] User already exists: %s", item.Email)
			}
			continue
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("find user %s: %w", item.Email, err)
		}

		hash, err := hasher.Hash(item.Password)
		if err != nil {
			return err
		}
		user := &models.User{
			Name:      item.Name,
			Email:     item.Email,
			Password:  hash,
			Role:      item.Role,
			AccountID: account.ID,
		}
		if err := s.CreateUser(ctx, user); err != nil {
			return fmt.Errorf("create user %s: %w", item.Email, err)
		}
		log.Printf("[SEED] Created user %s linked to %s", user.Email, account.Name)
	}
	return nil
}
