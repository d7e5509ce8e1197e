package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/khoahotran/cvhub/pkg/auth"
	"github.com/khoahotran/cvhub/pkg/logger"
)

func main() {
	log := logger.NewZapLogger("development")
	defer log.Sync()

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, use system environment variables")
	}

	dsn := os.Getenv("DB_DSN")
	email := strings.ToLower(strings.TrimSpace(os.Getenv("SEED_EMAIL")))
	password := os.Getenv("SEED_PASSWORD")
	firstName := envOr("SEED_FIRSTNAME", "Admin")
	lastName := envOr("SEED_LASTNAME", "User")

	if email == "" || password == "" {
		log.Fatal("SEED_EMAIL and SEED_PASSWORD are required", nil)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Fatal("cannot hash password", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatal("cannot connect DB", err)
	}
	defer pool.Close()

	now := time.Now().UTC()
	query := `
		INSERT INTO users (id, first_name, last_name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (email) DO UPDATE
		SET first_name = $2, last_name = $3, password_hash = $5, updated_at = $6
	`
	if _, err := pool.Exec(context.Background(), query, uuid.New(), firstName, lastName, email, hash, now); err != nil {
		log.Fatal("cannot add user", err)
	}

	log.Info("added or updated user successfully", zap.String("email", email))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
