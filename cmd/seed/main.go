package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/devhubhq/devhub-api/config"
	"github.com/devhubhq/devhub-api/pkg/helpers"
)

// Seeds a verified admin account and a starter tag vocabulary for local
// development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := strings.ToLower(envOr("SEED_ADMIN_EMAIL", "admin@devhub.local"))
	username := envOr("SEED_ADMIN_USERNAME", "admin")
	password := envOr("SEED_ADMIN_PASSWORD", "changeme123")

	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role, email_verified)
		VALUES ($1, $2, $3, 'Admin', TRUE)
		ON CONFLICT (lower(email)) DO UPDATE SET role = 'Admin', email_verified = TRUE
		RETURNING id
	`, username, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s email=%s\n", id, email)

	tags := []string{"go", "typescript", "python", "rust", "web", "cli", "library", "game"}
	for _, name := range tags {
		if _, err := db.Exec(`
			INSERT INTO tags (name) VALUES ($1)
			ON CONFLICT (lower(name)) DO NOTHING
		`, name); err != nil {
			log.Fatalf("failed to seed tag %q: %v", name, err)
		}
	}
	fmt.Printf("seeded %d starter tags\n", len(tags))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
