package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"
)

// seedInitialData loads the starter rooms and trees for a fresh install.
// Runs when SEED_DATA=true; inserts are idempotent so re-running is safe.
func seedInitialData() error {
	dbHost := seedGetEnv("DB_HOST", "localhost")
	dbPort := seedGetEnv("DB_PORT", "5432")
	dbUser := seedGetEnv("DB_USER", "postgres")
	dbPassword := seedGetEnv("DB_PASSWORD", "")
	dbName := seedGetEnv("DB_NAME", "farmstay_db")
	dbSSLMode := seedGetEnv("DB_SSL_MODE", "disable")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	rooms := []struct {
		Name        string
		Slug        string
		Description string
		Capacity    int
		NightlyRate float64
	}{
		{"The Hayloft", "the-hayloft", "Converted barn loft with valley views", 2, 95},
		{"Orchard Cottage", "orchard-cottage", "Self-contained cottage beside the apple orchard", 4, 140},
		{"Shepherd's Hut", "shepherds-hut", "Cosy hut for two at the edge of the pasture", 2, 75},
	}

	for _, r := range rooms {
		_, err := db.Exec(`
			INSERT INTO rooms (name, slug, description, capacity, nightly_rate, is_published, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, true, now(), now())
			ON CONFLICT (slug) DO NOTHING`,
			r.Name, r.Slug, r.Description, r.Capacity, r.NightlyRate)
		if err != nil {
			return fmt.Errorf("failed to seed room %s: %w", r.Name, err)
		}
	}
	log.Printf("✅ Seeded %d rooms", len(rooms))

	trees := []struct {
		Name string
		Type string
	}{
		{"Old Bramley", "apple"},
		{"Conference Pair", "pear"},
		{"Victoria", "plum"},
		{"Morello", "cherry"},
	}

	for _, t := range trees {
		_, err := db.Exec(`
			INSERT INTO trees (name, type, status, created_at, updated_at)
			SELECT $1, $2, 'available', now(), now()
			WHERE NOT EXISTS (SELECT 1 FROM trees WHERE name = $1)`,
			t.Name, t.Type)
		if err != nil {
			return fmt.Errorf("failed to seed tree %s: %w", t.Name, err)
		}
	}
	log.Printf("✅ Seeded %d trees", len(trees))

	return nil
}

func seedGetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
