// SPDX-License-Identifier: AGPL-3.0-only
package config

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/natterhq/natter/internal/database"
	"github.com/pressly/goose/v3"

	_ "github.com/lib/pq"
)

// AppConfig holds everything the server needs beyond the database handle.
type AppConfig struct {
	ListenAddr       string
	MaxClients       int
	JWTSecret        []byte
	TokenTTL         time.Duration
	SessionSecret    []byte
	DispatchInterval time.Duration
}

func Load() *AppConfig {
	cfg := &AppConfig{
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		MaxClients:       getEnvInt("MAX_CLIENTS", 256),
		TokenTTL:         getEnvDuration("TOKEN_TTL", 24*time.Hour),
		DispatchInterval: getEnvDuration("DISPATCH_INTERVAL", time.Minute),
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// Tokens issued under a generated secret do not survive a restart.
		cfg.JWTSecret = randomKey()
	} else {
		cfg.JWTSecret = []byte(secret)
	}

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		cfg.SessionSecret = randomKey()
	} else {
		cfg.SessionSecret = []byte(sessionSecret)
	}

	return cfg
}

func LoadDatabase() (*database.Queries, *sql.DB, error) {

	dbName := os.Getenv("POSTGRES_DB")
	dbUserName := os.Getenv("POSTGRES_USER")
	dbPassword := os.Getenv("POSTGRES_PASSWORD")
	dbHost := getEnv("POSTGRES_HOST", "db")

	if dbName == "" || dbUserName == "" || dbPassword == "" {
		return nil, nil, fmt.Errorf("Failed to load the environment configuration.")
	}

	connectDbUrl := fmt.Sprintf("postgres://%v:%v@%v:5432/%v?sslmode=disable", dbUserName, dbPassword, dbHost, dbName)

	db, err := sql.Open("postgres", connectDbUrl)
	if err != nil {
		return nil, nil, fmt.Errorf("Failed to connect to the DB. Error: %v", err)
	}

	migrationsDir := getEnv("MIGRATIONS_DIR", "./sql/schema")
	if err := goose.Up(db, migrationsDir); err != nil {
		return nil, nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	version, err := goose.EnsureDBVersion(db)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get DB version: %v", err)
	}
	fmt.Printf("Migrations applied successfully. Current DB version: %d\n", version)

	dbQueries := database.New(db)

	return dbQueries, db, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func randomKey() []byte {
	key := make([]byte, 32)
	rand.Read(key)
	return key
}
