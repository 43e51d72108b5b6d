// Command mkadmin creates or resets the admin account. There is no
// web-facing registration, so this is the only way credentials enter the
// system.
package main

import (
	"fmt"
	"os"
	"strings"

	"porthmadog-rfc/internal/model"
	"porthmadog-rfc/internal/store"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 12
	bcryptCost        = 12
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: mkadmin <username> <password>")
		os.Exit(2)
	}
	username := strings.TrimSpace(os.Args[1])
	password := os.Args[2]
	if username == "" {
		fmt.Fprintln(os.Stderr, "mkadmin: username must not be empty")
		os.Exit(2)
	}
	if len(password) < minPasswordLength {
		fmt.Fprintf(os.Stderr, "mkadmin: password must be at least %d characters\n", minPasswordLength)
		os.Exit(2)
	}

	_ = godotenv.Load(".env", ".env.local")

	appStore, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkadmin: %v\n", err)
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkadmin: hash password: %v\n", err)
		os.Exit(1)
	}

	user, err := appStore.UpsertAdmin(model.AdminUser{
		Username:     username,
		PasswordHash: string(hash),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "mkadmin: save admin: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("admin %q ready (id %d)\n", user.Username, user.ID)
}

func openStore() (store.Store, error) {
	if dsn := strings.TrimSpace(os.Getenv("POSTGRES_DSN")); dsn != "" {
		return store.NewPostgresStore(dsn, store.PostgresOptions{
			MigrationsDir: os.Getenv("POSTGRES_MIGRATIONS_DIR"),
		})
	}
	if dbPath := strings.TrimSpace(os.Getenv("DB_PATH")); dbPath != "" {
		return store.NewSQLiteStore(dbPath, store.SQLiteOptions{
			MigrationsDir: os.Getenv("DB_MIGRATIONS_DIR"),
		})
	}
	return nil, fmt.Errorf("no database configured: set POSTGRES_DSN or DB_PATH")
}
