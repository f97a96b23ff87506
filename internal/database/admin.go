package database

import (
	"database/sql"
	_ "embed"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

//go:embed admin_schema.sql
var adminSchemaSQL string

// defaultAdminPassword seeds the credential row on first boot. The admin is
// expected to change it; the seeded value is only ever stored hashed.
const defaultAdminPassword = "1q2w3e"

// OpenAdmin opens the single-row credential database, creating and seeding it
// when empty.
func OpenAdmin(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("unable to open admin database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("unable to ping admin database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(adminSchemaSQL); err != nil {
		return nil, fmt.Errorf("failed to apply admin schema: %w", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM admin`).Scan(&count); err != nil {
		return nil, fmt.Errorf("failed to query admin table: %w", err)
	}

	if count == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash default password: %w", err)
		}
		if _, err := db.Exec(`INSERT INTO admin (password_hash) VALUES (?)`, string(hash)); err != nil {
			return nil, fmt.Errorf("failed to seed admin credential: %w", err)
		}
	}

	return db, nil
}
