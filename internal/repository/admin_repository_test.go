package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAdminTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "app.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, db.Close())
	})

	_, err = db.Exec(`CREATE TABLE admin (id INTEGER PRIMARY KEY, password_hash TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func TestAdminRepo_PasswordHash(t *testing.T) {
	db := setupAdminTestDB(t)
	r := NewAdminRepository(db)
	ctx := context.Background()

	hash, err := r.PasswordHash(ctx)
	require.NoError(t, err)
	assert.Empty(t, hash, "no credential row yet")

	_, err = db.Exec(`INSERT INTO admin (password_hash) VALUES (?)`, "$2a$10$somehash")
	require.NoError(t, err)

	hash, err = r.PasswordHash(ctx)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$somehash", hash)
}
