package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/artur/glowing-lamp/internal/database/models"
	"github.com/google/uuid"
)

// CredentialStore is what the handlers depend on, so tests can
// swap in an in-memory fake.
type CredentialStore interface {
	Store(userID int64, site, cookies string) error
	Materialize(userID int64, site string) (string, error)
}

// CredentialRepository handles per-user cookie persistence
type CredentialRepository struct {
	db      *sql.DB
	tempDir string
}

// NewCredentialRepository creates a new CredentialRepository.
// Materialized cookie files are written under tempDir.
func NewCredentialRepository(db *sql.DB, tempDir string) *CredentialRepository {
	return &CredentialRepository{db: db, tempDir: tempDir}
}

// Store saves cookies for a (user, site) pair. Storing again for the
// same pair replaces the previous cookies, it never errors on an
// existing row.
func (r *CredentialRepository) Store(userID int64, site, cookies string) error {
	query := `
		INSERT INTO credentials (user_id, site, cookies, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(user_id, site) DO UPDATE SET
			cookies = excluded.cookies,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, userID, site, cookies, time.Now()); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}

	return nil
}

// Get retrieves the stored credential for a (user, site) pair, nil
// when none exists
func (r *CredentialRepository) Get(userID int64, site string) (*models.Credential, error) {
	query := `SELECT user_id, site, cookies, updated_at FROM credentials WHERE user_id = ? AND site = ?`

	cred := &models.Credential{}
	err := r.db.QueryRow(query, userID, site).Scan(
		&cred.UserID,
		&cred.Site,
		&cred.Cookies,
		&cred.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	return cred, nil
}

// Materialize looks up stored cookies and writes them to a uniquely
// named file for one-time use by the extractor, returning its path.
// Absence is not an error: an empty path means the user never
// uploaded cookies for this site. The caller owns the returned file
// and must remove it when done.
func (r *CredentialRepository) Materialize(userID int64, site string) (string, error) {
	var cookies string
	query := `SELECT cookies FROM credentials WHERE user_id = ? AND site = ?`

	err := r.db.QueryRow(query, userID, site).Scan(&cookies)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get credential: %w", err)
	}

	name := fmt.Sprintf("cookies-%d-%s-%s.txt", userID, site, uuid.NewString())
	path := filepath.Join(r.tempDir, name)

	if err := os.WriteFile(path, []byte(cookies), 0o600); err != nil {
		return "", fmt.Errorf("failed to write cookie file: %w", err)
	}

	return path, nil
}
