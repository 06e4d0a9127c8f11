package repository

import (
	"context"
	"database/sql"

	"github.com/vibast-solutions/ms-go-jobtrack/app/entity"
)

type VerificationTokenRepository struct {
	db *sql.DB
}

func NewVerificationTokenRepository(db *sql.DB) *VerificationTokenRepository {
	return &VerificationTokenRepository{db: db}
}

// Upsert stores the token, replacing any existing row for the same
// (email, purpose) pair. The pair carries a unique key, so issuing a new
// code invalidates the previous one atomically.
func (r *VerificationTokenRepository) Upsert(ctx context.Context, token *entity.VerificationToken) error {
	query := `
		INSERT INTO verification_tokens (email, code, purpose, created_at, updated_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			code = VALUES(code),
			updated_at = VALUES(updated_at),
			expires_at = VALUES(expires_at)
	`
	result, err := r.db.ExecContext(ctx, query,
		token.Email,
		token.Code,
		token.Purpose,
		token.CreatedAt,
		token.UpdatedAt,
		token.ExpiresAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	token.ID = uint64(id)
	return nil
}

func (r *VerificationTokenRepository) Find(ctx context.Context, email, code, purpose string) (*entity.VerificationToken, error) {
	query := `
		SELECT id, email, code, purpose, created_at, updated_at, expires_at
		FROM verification_tokens WHERE email = ? AND code = ? AND purpose = ?
	`
	token := &entity.VerificationToken{}
	err := r.db.QueryRowContext(ctx, query, email, code, purpose).Scan(
		&token.ID,
		&token.Email,
		&token.Code,
		&token.Purpose,
		&token.CreatedAt,
		&token.UpdatedAt,
		&token.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return token, nil
}
