package repo

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"

	"github.com/jackc/pgx/v5"

	"domainguard/src/core/domain"
)

// HashSessionToken is how session tokens are stored; the raw token never
// reaches the database.
func HashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (r *PostgresRepository) GetAuthBySessionToken(ctx context.Context, token string) (*domain.AuthObject, error) {
	// The active organization only counts when the user is still a member of it.
	const q = `
		SELECT s.id,
		       s.user_id,
		       COALESCE(m.organization_id, ''),
		       COALESCE(m.role, ''),
		       COALESCE(m.permissions, '{}'::text[])
		FROM sessions s
		LEFT JOIN organization_memberships m
		       ON m.organization_id = s.active_organization_id
		      AND m.user_id = s.user_id
		WHERE s.token_hash = $1
		  AND s.revoked_at IS NULL
		  AND s.expires_at > now()
	`
	var a domain.AuthObject
	if err := r.pool.QueryRow(ctx, q, HashSessionToken(token)).Scan(
		&a.SessionID, &a.UserID, &a.OrgID, &a.OrgRole, &a.OrgPermissions,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("session")
		}
		return nil, err
	}
	return &a, nil
}
