package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"domainguard/src/core/domain"
)

const domainIDPrefix = "dmn_"

func newDomainID() string {
	return domainIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

const domainColumns = `id, organization_id, name, enrollment_mode, verified, created_at, updated_at`

func scanDomain(row pgx.Row) (*domain.OrganizationDomain, error) {
	var d domain.OrganizationDomain
	if err := row.Scan(
		&d.ID, &d.OrganizationID, &d.Name, &d.EnrollmentMode, &d.Verified, &d.CreatedAt, &d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresRepository) ListDomains(ctx context.Context, orgID string) ([]domain.OrganizationDomain, error) {
	const q = `
		SELECT ` + domainColumns + `
		FROM organization_domains
		WHERE organization_id = $1
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.OrganizationDomain
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetDomain(ctx context.Context, orgID, domainID string) (*domain.OrganizationDomain, error) {
	const q = `
		SELECT ` + domainColumns + `
		FROM organization_domains
		WHERE organization_id = $1 AND id = $2
	`
	d, err := scanDomain(r.pool.QueryRow(ctx, q, orgID, domainID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("domain")
		}
		return nil, err
	}
	return d, nil
}

func (r *PostgresRepository) CreateDomain(ctx context.Context, d *domain.OrganizationDomain) (*domain.OrganizationDomain, error) {
	const q = `
		INSERT INTO organization_domains (id, organization_id, name, enrollment_mode, verified)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + domainColumns

	created, err := scanDomain(r.pool.QueryRow(ctx, q,
		newDomainID(), d.OrganizationID, d.Name, d.EnrollmentMode, d.Verified,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflictError("domain already claimed")
		}
		return nil, err
	}
	return created, nil
}

func (r *PostgresRepository) DeleteDomain(ctx context.Context, orgID, domainID string) error {
	const q = `
		DELETE FROM organization_domains
		WHERE organization_id = $1 AND id = $2
	`
	res, err := r.pool.Exec(ctx, q, orgID, domainID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.NewNotFoundError("domain")
	}
	return nil
}
