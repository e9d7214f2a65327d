// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"domainguard/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	// Health checks if the underlying storage is reachable.
	Health(ctx context.Context) error
}

// DomainRepository stores organization domains. Every lookup is scoped to an
// organization so one tenant can never address another tenant's domain.
type DomainRepository interface {
	Repository

	ListDomains(ctx context.Context, orgID string) ([]domain.OrganizationDomain, error)
	// GetDomain returns a not found error when the domain does not exist
	// or belongs to a different organization.
	GetDomain(ctx context.Context, orgID, domainID string) (*domain.OrganizationDomain, error)
	CreateDomain(ctx context.Context, d *domain.OrganizationDomain) (*domain.OrganizationDomain, error)
	DeleteDomain(ctx context.Context, orgID, domainID string) error
}

// SessionRepository resolves session tokens into auth objects.
type SessionRepository interface {
	Repository

	// GetAuthBySessionToken returns the auth object for an active session,
	// including the membership of its active organization when one is set.
	// Unknown, revoked or expired tokens yield a not found error.
	GetAuthBySessionToken(ctx context.Context, token string) (*domain.AuthObject, error)
}

// Store is the composite repository the server is wired with.
type Store interface {
	DomainRepository
	SessionRepository
}
