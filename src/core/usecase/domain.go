package usecase

import (
	"context"
	"log/slog"

	"domainguard/src/core/domain"
	"domainguard/src/core/ports"
)

// DomainService manages the verified-domain list of an organization.
type DomainService struct {
	repo ports.DomainRepository
	log  *slog.Logger
}

// NewDomainService creates a new DomainService.
func NewDomainService(repo ports.DomainRepository, log *slog.Logger) *DomainService {
	return &DomainService{repo: repo, log: log}
}

// AddDomainInput is the input for AddDomain.
type AddDomainInput struct {
	Name           string
	EnrollmentMode domain.EnrollmentMode
}

// RemovedDomain describes a domain as it was fetched right before deletion.
type RemovedDomain struct {
	ID   string
	Name string
}

func requireOrg(auth *domain.AuthObject) (string, error) {
	if !auth.IsSignedIn() {
		return "", domain.NewUnauthorizedError("sign in required")
	}
	if auth.OrgID == "" {
		return "", domain.NewNotFoundError("organization")
	}
	return auth.OrgID, nil
}

// ListDomains lists the domains of the active organization.
func (s *DomainService) ListDomains(ctx context.Context, auth *domain.AuthObject) ([]domain.OrganizationDomain, error) {
	orgID, err := requireOrg(auth)
	if err != nil {
		return nil, err
	}
	return s.repo.ListDomains(ctx, orgID)
}

// GetDomain fetches one domain of the active organization.
func (s *DomainService) GetDomain(ctx context.Context, auth *domain.AuthObject, domainID string) (*domain.OrganizationDomain, error) {
	orgID, err := requireOrg(auth)
	if err != nil {
		return nil, err
	}
	if domainID == "" {
		return nil, domain.NewValidationError("id", "cannot be empty")
	}
	return s.repo.GetDomain(ctx, orgID, domainID)
}

// AddDomain claims a new domain for the active organization.
func (s *DomainService) AddDomain(ctx context.Context, auth *domain.AuthObject, in AddDomainInput) (*domain.OrganizationDomain, error) {
	orgID, err := requireOrg(auth)
	if err != nil {
		return nil, err
	}
	name, err := domain.NormalizeDomainName(in.Name)
	if err != nil {
		return nil, err
	}
	mode := in.EnrollmentMode
	if mode == "" {
		mode = domain.EnrollmentManualInvitation
	}
	if !mode.Valid() {
		return nil, domain.NewValidationError("enrollment_mode", "unknown enrollment mode")
	}

	created, err := s.repo.CreateDomain(ctx, &domain.OrganizationDomain{
		OrganizationID: orgID,
		Name:           name,
		EnrollmentMode: mode,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("organization domain added",
		"org_id", orgID,
		"domain_id", created.ID,
		"name", created.Name,
		"user_id", auth.UserID,
	)
	return created, nil
}

// RemoveDomain deletes a domain of the active organization. The returned
// RemovedDomain is a copy taken before deletion, so its Name stays valid
// whatever the stored record looks like afterwards.
func (s *DomainService) RemoveDomain(ctx context.Context, auth *domain.AuthObject, domainID string) (*RemovedDomain, error) {
	d, err := s.GetDomain(ctx, auth, domainID)
	if err != nil {
		return nil, err
	}
	removed := &RemovedDomain{ID: d.ID, Name: d.Name}

	if err := s.repo.DeleteDomain(ctx, auth.OrgID, removed.ID); err != nil {
		return nil, err
	}
	s.log.Info("organization domain removed",
		"org_id", auth.OrgID,
		"domain_id", removed.ID,
		"name", removed.Name,
		"user_id", auth.UserID,
	)
	return removed, nil
}
