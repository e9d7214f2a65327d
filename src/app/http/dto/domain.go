package dto

import (
	"time"

	"domainguard/src/core/domain"
	"domainguard/src/core/usecase"
)

// CreateDomainRequest adds a domain to the active organization.
type CreateDomainRequest struct {
	Name           string `json:"name" binding:"required"`
	EnrollmentMode string `json:"enrollment_mode"`
}

// ToInput converts the request to the use case input.
func (r *CreateDomainRequest) ToInput() usecase.AddDomainInput {
	return usecase.AddDomainInput{
		Name:           r.Name,
		EnrollmentMode: domain.EnrollmentMode(r.EnrollmentMode),
	}
}

// DomainResponse is the public shape of an organization domain.
type DomainResponse struct {
	Object         string    `json:"object"`
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	EnrollmentMode string    `json:"enrollment_mode"`
	Verified       bool      `json:"verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DomainFromEntity converts a domain entity.
func DomainFromEntity(d *domain.OrganizationDomain) DomainResponse {
	return DomainResponse{
		Object:         "organization_domain",
		ID:             d.ID,
		OrganizationID: d.OrganizationID,
		Name:           d.Name,
		EnrollmentMode: string(d.EnrollmentMode),
		Verified:       d.Verified,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// DomainsFromEntities converts a list, never returning nil.
func DomainsFromEntities(ds []domain.OrganizationDomain) []DomainResponse {
	out := make([]DomainResponse, 0, len(ds))
	for i := range ds {
		out = append(out, DomainFromEntity(&ds[i]))
	}
	return out
}

// DeletedObjectResponse acknowledges a deletion.
type DeletedObjectResponse struct {
	Object  string `json:"object"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Deleted bool   `json:"deleted"`
}

// DeletedDomain converts a removal result.
func DeletedDomain(r *usecase.RemovedDomain) DeletedObjectResponse {
	return DeletedObjectResponse{
		Object:  "organization_domain",
		ID:      r.ID,
		Name:    r.Name,
		Deleted: true,
	}
}

// AuthResponse is the public shape of an auth object.
type AuthResponse struct {
	SessionID      string   `json:"session_id"`
	UserID         string   `json:"user_id"`
	OrgID          string   `json:"org_id,omitempty"`
	OrgRole        string   `json:"org_role,omitempty"`
	OrgPermissions []string `json:"org_permissions,omitempty"`
}

// AuthFromEntity converts an auth object.
func AuthFromEntity(a *domain.AuthObject) AuthResponse {
	return AuthResponse{
		SessionID:      a.SessionID,
		UserID:         a.UserID,
		OrgID:          a.OrgID,
		OrgRole:        a.OrgRole,
		OrgPermissions: a.OrgPermissions,
	}
}
