package domain

import "slices"

// Well-known organization roles.
const (
	RoleOrgAdmin  = "org:admin"
	RoleOrgMember = "org:member"
)

// System permissions for organization domains.
const (
	PermissionDomainsRead   = "org:sys_domains:read"
	PermissionDomainsManage = "org:sys_domains:manage"
)

// CheckAuthorizationParams names either a permission or a role to check
// against the active organization membership. When both are set the
// permission wins.
type CheckAuthorizationParams struct {
	Permission string `json:"permission,omitempty"`
	Role       string `json:"role,omitempty"`
}

// HasFunc is the shape of AuthObject.Has, handed to custom predicates.
type HasFunc func(CheckAuthorizationParams) bool

// AuthObject is the resolved authentication state of a request.
// UserID is non-empty iff the request is signed in.
type AuthObject struct {
	SessionID      string   `json:"session_id,omitempty"`
	UserID         string   `json:"user_id,omitempty"`
	OrgID          string   `json:"org_id,omitempty"`
	OrgRole        string   `json:"org_role,omitempty"`
	OrgPermissions []string `json:"org_permissions,omitempty"`
}

// SignedOut returns an AuthObject carrying no identity.
func SignedOut() *AuthObject {
	return &AuthObject{}
}

// IsSignedIn reports whether a user is attached.
func (a *AuthObject) IsSignedIn() bool {
	return a != nil && a.UserID != ""
}

// HasActiveOrganization reports whether the session has an active organization.
func (a *AuthObject) HasActiveOrganization() bool {
	return a.IsSignedIn() && a.OrgID != ""
}

// Has checks a permission or role against the active organization.
// Without a signed-in user or an active organization it is always false.
func (a *AuthObject) Has(params CheckAuthorizationParams) bool {
	if !a.HasActiveOrganization() {
		return false
	}
	switch {
	case params.Permission != "":
		return slices.Contains(a.OrgPermissions, params.Permission)
	case params.Role != "":
		return a.OrgRole == params.Role
	default:
		return false
	}
}
