package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainguard/src/core/domain"
	"domainguard/src/infra/config"
	"domainguard/src/infra/i18n"
	"domainguard/src/infra/logger"
)

type memoryStore struct {
	sessions map[string]*domain.AuthObject
	domains  map[string]*domain.OrganizationDomain
}

func (m *memoryStore) Health(context.Context) error { return nil }

func (m *memoryStore) GetAuthBySessionToken(_ context.Context, token string) (*domain.AuthObject, error) {
	if a, ok := m.sessions[token]; ok {
		return a, nil
	}
	return nil, domain.NewNotFoundError("session")
}

func (m *memoryStore) ListDomains(_ context.Context, orgID string) ([]domain.OrganizationDomain, error) {
	var out []domain.OrganizationDomain
	for _, d := range m.domains {
		if d.OrganizationID == orgID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memoryStore) GetDomain(_ context.Context, orgID, domainID string) (*domain.OrganizationDomain, error) {
	d, ok := m.domains[domainID]
	if !ok || d.OrganizationID != orgID {
		return nil, domain.NewNotFoundError("organization domain")
	}
	cp := *d
	return &cp, nil
}

func (m *memoryStore) CreateDomain(_ context.Context, d *domain.OrganizationDomain) (*domain.OrganizationDomain, error) {
	cp := *d
	cp.ID = "dmn_new"
	m.domains[cp.ID] = &cp
	return &cp, nil
}

func (m *memoryStore) DeleteDomain(_ context.Context, orgID, domainID string) error {
	if _, err := m.GetDomain(context.Background(), orgID, domainID); err != nil {
		return err
	}
	delete(m.domains, domainID)
	return nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.UI.ScriptURL = ""

	bundle, err := i18n.LoadEmbedded(cfg.Auth.DefaultLocale)
	require.NoError(t, err)

	store := &memoryStore{
		sessions: map[string]*domain.AuthObject{
			"tok_admin": {
				SessionID:      "sess_1",
				UserID:         "user_1",
				OrgID:          "org_1",
				OrgRole:        domain.RoleOrgAdmin,
				OrgPermissions: []string{domain.PermissionDomainsRead, domain.PermissionDomainsManage},
			},
			"tok_member": {
				SessionID:      "sess_2",
				UserID:         "user_2",
				OrgID:          "org_1",
				OrgRole:        domain.RoleOrgMember,
				OrgPermissions: []string{domain.PermissionDomainsRead},
			},
			"tok_no_org": {SessionID: "sess_3", UserID: "user_3"},
		},
		domains: map[string]*domain.OrganizationDomain{
			"dmn_1": {ID: "dmn_1", OrganizationID: "org_1", Name: "example.com", EnrollmentMode: domain.EnrollmentManualInvitation},
		},
	}
	return New(cfg, logger.Discard(), store, bundle)
}

func request(s *Server, method, target, token string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "__session", Value: token})
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestRemoveDomainFlow(t *testing.T) {
	s := newTestServer(t)
	path := "/organization/domains/dmn_1/remove"

	w := request(s, http.MethodGet, path, "", "Sec-Fetch-Dest", "document")
	assert.Equal(t, http.StatusTemporaryRedirect, w.Code)
	assert.Equal(t, "/sign-in?redirect_url=%2Forganization%2Fdomains%2Fdmn_1%2Fremove", w.Header().Get("Location"))

	w = request(s, http.MethodGet, path, "tok_member", "Sec-Fetch-Dest", "document")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Page not found")

	w = request(s, http.MethodGet, path, "tok_admin", "Sec-Fetch-Dest", "document")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hx-trigger="load"`)

	w = request(s, http.MethodGet, path, "tok_admin", "HX-Request", "true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "The email domain example.com will be removed.")

	w = request(s, http.MethodPost, path, "tok_admin", "HX-Request", "true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "example.com has been removed.")

	w = request(s, http.MethodGet, "/v1/organization/domains/dmn_1", "tok_admin")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPIGuards(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"health needs no session", http.MethodGet, "/health", "", http.StatusOK},
		{"me signed out", http.MethodGet, "/v1/me", "", http.StatusNotFound},
		{"me without organization", http.MethodGet, "/v1/me", "tok_no_org", http.StatusOK},
		{"list needs read", http.MethodGet, "/v1/organization/domains", "tok_no_org", http.StatusNotFound},
		{"member can list", http.MethodGet, "/v1/organization/domains", "tok_member", http.StatusOK},
		{"member cannot delete", http.MethodDelete, "/v1/organization/domains/dmn_1", "tok_member", http.StatusNotFound},
		{"admin can delete", http.MethodDelete, "/v1/organization/domains/dmn_1", "tok_admin", http.StatusOK},
		{"unknown route", http.MethodGet, "/v1/nothing", "tok_admin", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := request(s, tt.method, tt.target, tt.token, "Accept", "application/json")
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
