package usecase

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainguard/src/core/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pageRequest() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/organization/domains/dmn_1/remove?tab=domains", nil)
	r.Header.Set(HeaderSecFetchDest, "document")
	return r
}

func apiRequest() *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/v1/organization/domains", nil)
	r.Header.Set(HeaderAccept, "application/json")
	return r
}

func signedIn() *domain.AuthObject {
	return &domain.AuthObject{
		SessionID:      "sess_1",
		UserID:         "user_1",
		OrgID:          "org_1",
		OrgRole:        domain.RoleOrgAdmin,
		OrgPermissions: []string{domain.PermissionDomainsRead},
	}
}

func TestProtectSignedOut(t *testing.T) {
	g := NewGuard("/sign-in", discardLogger())

	tests := []struct {
		name string
		req  *http.Request
		opts ProtectOptions
		want Outcome
	}{
		{
			name: "override wins for page request",
			req:  pageRequest(),
			opts: ProtectOptions{RedirectURL: "/custom"},
			want: Outcome{Kind: OutcomeRedirect, RedirectURL: "/custom", Reason: ReasonUnauthenticated},
		},
		{
			name: "override wins for api request",
			req:  apiRequest(),
			opts: ProtectOptions{RedirectURL: "/custom"},
			want: Outcome{Kind: OutcomeRedirect, RedirectURL: "/custom", Reason: ReasonUnauthenticated},
		},
		{
			name: "page request goes to sign in",
			req:  pageRequest(),
			want: Outcome{Kind: OutcomeRedirect, RedirectURL: "/sign-in", Reason: ReasonUnauthenticated},
		},
		{
			name: "api request is not found",
			req:  apiRequest(),
			want: Outcome{Kind: OutcomeNotFound, Reason: ReasonUnauthenticated},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, auth := range []*domain.AuthObject{nil, domain.SignedOut()} {
				got := g.Protect(tt.req, auth, nil, tt.opts)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestProtectSignedOutIgnoresRequirement(t *testing.T) {
	g := NewGuard("/sign-in", discardLogger())
	called := false
	pred := Predicate(func(domain.HasFunc) bool {
		called = true
		return true
	})

	got := g.Protect(apiRequest(), domain.SignedOut(), pred, ProtectOptions{})

	assert.Equal(t, OutcomeNotFound, got.Kind)
	assert.False(t, called, "predicate must not run for signed-out requests")
}

func TestProtectSignedInWithoutRequirementReturnsAuth(t *testing.T) {
	g := NewGuard("/sign-in", discardLogger())
	auth := signedIn()

	for _, req := range []Requirement{nil, Predicate(nil)} {
		got := g.Protect(apiRequest(), auth, req, ProtectOptions{})
		require.Equal(t, OutcomeAllow, got.Kind)
		assert.Same(t, auth, got.Auth)
	}
}

func TestProtectSignedInRequirements(t *testing.T) {
	g := NewGuard("/sign-in", discardLogger())

	tests := []struct {
		name string
		req  Requirement
		opts ProtectOptions
		want OutcomeKind
		url  string
	}{
		{name: "predicate true", req: Predicate(func(domain.HasFunc) bool { return true }), want: OutcomeAllow},
		{name: "predicate false", req: Predicate(func(domain.HasFunc) bool { return false }), want: OutcomeNotFound},
		{
			name: "predicate false with override",
			req:  Predicate(func(domain.HasFunc) bool { return false }),
			opts: ProtectOptions{RedirectURL: "/nope"},
			want: OutcomeRedirect,
			url:  "/nope",
		},
		{
			name: "predicate sees has",
			req: Predicate(func(has domain.HasFunc) bool {
				return has(domain.CheckAuthorizationParams{Role: domain.RoleOrgAdmin})
			}),
			want: OutcomeAllow,
		},
		{name: "permission held", req: Permission(domain.PermissionDomainsRead), want: OutcomeAllow},
		{name: "role held", req: Role(domain.RoleOrgAdmin), want: OutcomeAllow},
		{name: "permission missing", req: Permission(domain.PermissionDomainsManage), want: OutcomeNotFound},
		{
			name: "permission missing with override",
			req:  Permission(domain.PermissionDomainsManage),
			opts: ProtectOptions{RedirectURL: "/upgrade"},
			want: OutcomeRedirect,
			url:  "/upgrade",
		},
		{name: "empty check", req: Check{}, want: OutcomeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// A page request must not change the outcome once signed in.
			for _, r := range []*http.Request{apiRequest(), pageRequest()} {
				got := g.Protect(r, signedIn(), tt.req, tt.opts)
				assert.Equal(t, tt.want, got.Kind)
				assert.Equal(t, tt.url, got.RedirectURL)
				if tt.want == OutcomeAllow {
					assert.NotNil(t, got.Auth)
				} else {
					assert.Equal(t, ReasonUnauthorized, got.Reason)
				}
			}
		})
	}
}

func TestProtectSignInURLFor(t *testing.T) {
	g := NewGuard("https://accounts.example.com/sign-in", discardLogger())
	g.SignInURLFor = SignInURLWithReturn(g.SignInURL, "redirect_url")

	got := g.Protect(pageRequest(), nil, nil, ProtectOptions{})

	require.Equal(t, OutcomeRedirect, got.Kind)
	assert.Equal(t,
		"https://accounts.example.com/sign-in?redirect_url=%2Forganization%2Fdomains%2Fdmn_1%2Fremove%3Ftab%3Ddomains",
		got.RedirectURL,
	)
}

func TestNewGuardDefaultsSignInURL(t *testing.T) {
	g := NewGuard("", nil)

	got := g.Protect(pageRequest(), nil, nil, ProtectOptions{})

	assert.Equal(t, DefaultSignInURL, got.RedirectURL)
}

func TestOutcomeKindString(t *testing.T) {
	assert.Equal(t, "allow", OutcomeAllow.String())
	assert.Equal(t, "redirect", OutcomeRedirect.String())
	assert.Equal(t, "not_found", OutcomeNotFound.String())
	assert.Equal(t, "unknown", OutcomeKind(42).String())
}
