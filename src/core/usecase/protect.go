package usecase

import (
	"log/slog"
	"net/http"
	"net/url"

	"domainguard/src/core/domain"
)

// DefaultSignInURL is used when a Guard is built without a sign-in URL.
const DefaultSignInURL = "/sign-in"

// OutcomeKind is the decision taken by Guard.Protect.
type OutcomeKind int

const (
	// OutcomeAllow passes the request through with the auth object.
	OutcomeAllow OutcomeKind = iota
	// OutcomeRedirect sends the client to Outcome.RedirectURL.
	OutcomeRedirect
	// OutcomeNotFound hides the resource behind a 404.
	OutcomeNotFound
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAllow:
		return "allow"
	case OutcomeRedirect:
		return "redirect"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Reasons attached to non-allow outcomes.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonUnauthorized    = "unauthorized"
)

// Outcome is what the caller must do with the request.
type Outcome struct {
	Kind        OutcomeKind
	Auth        *domain.AuthObject
	RedirectURL string
	Reason      string
}

// Requirement is an authorization requirement. It is either a Check
// (permission or role) or a Predicate over the Has function.
type Requirement interface {
	authorize(has domain.HasFunc) bool
}

// Check requires a permission or role in the active organization.
type Check domain.CheckAuthorizationParams

func (c Check) authorize(has domain.HasFunc) bool {
	return has(domain.CheckAuthorizationParams(c))
}

// Permission is shorthand for Check{Permission: permission}.
func Permission(permission string) Requirement {
	return Check{Permission: permission}
}

// Role is shorthand for Check{Role: role}.
func Role(role string) Requirement {
	return Check{Role: role}
}

// Predicate is a custom authorization rule built on top of Has.
type Predicate func(has domain.HasFunc) bool

func (p Predicate) authorize(has domain.HasFunc) bool {
	return p(has)
}

// ProtectOptions customise the failure behaviour of a single Protect call.
type ProtectOptions struct {
	// RedirectURL, when set, replaces both the sign-in redirect and the
	// not-found response.
	RedirectURL string
}

// Guard decides whether a request may proceed.
type Guard struct {
	// SignInURL is where unauthenticated page requests are sent.
	SignInURL string

	// SignInURLFor overrides SignInURL per request, e.g. to carry a return URL.
	SignInURLFor func(r *http.Request) string

	log *slog.Logger
}

// NewGuard creates a Guard redirecting to signInURL.
func NewGuard(signInURL string, log *slog.Logger) *Guard {
	if signInURL == "" {
		signInURL = DefaultSignInURL
	}
	return &Guard{SignInURL: signInURL, log: log}
}

// SignInURLWithReturn builds a SignInURLFor function that appends the
// requested path under param, so the sign-in page can send the user back.
func SignInURLWithReturn(signInURL, param string) func(r *http.Request) string {
	return func(r *http.Request) string {
		if param == "" || r == nil || r.URL == nil {
			return signInURL
		}
		u, err := url.Parse(signInURL)
		if err != nil {
			return signInURL
		}
		q := u.Query()
		q.Set(param, r.URL.RequestURI())
		u.RawQuery = q.Encode()
		return u.String()
	}
}

// Protect applies req (nil for "signed in is enough") to auth.
//
// Signed-out requests redirect to opts.RedirectURL when set, to the sign-in
// URL for page requests, and are not found otherwise. Signed-in requests that
// fail req redirect to opts.RedirectURL when set and are not found otherwise.
func (g *Guard) Protect(r *http.Request, auth *domain.AuthObject, req Requirement, opts ProtectOptions) Outcome {
	if p, ok := req.(Predicate); ok && p == nil {
		req = nil
	}

	var out Outcome
	switch {
	case !auth.IsSignedIn():
		out = g.unauthenticated(r, opts)
	case req == nil:
		out = Outcome{Kind: OutcomeAllow, Auth: auth}
	case req.authorize(auth.Has):
		out = Outcome{Kind: OutcomeAllow, Auth: auth}
	default:
		out = unauthorized(opts)
	}

	if g.log != nil && out.Kind != OutcomeAllow {
		path := ""
		if r != nil && r.URL != nil {
			path = r.URL.Path
		}
		g.log.Debug("request rejected by guard",
			"outcome", out.Kind.String(),
			"reason", out.Reason,
			"path", path,
		)
	}
	return out
}

func (g *Guard) unauthenticated(r *http.Request, opts ProtectOptions) Outcome {
	if opts.RedirectURL != "" {
		return Outcome{Kind: OutcomeRedirect, RedirectURL: opts.RedirectURL, Reason: ReasonUnauthenticated}
	}
	if IsPageRequest(r) {
		return Outcome{Kind: OutcomeRedirect, RedirectURL: g.signInURL(r), Reason: ReasonUnauthenticated}
	}
	return Outcome{Kind: OutcomeNotFound, Reason: ReasonUnauthenticated}
}

func unauthorized(opts ProtectOptions) Outcome {
	if opts.RedirectURL != "" {
		return Outcome{Kind: OutcomeRedirect, RedirectURL: opts.RedirectURL, Reason: ReasonUnauthorized}
	}
	return Outcome{Kind: OutcomeNotFound, Reason: ReasonUnauthorized}
}

func (g *Guard) signInURL(r *http.Request) string {
	if g.SignInURLFor != nil {
		if u := g.SignInURLFor(r); u != "" {
			return u
		}
	}
	if g.SignInURL == "" {
		return DefaultSignInURL
	}
	return g.SignInURL
}
