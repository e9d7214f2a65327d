package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"domainguard/src/core/usecase"
)

// GuardOutcomeKey is the context key holding the guard's decision, for logging.
const GuardOutcomeKey = "guard_outcome"

const (
	htmxRequestHeader  = "HX-Request"
	htmxRedirectHeader = "HX-Redirect"
	htmxRefreshHeader  = "HX-Refresh"
)

// Protector turns Guard decisions into gin responses.
type Protector struct {
	guard *usecase.Guard
	pages ErrorPages
}

// NewProtector creates a Protector. pages may be nil for JSON-only routers.
func NewProtector(guard *usecase.Guard, pages ErrorPages) *Protector {
	return &Protector{guard: guard, pages: pages}
}

// Require guards the following handlers with req; nil req only requires a
// signed-in user. At most one ProtectOptions is honoured.
//
// Redirects answer 307, or 200 with HX-Redirect for HTMX requests so the
// browser navigates instead of swapping the sign-in page into a fragment.
// A not-found answer to an HTMX fragment request also carries HX-Refresh:
// htmx never swaps a 404, so the page reloads and is guarded as a page
// request instead.
func (p *Protector) Require(req usecase.Requirement, opts ...usecase.ProtectOptions) gin.HandlerFunc {
	var o usecase.ProtectOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	return func(c *gin.Context) {
		out := p.guard.Protect(c.Request, GetAuth(c), req, o)
		c.Set(GuardOutcomeKey, out.Kind.String())

		switch out.Kind {
		case usecase.OutcomeAllow:
			c.Set(AuthKey, out.Auth)
			c.Next()
		case usecase.OutcomeRedirect:
			redirect(c, out.RedirectURL)
			c.Abort()
		default:
			if isHTMX(c) && !usecase.IsPageRequest(c.Request) {
				c.Header(htmxRefreshHeader, "true")
			}
			renderNotFound(c, p.pages)
			c.Abort()
		}
	}
}

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader(htmxRequestHeader), "true")
}

func redirect(c *gin.Context, location string) {
	if isHTMX(c) {
		c.Header(htmxRedirectHeader, location)
		c.Status(http.StatusOK)
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, location)
}
