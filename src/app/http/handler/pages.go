package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"domainguard/src/app/http/view"
	"domainguard/src/app/middleware"
	"domainguard/src/infra/i18n"
)

const htmxRequestHeader = "HX-Request"

// Site holds the links and assets shared by every page.
type Site struct {
	ProfileURL string
	ScriptURL  string
}

// Pages renders full HTML pages. It implements middleware.ErrorPages.
type Pages struct {
	bundle *i18n.Bundle
	site   Site
}

var _ middleware.ErrorPages = (*Pages)(nil)

// NewPages creates a new Pages.
func NewPages(bundle *i18n.Bundle, site Site) *Pages {
	return &Pages{bundle: bundle, site: site}
}

func (p *Pages) localizer(c *gin.Context) *i18n.Localizer {
	return p.bundle.Localizer(p.bundle.ResolveTag(c.Request))
}

func (p *Pages) page(c *gin.Context, loc *i18n.Localizer, title string, crumbs ...view.Breadcrumb) view.Page {
	return view.Page{
		Lang:        loc.Tag().String(),
		Title:       title,
		ScriptURL:   p.site.ScriptURL,
		RequestID:   middleware.GetRequestID(c),
		Breadcrumbs: crumbs,
	}
}

// NotFound renders the not-found page.
func (p *Pages) NotFound(c *gin.Context) {
	p.errorPage(c, http.StatusNotFound, "core.notFound.title", "core.notFound.message")
}

// InternalError renders the generic failure page.
func (p *Pages) InternalError(c *gin.Context) {
	p.errorPage(c, http.StatusInternalServerError, "core.error.title", "core.error.message")
}

func (p *Pages) errorPage(c *gin.Context, status int, titleKey, messageKey string) {
	loc := p.localizer(c)
	title := loc.T(titleKey)
	c.HTML(status, view.ErrorPageTemplate, view.ErrorPage{
		Page:    p.page(c, loc, title),
		Heading: title,
		Message: loc.T(messageKey),
	})
}

func isHTMX(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader(htmxRequestHeader), "true")
}
