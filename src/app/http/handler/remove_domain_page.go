package handler

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"domainguard/src/app/http/view"
	"domainguard/src/app/middleware"
	"domainguard/src/core/domain"
	"domainguard/src/core/usecase"
	"domainguard/src/infra/i18n"
)

// RemoveDomainPageHandler serves the page that confirms and performs the
// removal of one organization domain.
//
// A full-page GET answers with a spinner that requests the confirmation
// fragment through htmx; that fragment is only rendered once the domain has
// been fetched. Every message shows the name captured by that fetch, so the
// success message survives the domain disappearing.
type RemoveDomainPageHandler struct {
	domains *usecase.DomainService
	pages   *Pages
	log     *slog.Logger
}

// NewRemoveDomainPageHandler creates a new RemoveDomainPageHandler.
func NewRemoveDomainPageHandler(domains *usecase.DomainService, pages *Pages, log *slog.Logger) *RemoveDomainPageHandler {
	return &RemoveDomainPageHandler{domains: domains, pages: pages, log: log}
}

// Show renders the loading shell, or the confirmation for htmx requests.
// GET /organization/domains/:id/remove
func (h *RemoveDomainPageHandler) Show(c *gin.Context) {
	loc := h.pages.localizer(c)
	data := h.data(c, loc)
	c.Writer.Header().Add("Vary", htmxRequestHeader)

	if !isHTMX(c) {
		data.State = view.StateLoading
		c.HTML(http.StatusOK, view.RemoveDomainPageTemplate, data)
		return
	}

	d, err := h.domains.GetDomain(c.Request.Context(), middleware.GetAuth(c), data.DomainID)
	if err != nil {
		h.fail(c, err)
		return
	}
	data.State = view.StateConfirm
	data.MessageLine1 = loc.T("organizationProfile.removeDomainPage.messageLine1", d.Name)
	data.MessageLine2 = loc.T("organizationProfile.removeDomainPage.messageLine2")
	c.HTML(http.StatusOK, view.RemoveDomainConfirmTemplate, data)
}

// Remove deletes the domain and renders the success message. Forms posted
// without htmx get the full page back.
//
// The message names the record read by the removal itself, that is the one
// actually deleted. If the domain is renamed between confirmation and
// submit, the new name is shown.
// POST /organization/domains/:id/remove
func (h *RemoveDomainPageHandler) Remove(c *gin.Context) {
	loc := h.pages.localizer(c)
	data := h.data(c, loc)

	removed, err := h.domains.RemoveDomain(c.Request.Context(), middleware.GetAuth(c), data.DomainID)
	if err != nil {
		h.fail(c, err)
		return
	}
	data.State = view.StateSuccess
	data.SuccessMessage = loc.T("organizationProfile.removeDomainPage.successMessage", removed.Name)

	if isHTMX(c) {
		c.HTML(http.StatusOK, view.RemoveDomainSuccessTemplate, data)
		return
	}
	c.HTML(http.StatusOK, view.RemoveDomainPageTemplate, data)
}

func (h *RemoveDomainPageHandler) data(c *gin.Context, loc *i18n.Localizer) view.RemoveDomainPage {
	title := loc.T("organizationProfile.removeDomainPage.title")
	profileURL := h.pages.site.ProfileURL
	return view.RemoveDomainPage{
		Page: h.pages.page(c, loc, title,
			view.Breadcrumb{Label: loc.T("organizationProfile.navbar.title"), URL: profileURL},
			view.Breadcrumb{Label: loc.T("organizationProfile.domainsSection.title"), URL: profileURL + "#domains"},
			view.Breadcrumb{Label: title},
		),
		DomainID:      c.Param("id"),
		FragmentURL:   c.Request.URL.Path,
		ActionURL:     c.Request.URL.Path,
		CancelURL:     profileURL,
		Heading:       title,
		LoadingLabel:  loc.T("core.loading"),
		ConfirmLabel:  loc.T("organizationProfile.removeDomainPage.confirm"),
		CancelLabel:   loc.T("core.cancel"),
		ContinueLabel: loc.T("core.continue"),
	}
}

func (h *RemoveDomainPageHandler) fail(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err), domain.IsValidationError(err), domain.IsUnauthorized(err):
		h.pages.NotFound(c)
	default:
		h.log.Error("remove domain page failed",
			"request_id", middleware.GetRequestID(c),
			"domain_id", c.Param("id"),
			"error", err,
		)
		h.pages.InternalError(c)
	}
}
