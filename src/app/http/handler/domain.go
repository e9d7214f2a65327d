package handler

import (
	"github.com/gin-gonic/gin"

	"domainguard/src/app/http/dto"
	"domainguard/src/app/http/response"
	"domainguard/src/app/middleware"
	"domainguard/src/core/usecase"
)

// DomainHandler serves the organization domain JSON API.
type DomainHandler struct {
	domains *usecase.DomainService
}

// NewDomainHandler creates a new DomainHandler.
func NewDomainHandler(domains *usecase.DomainService) *DomainHandler {
	return &DomainHandler{domains: domains}
}

// List returns the active organization's domains.
// GET /v1/organization/domains
func (h *DomainHandler) List(c *gin.Context) {
	ds, err := h.domains.ListDomains(c.Request.Context(), middleware.GetAuth(c))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OKList(c, dto.DomainsFromEntities(ds), len(ds))
}

// Get returns one domain.
// GET /v1/organization/domains/:id
func (h *DomainHandler) Get(c *gin.Context) {
	d, err := h.domains.GetDomain(c.Request.Context(), middleware.GetAuth(c), c.Param("id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.DomainFromEntity(d))
}

// Create adds a domain.
// POST /v1/organization/domains
func (h *DomainHandler) Create(c *gin.Context) {
	var req dto.CreateDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid payload", middleware.GetRequestID(c))
		return
	}

	d, err := h.domains.AddDomain(c.Request.Context(), middleware.GetAuth(c), req.ToInput())
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.Created(c, dto.DomainFromEntity(d))
}

// Delete removes a domain and echoes the name it had.
// DELETE /v1/organization/domains/:id
func (h *DomainHandler) Delete(c *gin.Context) {
	removed, err := h.domains.RemoveDomain(c.Request.Context(), middleware.GetAuth(c), c.Param("id"))
	if err != nil {
		response.FromDomainError(c, err, middleware.GetRequestID(c))
		return
	}
	response.OK(c, dto.DeletedDomain(removed))
}

// Me returns the caller's auth object.
// GET /v1/me
func (h *DomainHandler) Me(c *gin.Context) {
	response.OK(c, dto.AuthFromEntity(middleware.GetAuth(c)))
}
