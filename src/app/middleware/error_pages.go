package middleware

import (
	"github.com/gin-gonic/gin"

	"domainguard/src/app/http/response"
	"domainguard/src/core/usecase"
)

// ErrorPages renders HTML failures for page requests. Middleware falls back
// to the JSON envelope when it is nil or the request is not a page request.
type ErrorPages interface {
	NotFound(c *gin.Context)
	InternalError(c *gin.Context)
}

func renderNotFound(c *gin.Context, pages ErrorPages) {
	if pages != nil && usecase.IsPageRequest(c.Request) {
		pages.NotFound(c)
		return
	}
	response.NotFound(c, "The requested resource was not found", GetRequestID(c))
}

func renderInternalError(c *gin.Context, pages ErrorPages) {
	if pages != nil && usecase.IsPageRequest(c.Request) {
		pages.InternalError(c)
		return
	}
	response.InternalError(c, GetRequestID(c))
}

// NotFound is the router's NoRoute handler.
func NotFound(pages ErrorPages) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderNotFound(c, pages)
	}
}
