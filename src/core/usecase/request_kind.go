package usecase

import (
	"net/http"
	"strings"
)

// Headers inspected when classifying a request.
const (
	HeaderSecFetchDest = "Sec-Fetch-Dest"
	HeaderAccept       = "Accept"
	HeaderContentType  = "Content-Type"
	HeaderRouterURL    = "Next-Url"
	HeaderRouterAction = "Next-Action"
)

type headerCheck func(h http.Header) bool

// Any match makes the request a server action, provided the router header is present.
var serverActionChecks = []headerCheck{
	func(h http.Header) bool { return strings.Contains(h.Get(HeaderAccept), "text/x-component") },
	func(h http.Header) bool { return strings.Contains(h.Get(HeaderContentType), "multipart/form-data") },
	func(h http.Header) bool { return h.Get(HeaderRouterAction) != "" },
}

// Evaluated in order; the first match wins.
var pageRequestChecks = []headerCheck{
	func(h http.Header) bool { return h.Get(HeaderSecFetchDest) == "document" },
	func(h http.Header) bool { return strings.Contains(h.Get(HeaderAccept), "text/html") },
	func(h http.Header) bool { return h.Get(HeaderRouterURL) != "" && !isServerAction(h) },
}

func matchAny(h http.Header, checks []headerCheck) bool {
	for _, check := range checks {
		if check(h) {
			return true
		}
	}
	return false
}

func isServerAction(h http.Header) bool {
	return h.Get(HeaderRouterURL) != "" && matchAny(h, serverActionChecks)
}

// IsServerActionRequest reports whether r is a framework-internal mutation
// call rather than a browser navigation.
func IsServerActionRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return isServerAction(r.Header)
}

// IsPageRequest reports whether r is a browser navigation to a page.
func IsPageRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return matchAny(r.Header, pageRequestChecks)
}
