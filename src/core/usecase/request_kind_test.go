package usecase

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPageRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		page    bool
		action  bool
	}{
		{name: "no headers"},
		{name: "document destination", headers: map[string]string{HeaderSecFetchDest: "document"}, page: true},
		{name: "iframe destination", headers: map[string]string{HeaderSecFetchDest: "iframe"}},
		{name: "html accept", headers: map[string]string{HeaderAccept: "text/html,application/xhtml+xml"}, page: true},
		{name: "json accept", headers: map[string]string{HeaderAccept: "application/json"}},
		{name: "router navigation", headers: map[string]string{HeaderRouterURL: "/org"}, page: true},
		{
			name:    "router component stream",
			headers: map[string]string{HeaderRouterURL: "/org", HeaderAccept: "text/x-component"},
			action:  true,
		},
		{
			name:    "router multipart form",
			headers: map[string]string{HeaderRouterURL: "/org", HeaderContentType: "multipart/form-data; boundary=x"},
			action:  true,
		},
		{
			name:    "router action header",
			headers: map[string]string{HeaderRouterURL: "/org", HeaderRouterAction: "abc123"},
			action:  true,
		},
		{
			name:    "action header without router url",
			headers: map[string]string{HeaderRouterAction: "abc123"},
		},
		{
			name:    "document wins over action",
			headers: map[string]string{HeaderSecFetchDest: "document", HeaderRouterURL: "/org", HeaderRouterAction: "abc"},
			page:    true,
			action:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.page, IsPageRequest(r))
			assert.Equal(t, tt.action, IsServerActionRequest(r))
		})
	}
}

func TestRequestKindNilRequest(t *testing.T) {
	assert.False(t, IsPageRequest(nil))
	assert.False(t, IsServerActionRequest(nil))
}
