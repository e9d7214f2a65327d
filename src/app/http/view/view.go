// Package view holds the HTML templates and their view models.
package view

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Template names executed by handlers.
const (
	ErrorPageTemplate           = "error_page"
	RemoveDomainPageTemplate    = "remove_domain_page"
	RemoveDomainConfirmTemplate = "remove_domain_confirm"
	RemoveDomainSuccessTemplate = "remove_domain_success"
)

// States of the remove-domain page.
const (
	StateLoading = "loading"
	StateConfirm = "confirm"
	StateSuccess = "success"
)

// Templates parses the embedded templates. Install with
// gin.Engine.SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(template.New("views").ParseFS(templatesFS, "templates/*.tmpl"))
}

// Breadcrumb is one navigation step; the current page has no URL.
type Breadcrumb struct {
	Label string
	URL   string
}

// Page carries the chrome shared by every full page.
type Page struct {
	Lang        string
	Title       string
	ScriptURL   string
	RequestID   string
	Breadcrumbs []Breadcrumb
}

// ErrorPage is rendered for 404 and 500 responses to page requests.
type ErrorPage struct {
	Page
	Heading string
	Message string
}

// RemoveDomainPage drives the remove-domain templates. The message fields
// are already localized and carry the domain name captured when the domain
// was fetched.
type RemoveDomainPage struct {
	Page
	State          string
	DomainID       string
	FragmentURL    string
	ActionURL      string
	CancelURL      string
	Heading        string
	LoadingLabel   string
	MessageLine1   string
	MessageLine2   string
	SuccessMessage string
	ConfirmLabel   string
	CancelLabel    string
	ContinueLabel  string
}
