package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// EnrollmentMode controls how users with a matching email domain join.
type EnrollmentMode string

const (
	EnrollmentManualInvitation    EnrollmentMode = "manual_invitation"
	EnrollmentAutomaticInvitation EnrollmentMode = "automatic_invitation"
	EnrollmentAutomaticSuggestion EnrollmentMode = "automatic_suggestion"
)

// Valid reports whether m is a known enrollment mode.
func (m EnrollmentMode) Valid() bool {
	switch m {
	case EnrollmentManualInvitation, EnrollmentAutomaticInvitation, EnrollmentAutomaticSuggestion:
		return true
	default:
		return false
	}
}

// OrganizationDomain is a DNS domain claimed under an organization.
type OrganizationDomain struct {
	ID             string         `json:"id"`
	OrganizationID string         `json:"organization_id"`
	Name           string         `json:"name"`
	EnrollmentMode EnrollmentMode `json:"enrollment_mode"`
	Verified       bool           `json:"verified"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

var domainLabel = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// NormalizeDomainName lower-cases and validates a DNS domain name.
// At least two labels are required and the TLD may not be numeric.
func NormalizeDomainName(name string) (string, error) {
	name = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".")
	if name == "" {
		return "", NewValidationError("name", "cannot be empty")
	}
	if len(name) > 253 {
		return "", NewValidationError("name", "must be at most 253 characters")
	}
	labels := strings.Split(name, ".")
	if len(labels) < 2 {
		return "", NewValidationError("name", "must contain at least one dot")
	}
	for _, label := range labels {
		if !domainLabel.MatchString(label) {
			return "", NewValidationError("name", fmt.Sprintf("invalid label %q", label))
		}
	}
	tld := labels[len(labels)-1]
	if strings.Trim(tld, "0123456789") == "" {
		return "", NewValidationError("name", "top-level domain cannot be numeric")
	}
	return name, nil
}
