// Package domain contains the core domain model for the application.
//
// This package defines:
//   - AuthObject: the resolved authentication state of a request, with the
//     Has permission/role predicate used by the guard
//   - OrganizationDomain: a DNS domain claimed by an organization
//   - Domain Errors: business rule violation errors
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Entities validate their own invariants (see NormalizeDomainName)
package domain
