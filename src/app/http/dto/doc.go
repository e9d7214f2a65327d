// Package dto contains Data Transfer Objects for HTTP requests and responses.
//
// DTOs are separate from domain entities to control what the API exposes and
// to carry binding tags for request validation.
//
// Naming convention:
//   - Request types: <Action><Resource>Request (e.g., CreateDomainRequest)
//   - Response types: <Resource>Response (e.g., DomainResponse)
package dto
