// Package repo contains PostgreSQL implementations of repository interfaces.
//
// This package implements the ports defined in src/core/ports.
// PostgresRepository is split by aggregate:
//   - domain_repo.go: organization domains (ports.DomainRepository)
//   - session_repo.go: session resolution (ports.SessionRepository)
//
// The repository receives the database pool via constructor injection.
// pgx.ErrNoRows is translated to domain not found errors and unique
// violations to domain conflict errors, so callers never see driver errors
// for expected conditions.
package repo
