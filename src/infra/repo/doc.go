// Package repo contains PostgreSQL implementations of repository interfaces.
//
// This package implements the ports defined in src/core/ports.
// Each repository is responsible for a specific domain aggregate:
//
//   - MemberRepository (member_repository.go): members, pages, projections,
//     fetch strategies, locks and query by example
//   - TeamRepository (team_repository.go): teams and their member lists
//
// Statements are built with src/infra/query and run on the transaction
// carried by the context when there is one (see db.Postgres.WithinTx),
// otherwise on the pool. Driver errors are mapped to domain errors in
// errors.go.
package repo
