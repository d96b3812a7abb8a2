// Package domain contains the core domain model for the application.
//
// This package defines:
//   - Entities: Member and Team
//   - Projections: MemberDTO and MemberSummary, built per query and never persisted
//   - Query vocabulary: Pageable/Page, FetchStrategy/FetchPlan, LockMode, Example
//   - Domain Errors: sentinel kinds wrapped by DomainError
//
// Rules for this package:
//   - No external dependencies except the standard library
//   - No infrastructure concerns (database, HTTP, etc.)
//   - Entities validate their own invariants in their constructors
//
// Example:
//
//	team, _ := domain.NewTeam("teamA")
//	member, err := domain.NewMember("member1", 10, team)
//	if err != nil {
//	    return err
//	}
package domain
