// Package ports defines interfaces (ports) that connect core domain to infrastructure.
// These interfaces follow the ports and adapters (hexagonal) architecture pattern.
//
// Ports are defined here in the core layer, while implementations (adapters)
// live in src/infra/repo. This ensures the core has no dependency on infrastructure.
package ports

import (
	"context"

	"teamroster/src/core/domain"
)

// Repository is the base interface for all repositories.
// Concrete repositories should embed this and add entity-specific methods.
type Repository interface {
	HealthChecker
}

// TxOptions configures a transaction started by a Transactor.
type TxOptions struct {
	ReadOnly bool
}

// Transactor runs a function inside a database transaction.
//
// The transaction travels in the context handed to fn; repository calls made
// with that context join it. Calling WithinTx with a context that already
// carries a transaction reuses it. fn returning an error rolls back.
type Transactor interface {
	WithinTx(ctx context.Context, opts TxOptions, fn func(ctx context.Context) error) error
}

// TeamRepository persists teams.
type TeamRepository interface {
	Repository

	SaveTeam(ctx context.Context, team *domain.Team) (*domain.Team, error)
	FindTeamByID(ctx context.Context, id int64) (*domain.Team, error)
	// FindTeamWithMembers loads the team and its members ordered by id.
	FindTeamWithMembers(ctx context.Context, id int64) (*domain.Team, error)
}

// MemberRepository is the member data-access contract.
type MemberRepository interface {
	Repository

	// Writes
	Save(ctx context.Context, member *domain.Member) (*domain.Member, error)
	DeleteByID(ctx context.Context, id int64) error
	// BulkAgePlus adds one to the age of every member with age >= age and
	// returns the number of rows changed. Members loaded before the call
	// keep their old age.
	BulkAgePlus(ctx context.Context, age int) (int64, error)

	// Lookups
	FindByID(ctx context.Context, id int64) (*domain.Member, error)
	Count(ctx context.Context) (int64, error)

	// Filtered reads
	FindByUsernameAndAgeGreaterThan(ctx context.Context, username string, age int) ([]domain.Member, error)
	FindByUsername(ctx context.Context, username string) ([]domain.Member, error)
	FindUser(ctx context.Context, username string, age int) ([]domain.Member, error)
	FindByNames(ctx context.Context, names []string) ([]domain.Member, error)
	// FindMembers returns nil when nothing matches and a NonUniqueResult
	// error when more than one member has the username.
	FindMembers(ctx context.Context, username string) (*domain.Member, error)

	// Projections
	FindUsernameList(ctx context.Context) ([]string, error)
	FindMemberDTO(ctx context.Context) ([]domain.MemberDTO, error)

	// Eager team loading
	FindAll(ctx context.Context) ([]domain.Member, error)
	FindMemberFetchJoin(ctx context.Context) ([]domain.Member, error)
	FindMemberEntityGraph(ctx context.Context) ([]domain.Member, error)
	FindMemberEntityGraph2(ctx context.Context) ([]domain.Member, error)
	FindUsername(ctx context.Context, username string) ([]domain.Member, error)

	// Hinted and locking reads
	FindReadOnlyByUsername(ctx context.Context, username string) (*domain.Member, error)
	// FindLockByUsername locks the matched rows FOR UPDATE until the
	// transaction carried by ctx ends.
	FindLockByUsername(ctx context.Context, username string) ([]domain.Member, error)

	// Pages
	FindAllPage(ctx context.Context, page domain.Pageable) (domain.Page[domain.Member], error)
	FindByAge(ctx context.Context, age int, page domain.Pageable) (domain.Page[domain.Member], error)
	FindByUsernamePage(ctx context.Context, username string, page domain.Pageable) (domain.Page[domain.Member], error)

	// Query by example
	FindAllByExample(ctx context.Context, example domain.Example) ([]domain.Member, error)
}
