// Package portstest provides testify mocks of the ports for use-case and
// handler tests.
package portstest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"teamroster/src/core/domain"
	"teamroster/src/core/ports"
)

// Transactor runs fn directly and records the options of every call.
type Transactor struct {
	Calls []ports.TxOptions
}

var _ ports.Transactor = (*Transactor)(nil)

func (t *Transactor) WithinTx(ctx context.Context, opts ports.TxOptions, fn func(ctx context.Context) error) error {
	t.Calls = append(t.Calls, opts)
	return fn(ctx)
}

// TeamRepository is a mock ports.TeamRepository.
type TeamRepository struct{ mock.Mock }

var _ ports.TeamRepository = (*TeamRepository)(nil)

func (m *TeamRepository) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *TeamRepository) SaveTeam(ctx context.Context, team *domain.Team) (*domain.Team, error) {
	args := m.Called(ctx, team)
	return teamOrNil(args.Get(0)), args.Error(1)
}

func (m *TeamRepository) FindTeamByID(ctx context.Context, id int64) (*domain.Team, error) {
	args := m.Called(ctx, id)
	return teamOrNil(args.Get(0)), args.Error(1)
}

func (m *TeamRepository) FindTeamWithMembers(ctx context.Context, id int64) (*domain.Team, error) {
	args := m.Called(ctx, id)
	return teamOrNil(args.Get(0)), args.Error(1)
}

// MemberRepository is a mock ports.MemberRepository.
type MemberRepository struct{ mock.Mock }

var _ ports.MemberRepository = (*MemberRepository)(nil)

func (m *MemberRepository) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MemberRepository) Save(ctx context.Context, member *domain.Member) (*domain.Member, error) {
	args := m.Called(ctx, member)
	return memberOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) DeleteByID(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MemberRepository) BulkAgePlus(ctx context.Context, age int) (int64, error) {
	args := m.Called(ctx, age)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MemberRepository) FindByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	return memberOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MemberRepository) FindByUsernameAndAgeGreaterThan(ctx context.Context, username string, age int) ([]domain.Member, error) {
	args := m.Called(ctx, username, age)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindByUsername(ctx context.Context, username string) ([]domain.Member, error) {
	args := m.Called(ctx, username)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindUser(ctx context.Context, username string, age int) ([]domain.Member, error) {
	args := m.Called(ctx, username, age)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindByNames(ctx context.Context, names []string) ([]domain.Member, error) {
	args := m.Called(ctx, names)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindMembers(ctx context.Context, username string) (*domain.Member, error) {
	args := m.Called(ctx, username)
	return memberOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindUsernameList(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MemberRepository) FindMemberDTO(ctx context.Context) ([]domain.MemberDTO, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MemberDTO), args.Error(1)
}

func (m *MemberRepository) FindAll(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindMemberFetchJoin(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindMemberEntityGraph(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindMemberEntityGraph2(ctx context.Context) ([]domain.Member, error) {
	args := m.Called(ctx)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindUsername(ctx context.Context, username string) ([]domain.Member, error) {
	args := m.Called(ctx, username)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindReadOnlyByUsername(ctx context.Context, username string) (*domain.Member, error) {
	args := m.Called(ctx, username)
	return memberOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindLockByUsername(ctx context.Context, username string) ([]domain.Member, error) {
	args := m.Called(ctx, username)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindAllPage(ctx context.Context, page domain.Pageable) (domain.Page[domain.Member], error) {
	args := m.Called(ctx, page)
	return pageOrZero(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindByAge(ctx context.Context, age int, page domain.Pageable) (domain.Page[domain.Member], error) {
	args := m.Called(ctx, age, page)
	return pageOrZero(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindByUsernamePage(ctx context.Context, username string, page domain.Pageable) (domain.Page[domain.Member], error) {
	args := m.Called(ctx, username, page)
	return pageOrZero(args.Get(0)), args.Error(1)
}

func (m *MemberRepository) FindAllByExample(ctx context.Context, example domain.Example) ([]domain.Member, error) {
	args := m.Called(ctx, example)
	return membersOrNil(args.Get(0)), args.Error(1)
}

func memberOrNil(v any) *domain.Member {
	if v == nil {
		return nil
	}
	return v.(*domain.Member)
}

func membersOrNil(v any) []domain.Member {
	if v == nil {
		return nil
	}
	return v.([]domain.Member)
}

func teamOrNil(v any) *domain.Team {
	if v == nil {
		return nil
	}
	return v.(*domain.Team)
}

func pageOrZero(v any) domain.Page[domain.Member] {
	if v == nil {
		return domain.Page[domain.Member]{}
	}
	return v.(domain.Page[domain.Member])
}
