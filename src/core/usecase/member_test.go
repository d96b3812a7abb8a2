package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamroster/src/core/domain"
	"teamroster/src/core/ports"
	"teamroster/src/core/ports/portstest"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMemberService() (*MemberService, *portstest.MemberRepository, *portstest.TeamRepository, *portstest.Transactor) {
	members := &portstest.MemberRepository{}
	teams := &portstest.TeamRepository{}
	tx := &portstest.Transactor{}
	return NewMemberService(members, teams, tx, testLogger()), members, teams, tx
}

func TestMemberServiceGet(t *testing.T) {
	svc, members, _, tx := newMemberService()
	ctx := context.Background()

	members.On("FindByID", mock.Anything, int64(1)).Return(&domain.Member{ID: 1, Username: "member1"}, nil)
	members.On("FindByID", mock.Anything, int64(2)).Return(nil, domain.NewNotFoundError("member"))

	m, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, "member1", m.Username)

	_, err = svc.Get(ctx, 2)
	require.True(t, domain.IsNotFound(err))

	require.Equal(t, []ports.TxOptions{{ReadOnly: true}, {ReadOnly: true}}, tx.Calls)
	members.AssertExpectations(t)
}

func TestMemberServiceListProjectsSummaries(t *testing.T) {
	svc, members, _, _ := newMemberService()

	req := domain.PageOf(0, 2)
	page := domain.NewPage([]domain.Member{
		{ID: 1, Username: "a", Age: 3},
		{ID: 2, Username: "b", Age: 4},
	}, req, 5)
	members.On("FindAllPage", mock.Anything, req).Return(page, nil)

	out, err := svc.List(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, []domain.MemberSummary{{ID: 1, Username: "a"}, {ID: 2, Username: "b"}}, out.Content)
	require.EqualValues(t, 5, out.TotalElements)
	require.Equal(t, 3, out.TotalPages)
}

func TestMemberServiceCreate(t *testing.T) {
	svc, members, teams, tx := newMemberService()
	ctx := context.Background()
	teamID := int64(7)

	teams.On("FindTeamByID", mock.Anything, teamID).Return(&domain.Team{ID: teamID, Name: "teamA"}, nil)
	members.On("Save", mock.Anything, mock.MatchedBy(func(m *domain.Member) bool {
		return m.Username == "member1" && m.TeamID != nil && *m.TeamID == teamID
	})).Return(&domain.Member{ID: 10, Username: "member1", TeamID: &teamID}, nil)

	m, err := svc.Create(ctx, "member1", 10, &teamID)
	require.NoError(t, err)
	require.EqualValues(t, 10, m.ID)
	require.Equal(t, []ports.TxOptions{{}}, tx.Calls)

	_, err = svc.Create(ctx, "", 10, nil)
	require.True(t, domain.IsValidationError(err))

	missing := int64(8)
	teams.On("FindTeamByID", mock.Anything, missing).Return(nil, domain.NewNotFoundError("team"))
	_, err = svc.Create(ctx, "member2", 1, &missing)
	require.True(t, domain.IsNotFound(err))

	members.AssertNumberOfCalls(t, "Save", 1)
}

func TestMemberServiceIncrementAges(t *testing.T) {
	svc, members, _, tx := newMemberService()

	members.On("BulkAgePlus", mock.Anything, 20).Return(int64(3), nil)

	n, err := svc.IncrementAges(context.Background(), 20)
	require.NoError(t, err)
	require.EqualValues(t, 3, n)
	require.False(t, tx.Calls[0].ReadOnly)
}

func TestMemberServiceLockByUsername(t *testing.T) {
	svc, members, _, _ := newMemberService()
	ctx := context.Background()

	locked := []domain.Member{{ID: 1, Username: "member1"}}
	members.On("FindLockByUsername", mock.Anything, "member1").Return(locked, nil)

	var seen []domain.Member
	err := svc.LockByUsername(ctx, "member1", func(ctx context.Context, got []domain.Member) error {
		seen = got
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, locked, seen)

	boom := errors.New("boom")
	err = svc.LockByUsername(ctx, "member1", func(context.Context, []domain.Member) error { return boom })
	require.ErrorIs(t, err, boom)
}

func TestMemberServiceReadsPassThrough(t *testing.T) {
	svc, members, _, _ := newMemberService()
	ctx := context.Background()

	dtos := []domain.MemberDTO{{ID: 1, Username: "a", TeamName: "teamA"}}
	members.On("FindMemberDTO", mock.Anything).Return(dtos, nil)
	members.On("FindByUsernameAndAgeGreaterThan", mock.Anything, "a", 10).Return([]domain.Member{{ID: 2}}, nil)
	example := domain.ExampleOf(domain.Member{Username: "a"}, domain.Matching().WithIgnorePaths(domain.PathAge))
	members.On("FindAllByExample", mock.Anything, example).Return([]domain.Member{{ID: 3}}, nil)
	members.On("FindByAge", mock.Anything, 0, domain.PageOf(0, 1)).Return(domain.NewPage([]domain.Member{{ID: 4}}, domain.PageOf(0, 1), 2), nil)

	gotDTOs, err := svc.ListDTO(ctx)
	require.NoError(t, err)
	require.Equal(t, dtos, gotDTOs)

	found, err := svc.Search(ctx, "a", 10)
	require.NoError(t, err)
	require.Len(t, found, 1)

	byExample, err := svc.FindByExample(ctx, example)
	require.NoError(t, err)
	require.EqualValues(t, 3, byExample[0].ID)

	byAge, err := svc.ListByAge(ctx, 0, domain.PageOf(0, 1))
	require.NoError(t, err)
	require.Equal(t, 2, byAge.TotalPages)

	members.AssertExpectations(t)
}
