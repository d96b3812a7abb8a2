package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamroster/src/core/domain"
	"teamroster/src/core/ports/portstest"
)

func TestTeamService(t *testing.T) {
	teams := &portstest.TeamRepository{}
	tx := &portstest.Transactor{}
	svc := NewTeamService(teams, tx, testLogger())
	ctx := context.Background()

	teams.On("SaveTeam", mock.Anything, &domain.Team{Name: "teamA"}).Return(&domain.Team{ID: 1, Name: "teamA"}, nil)
	teams.On("FindTeamWithMembers", mock.Anything, int64(1)).Return(&domain.Team{
		ID:      1,
		Name:    "teamA",
		Members: []domain.Member{{ID: 5, Username: "member1"}},
	}, nil)

	created, err := svc.Create(ctx, "  teamA ")
	require.NoError(t, err)
	require.EqualValues(t, 1, created.ID)

	_, err = svc.Create(ctx, " ")
	require.True(t, domain.IsValidationError(err))

	got, err := svc.Get(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got.Members, 1)

	require.Len(t, tx.Calls, 2)
	require.False(t, tx.Calls[0].ReadOnly)
	require.True(t, tx.Calls[1].ReadOnly)
}
