package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewMemberJoinsTeam(t *testing.T) {
	team := &Team{ID: 7, Name: "teamA"}

	m, err := NewMember("member1", 10, team)
	require.NoError(t, err)
	require.Same(t, team, m.Team)
	require.NotNil(t, m.TeamID)
	require.Equal(t, int64(7), *m.TeamID)
	require.Len(t, team.Members, 1)
	require.Equal(t, "teamA", m.TeamName())
}

func TestNewMemberValidation(t *testing.T) {
	_, err := NewMember(" ", 1, nil)
	require.True(t, IsValidationError(err))

	_, err = NewMember("x", -1, nil)
	require.True(t, IsValidationError(err))
}

func TestChangeTeamToNil(t *testing.T) {
	m, err := NewMember("member1", 10, &Team{ID: 1, Name: "a"})
	require.NoError(t, err)

	m.ChangeTeam(nil)
	require.Nil(t, m.Team)
	require.Nil(t, m.TeamID)
	require.Equal(t, "", m.TeamName())
}

func TestNamedPlan(t *testing.T) {
	p, err := NamedPlan(MemberAllPlan)
	require.NoError(t, err)
	require.True(t, p.Includes(AttrTeam))

	_, err = NamedPlan("Member.none")
	require.Error(t, err)
}

func TestExampleMatcherIgnorePaths(t *testing.T) {
	m := Matching().WithIgnorePaths(PathAge)
	require.True(t, m.IsIgnored(PathAge))
	require.False(t, m.IsIgnored(PathUsername))

	m2 := m.WithIgnorePaths(PathTeam)
	require.True(t, m2.IsIgnored(PathTeamName))
	require.False(t, m.IsIgnored(PathTeam), "original matcher must not change")
}
