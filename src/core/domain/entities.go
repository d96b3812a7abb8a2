package domain

import "strings"

// Team groups members. Members is only populated by lookups that ask for it;
// a team never owns the lifecycle of its members.
type Team struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members,omitempty"`
}

// NewTeam validates and builds an unsaved team.
func NewTeam(name string) (*Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("name", "cannot be empty")
	}
	return &Team{Name: name}, nil
}

// Member is the owning side of the member -> team relation.
//
// TeamID is always set when the row has a team. Team is only set when the
// query that produced the member fetched the relation eagerly.
type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Age      int    `json:"age"`
	TeamID   *int64 `json:"team_id,omitempty"`
	Team     *Team  `json:"team,omitempty"`
}

// NewMember builds an unsaved member. team may be nil.
func NewMember(username string, age int, team *Team) (*Member, error) {
	if strings.TrimSpace(username) == "" {
		return nil, NewValidationError("username", "cannot be empty")
	}
	if age < 0 {
		return nil, NewValidationError("age", "cannot be negative")
	}
	m := &Member{Username: username, Age: age}
	if team != nil {
		m.ChangeTeam(team)
	}
	return m, nil
}

// ChangeTeam points the member at team and appends it to the team's
// in-memory member list.
func (m *Member) ChangeTeam(team *Team) {
	m.Team = team
	if team == nil {
		m.TeamID = nil
		return
	}
	if team.ID != 0 {
		id := team.ID
		m.TeamID = &id
	}
	team.Members = append(team.Members, *m)
}

// TeamName returns the name of the eagerly loaded team, or "".
func (m *Member) TeamName() string {
	if m.Team == nil {
		return ""
	}
	return m.Team.Name
}

// MemberDTO is the member/team join projection.
type MemberDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	TeamName string `json:"team_name"`
}

// MemberSummary is the public projection served by the member list endpoint.
type MemberSummary struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// NewMemberSummary projects a member.
func NewMemberSummary(m Member) MemberSummary {
	return MemberSummary{ID: m.ID, Username: m.Username}
}
