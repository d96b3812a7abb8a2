package dto

import "teamroster/src/core/domain"

// TeamRef is the team embedded in a member response. It never lists the
// team's members.
type TeamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MemberResponse is the member body returned by member endpoints.
type MemberResponse struct {
	ID       int64    `json:"id"`
	Username string   `json:"username"`
	Age      int      `json:"age"`
	TeamID   *int64   `json:"team_id,omitempty"`
	Team     *TeamRef `json:"team,omitempty"`
}

// NewMemberResponse flattens m. The team, when loaded, is cut down to a
// TeamRef so the member -> team -> members back-reference is not serialized.
func NewMemberResponse(m domain.Member) MemberResponse {
	out := MemberResponse{
		ID:       m.ID,
		Username: m.Username,
		Age:      m.Age,
		TeamID:   m.TeamID,
	}
	if m.Team != nil {
		out.Team = &TeamRef{ID: m.Team.ID, Name: m.Team.Name}
		if out.TeamID == nil && m.Team.ID != 0 {
			id := m.Team.ID
			out.TeamID = &id
		}
	}
	return out
}

// NewMemberResponses converts members; the result is never nil.
func NewMemberResponses(members []domain.Member) []MemberResponse {
	out := make([]MemberResponse, len(members))
	for i, m := range members {
		out[i] = NewMemberResponse(m)
	}
	return out
}

// TeamResponse is the team body returned by team endpoints.
type TeamResponse struct {
	ID      int64            `json:"id"`
	Name    string           `json:"name"`
	Members []MemberResponse `json:"members"`
}

// NewTeamResponse converts t and its loaded members.
func NewTeamResponse(t domain.Team) TeamResponse {
	return TeamResponse{
		ID:      t.ID,
		Name:    t.Name,
		Members: NewMemberResponses(t.Members),
	}
}
