package dto

import (
	"fmt"
	"strings"

	"teamroster/src/core/domain"
)

// CreateMemberRequest is the payload for POST /members.
type CreateMemberRequest struct {
	Username string `json:"username" binding:"required"`
	Age      int    `json:"age" binding:"min=0"`
	TeamID   *int64 `json:"team_id" binding:"omitempty,min=1"`
}

// CreateTeamRequest is the payload for POST /teams.
type CreateTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// SearchQuery is the query string of GET /members/search.
type SearchQuery struct {
	Username string `form:"username" binding:"required"`
	MinAge   int    `form:"min_age"`
}

// AgeIncrementQuery is the query string of POST /members/age-increment.
type AgeIncrementQuery struct {
	Threshold int `form:"threshold" binding:"min=0"`
}

// IncrementAgesResponse reports how many rows the bulk update changed.
type IncrementAgesResponse struct {
	Updated int64 `json:"updated"`
}

// ByAgeQuery is the query string of GET /members/by-age.
type ByAgeQuery struct {
	PageQuery
	Age int `form:"age" binding:"min=0"`
}

// ExampleRequest is the payload for POST /members/example. Unset fields do
// not constrain the result; Age only does when present.
type ExampleRequest struct {
	ID            int64    `json:"id"`
	Username      string   `json:"username"`
	Age           *int     `json:"age"`
	TeamName      string   `json:"team_name"`
	Match         string   `json:"match" binding:"omitempty,oneof=all any"`
	StringMatcher string   `json:"string_matcher" binding:"omitempty,oneof=exact contains starting ending"`
	IgnoreCase    bool     `json:"ignore_case"`
	IgnorePaths   []string `json:"ignore_paths"`
}

var stringMatchers = map[string]domain.StringMatcher{
	"":         domain.StringExact,
	"exact":    domain.StringExact,
	"contains": domain.StringContaining,
	"starting": domain.StringStarting,
	"ending":   domain.StringEnding,
}

var examplePaths = map[string]struct{}{
	domain.PathID:       {},
	domain.PathUsername: {},
	domain.PathAge:      {},
	domain.PathTeam:     {},
	domain.PathTeamName: {},
}

// ToExample builds the probe and matcher.
func (r ExampleRequest) ToExample() (domain.Example, error) {
	matcher := domain.Matching()
	if r.Match == "any" {
		matcher = domain.MatchingAny()
	}

	sm, ok := stringMatchers[r.StringMatcher]
	if !ok {
		return domain.Example{}, domain.NewValidationError("string_matcher", fmt.Sprintf("unknown matcher %q", r.StringMatcher))
	}
	matcher = matcher.WithStringMatcher(sm)
	if r.IgnoreCase {
		matcher = matcher.WithIgnoreCase()
	}

	ignore := make([]string, 0, len(r.IgnorePaths)+1)
	for _, p := range r.IgnorePaths {
		p = strings.TrimSpace(p)
		if _, ok := examplePaths[p]; !ok {
			return domain.Example{}, domain.NewValidationError("ignore_paths", fmt.Sprintf("unknown path %q", p))
		}
		ignore = append(ignore, p)
	}

	probe := domain.Member{ID: r.ID, Username: r.Username}
	if r.Age != nil {
		probe.Age = *r.Age
	} else {
		ignore = append(ignore, domain.PathAge)
	}
	if r.TeamName != "" {
		probe.Team = &domain.Team{Name: r.TeamName}
	}

	return domain.ExampleOf(probe, matcher.WithIgnorePaths(ignore...)), nil
}
