package repo

import (
	"fmt"

	"teamroster/src/core/domain"
	"teamroster/src/infra/query"
)

const teamJoinOn = "t.team_id = m.team_id"

var (
	memberColumns = []string{"m.member_id", "m.username", "m.age", "m.team_id"}
	eagerColumns  = []string{"m.member_id", "m.username", "m.age", "m.team_id", "t.team_id", "t.name"}
)

// sortColumns whitelists the member properties a page may be sorted by.
var sortColumns = map[string]string{
	domain.PathID:       "m.member_id",
	domain.PathUsername: "m.username",
	domain.PathAge:      "m.age",
}

// memberQuery describes one member read: filter, team fetching, locking.
type memberQuery struct {
	where  []query.Node
	orders []query.Order
	fetch  domain.FetchStrategy
	plan   domain.FetchPlan
	lock   domain.LockMode
	// requireTeam inner-joins teams so members without a team drop out.
	requireTeam bool
	readOnly    bool
}

func (q memberQuery) eager() bool {
	if q.requireTeam {
		return true
	}
	switch q.fetch {
	case domain.FetchJoin:
		return true
	case domain.FetchGraph:
		return q.plan.Includes(domain.AttrTeam)
	default:
		return false
	}
}

func (q memberQuery) build() *query.Select {
	sel := query.From("members", "m")
	if q.eager() {
		sel.Columns(eagerColumns...).Join(query.LeftJoin, "teams", "t", teamJoinOn)
	} else {
		sel.Columns(memberColumns...)
	}
	if q.requireTeam {
		sel.Join(query.InnerJoin, "teams", "t", teamJoinOn)
	}
	sel.Where(q.where...)

	orders := q.orders
	if len(orders) == 0 {
		orders = []query.Order{query.Asc("m.member_id")}
	}
	return sel.OrderBy(orders...).Lock(lockClause(q.lock))
}

func lockClause(mode domain.LockMode) query.Lock {
	switch mode {
	case domain.LockPessimisticRead:
		return query.ForShare
	case domain.LockPessimisticWrite:
		return query.ForUpdate
	default:
		return query.NoLock
	}
}

// sortOrders maps page sort properties to columns. The id is appended as a
// tiebreaker so pages are stable.
func sortOrders(sort []domain.Order) ([]query.Order, error) {
	orders := make([]query.Order, 0, len(sort)+1)
	byID := false
	for _, o := range sort {
		col, ok := sortColumns[o.Property]
		if !ok {
			return nil, domain.NewValidationError("sort", fmt.Sprintf("unknown property %q", o.Property))
		}
		if col == "m.member_id" {
			byID = true
		}
		if o.Direction == domain.Desc {
			orders = append(orders, query.Desc(col))
		} else {
			orders = append(orders, query.Asc(col))
		}
	}
	if !byID {
		orders = append(orders, query.Asc("m.member_id"))
	}
	return orders, nil
}

// exampleQuery turns a probe and matcher into a member query.
func exampleQuery(ex domain.Example) memberQuery {
	probe, matcher := ex.Probe, ex.Matcher
	var preds []query.Node
	var q memberQuery

	if probe.ID != 0 && !matcher.IsIgnored(domain.PathID) {
		preds = append(preds, query.Eq("m.member_id", probe.ID))
	}
	if probe.Username != "" && !matcher.IsIgnored(domain.PathUsername) {
		preds = append(preds, stringPredicate("m.username", probe.Username, matcher))
	}
	if !matcher.IsIgnored(domain.PathAge) {
		preds = append(preds, query.Eq("m.age", probe.Age))
	}

	if !matcher.IsIgnored(domain.PathTeam) {
		teamID := probe.TeamID
		if probe.Team != nil && probe.Team.ID != 0 {
			id := probe.Team.ID
			teamID = &id
		}
		if teamID != nil {
			preds = append(preds, query.Eq("m.team_id", *teamID))
		}
	}
	if probe.Team != nil && probe.Team.Name != "" && !matcher.IsIgnored(domain.PathTeamName) {
		q.requireTeam = true
		preds = append(preds, stringPredicate("t.name", probe.Team.Name, matcher))
	}

	if matcher.Any {
		q.where = []query.Node{query.AnyOf(preds...)}
	} else {
		q.where = []query.Node{query.AllOf(preds...)}
	}
	return q
}

func stringPredicate(field, value string, matcher domain.ExampleMatcher) query.Condition {
	var c query.Condition
	switch matcher.StringMatcher {
	case domain.StringContaining:
		c = query.Contains(field, value)
	case domain.StringStarting:
		c = query.Prefix(field, value)
	case domain.StringEnding:
		c = query.Suffix(field, value)
	default:
		c = query.Eq(field, value)
	}
	if matcher.IgnoreCase {
		c = c.IgnoringCase()
	}
	return c
}

// usernameGraphQuery loads the members named username with their team
// through an inline fetch plan.
func usernameGraphQuery(username string) memberQuery {
	return memberQuery{
		where: []query.Node{query.Eq("m.username", username)},
		fetch: domain.FetchGraph,
		plan:  domain.InlinePlan(domain.AttrTeam),
	}
}
