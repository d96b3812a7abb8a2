package domain

import "fmt"

// FetchStrategy says how the team relation of a member is loaded.
type FetchStrategy int

const (
	// FetchLazy leaves Member.Team nil; only Member.TeamID is populated.
	FetchLazy FetchStrategy = iota
	// FetchJoin loads the team in the same query with a left join.
	FetchJoin
	// FetchGraph loads the relations listed by a FetchPlan.
	FetchGraph
)

func (s FetchStrategy) String() string {
	switch s {
	case FetchLazy:
		return "lazy"
	case FetchJoin:
		return "join"
	case FetchGraph:
		return "graph"
	default:
		return fmt.Sprintf("FetchStrategy(%d)", int(s))
	}
}

// AttrTeam is the only relation a member has.
const AttrTeam = "team"

// FetchPlan lists the relations to load eagerly. Name is set for plans
// registered under a name, empty for inline plans.
type FetchPlan struct {
	Name       string
	Attributes []string
}

// Includes reports whether attr is part of the plan.
func (p FetchPlan) Includes(attr string) bool {
	for _, a := range p.Attributes {
		if a == attr {
			return true
		}
	}
	return false
}

// InlinePlan builds an unnamed plan.
func InlinePlan(attrs ...string) FetchPlan {
	return FetchPlan{Attributes: attrs}
}

// MemberAllPlan loads every relation of a member.
const MemberAllPlan = "Member.all"

var namedPlans = map[string]FetchPlan{
	MemberAllPlan: {Name: MemberAllPlan, Attributes: []string{AttrTeam}},
}

// NamedPlan looks up a registered fetch plan.
func NamedPlan(name string) (FetchPlan, error) {
	p, ok := namedPlans[name]
	if !ok {
		return FetchPlan{}, fmt.Errorf("unknown fetch plan %q", name)
	}
	return p, nil
}

// LockMode is the row lock taken by a read.
type LockMode int

const (
	LockNone LockMode = iota
	// LockPessimisticRead blocks writers but not other readers (FOR SHARE).
	LockPessimisticRead
	// LockPessimisticWrite blocks writers and other lockers (FOR UPDATE).
	LockPessimisticWrite
)

func (m LockMode) String() string {
	switch m {
	case LockNone:
		return "none"
	case LockPessimisticRead:
		return "pessimistic_read"
	case LockPessimisticWrite:
		return "pessimistic_write"
	default:
		return fmt.Sprintf("LockMode(%d)", int(m))
	}
}
