package domain

// StringMatcher controls how string probe fields are compared.
type StringMatcher int

const (
	StringExact StringMatcher = iota
	StringContaining
	StringStarting
	StringEnding
)

// Member property paths understood by ExampleMatcher.
const (
	PathID       = "id"
	PathUsername = "username"
	PathAge      = "age"
	PathTeam     = "team"
	PathTeamName = "team.name"
)

// ExampleMatcher is the matching policy of a query by example. The zero
// value matches all set fields exactly.
type ExampleMatcher struct {
	Any           bool
	IgnoredPaths  map[string]struct{}
	StringMatcher StringMatcher
	IgnoreCase    bool
}

// Matching returns a matcher that ANDs all probe predicates.
func Matching() ExampleMatcher {
	return ExampleMatcher{}
}

// MatchingAny returns a matcher that ORs all probe predicates.
func MatchingAny() ExampleMatcher {
	return ExampleMatcher{Any: true}
}

// WithIgnorePaths excludes properties from matching. Ignoring "team" also
// ignores "team.name".
func (m ExampleMatcher) WithIgnorePaths(paths ...string) ExampleMatcher {
	ignored := make(map[string]struct{}, len(m.IgnoredPaths)+len(paths))
	for p := range m.IgnoredPaths {
		ignored[p] = struct{}{}
	}
	for _, p := range paths {
		ignored[p] = struct{}{}
	}
	m.IgnoredPaths = ignored
	return m
}

// WithStringMatcher sets how string fields are compared.
func (m ExampleMatcher) WithStringMatcher(sm StringMatcher) ExampleMatcher {
	m.StringMatcher = sm
	return m
}

// WithIgnoreCase makes string comparisons case-insensitive.
func (m ExampleMatcher) WithIgnoreCase() ExampleMatcher {
	m.IgnoreCase = true
	return m
}

// IsIgnored reports whether path is excluded.
func (m ExampleMatcher) IsIgnored(path string) bool {
	if _, ok := m.IgnoredPaths[path]; ok {
		return true
	}
	if path == PathTeamName {
		_, ok := m.IgnoredPaths[PathTeam]
		return ok
	}
	return false
}

// Example is a partially filled probe member plus a matching policy.
//
// Empty strings and a zero id are unset. Age is a plain value and is always
// matched unless ignored. A probe team with a non-empty name restricts the
// result to members whose team has that name.
type Example struct {
	Probe   Member
	Matcher ExampleMatcher
}

// ExampleOf pairs a probe with a matcher.
func ExampleOf(probe Member, matcher ExampleMatcher) Example {
	return Example{Probe: probe, Matcher: matcher}
}
