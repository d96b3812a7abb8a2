package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectWhereOrderBy(t *testing.T) {
	q, args := From("members", "m").
		Columns("m.member_id", "m.username").
		Where(Eq("m.username", "alice"), Gt("m.age", 10)).
		OrderBy(Asc("m.member_id")).
		Build()

	require.Equal(t, "SELECT m.member_id, m.username FROM members m WHERE m.username = $1 AND m.age > $2 ORDER BY m.member_id ASC", q)
	require.Equal(t, []any{"alice", 10}, args)
}

func TestSelectWithoutFilter(t *testing.T) {
	q, args := From("members", "m").Columns("m.username").Build()

	require.Equal(t, "SELECT m.username FROM members m", q)
	require.Empty(t, args)
}

func TestSelectJoinPaginateLock(t *testing.T) {
	q, args := From("members", "m").
		Columns("m.member_id", "t.name").
		Join(LeftJoin, "teams", "t", "t.team_id = m.team_id").
		Where(Eq("m.age", 0)).
		OrderBy(Desc("m.age"), Asc("m.member_id")).
		Paginate(10, 20).
		Lock(ForUpdate).
		Build()

	require.Equal(t, "SELECT m.member_id, t.name FROM members m LEFT JOIN teams t ON t.team_id = m.team_id "+
		"WHERE m.age = $1 ORDER BY m.age DESC, m.member_id ASC LIMIT $2 OFFSET $3 FOR UPDATE OF m", q)
	require.Equal(t, []any{0, 10, 20}, args)
}

func TestSelectLockWithoutJoin(t *testing.T) {
	q, _ := From("members", "m").Where(Eq("m.username", "x")).Lock(ForShare).Build()
	require.Equal(t, "SELECT * FROM members m WHERE m.username = $1 FOR SHARE", q)
}

func TestJoinSameAliasUpgradesToInner(t *testing.T) {
	q, _ := From("members", "m").
		Join(LeftJoin, "teams", "t", "t.team_id = m.team_id").
		Join(InnerJoin, "teams", "t", "t.team_id = m.team_id").
		Build()

	require.Equal(t, "SELECT * FROM members m INNER JOIN teams t ON t.team_id = m.team_id", q)
}

func TestCountDropsPagingAndOrder(t *testing.T) {
	sel := From("members", "m").
		Columns("m.member_id").
		Where(Eq("m.age", 3)).
		OrderBy(Asc("m.member_id")).
		Paginate(5, 0).
		Lock(ForUpdate)

	q, args := sel.Count().Build()
	require.Equal(t, "SELECT COUNT(*) FROM members m WHERE m.age = $1", q)
	require.Equal(t, []any{3}, args)

	// the original select is untouched
	q, _ = sel.Build()
	require.Contains(t, q, "LIMIT $2 OFFSET $3 FOR UPDATE")
}

func TestOperators(t *testing.T) {
	tests := []struct {
		name string
		node Node
		sql  string
		args []any
	}{
		{"ne", Ne("a", 1), "a <> $1", []any{1}},
		{"ge", Ge("a", 1), "a >= $1", []any{1}},
		{"lt", Lt("a", 1), "a < $1", []any{1}},
		{"le", Le("a", 1), "a <= $1", []any{1}},
		{"in", InStrings("a", []string{"x", "y"}), "a IN ($1, $2)", []any{"x", "y"}},
		{"empty in", InStrings("a", nil), "1=0", []any{}},
		{"prefix", Prefix("a", "ab"), "a LIKE $1", []any{"ab%"}},
		{"suffix", Suffix("a", "ab"), "a LIKE $1", []any{"%ab"}},
		{"contains escapes", Contains("a", "5%_"), "a LIKE $1", []any{`%5\%\_%`}},
		{"ilike", Contains("a", "b").IgnoringCase(), "a ILIKE $1", []any{"%b%"}},
		{"fold eq", Eq("a", "B").IgnoringCase(), "LOWER(a) = LOWER($1)", []any{"B"}},
		{"is null", IsNull("a"), "a IS NULL", []any{}},
		{"not null", NotNull("a"), "a IS NOT NULL", []any{}},
		{"or", AnyOf(Eq("a", 1), Eq("b", 2)), "a = $1 OR b = $2", []any{1, 2}},
		{"nested", AllOf(Eq("c", 0), AnyOf(Eq("a", 1), Eq("b", 2))), "c = $1 AND (a = $2 OR b = $3)", []any{0, 1, 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args := From("x", "").Columns("1").Where(tt.node).Build()
			require.Equal(t, "SELECT 1 FROM x WHERE "+tt.sql, q)
			require.Equal(t, tt.args, args)
		})
	}
}

func TestEmptyGroupIsDropped(t *testing.T) {
	q, args := From("x", "").Columns("1").Where(AllOf(), AnyOf()).Build()
	require.Equal(t, "SELECT 1 FROM x", q)
	require.Empty(t, args)
}

func TestUpdateWithExpression(t *testing.T) {
	q, args := UpdateTable("members").
		SetExpr("age", "age + 1").
		Where(Ge("age", 20)).
		Build()

	require.Equal(t, "UPDATE members SET age = age + 1 WHERE age >= $1", q)
	require.Equal(t, []any{20}, args)
}

func TestUpdateWithValues(t *testing.T) {
	q, args := UpdateTable("members").
		Set("username", "bob").
		Set("age", 4).
		Where(Eq("member_id", int64(9))).
		Build()

	require.Equal(t, "UPDATE members SET username = $1, age = $2 WHERE member_id = $3", q)
	require.Equal(t, []any{"bob", 4, int64(9)}, args)
}
