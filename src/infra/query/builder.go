package query

import (
	"fmt"
	"strings"
)

// JoinKind is the SQL join type.
type JoinKind string

const (
	LeftJoin  JoinKind = "LEFT JOIN"
	InnerJoin JoinKind = "INNER JOIN"
)

type join struct {
	kind  JoinKind
	table string
	alias string
	on    string
}

// Select builds a SELECT statement.
type Select struct {
	table   string
	alias   string
	columns []string
	joins   []join
	filter  []Node
	orders  []Order
	limit   *int
	offset  *int
	lock    Lock
}

// From starts a select over table, aliased as alias.
func From(table, alias string) *Select {
	return &Select{table: table, alias: alias, columns: []string{"*"}}
}

func (s *Select) Columns(columns ...string) *Select {
	if len(columns) > 0 {
		s.columns = columns
	}
	return s
}

// Join adds a join. Joining the same alias twice is a no-op.
func (s *Select) Join(kind JoinKind, table, alias, on string) *Select {
	for i, j := range s.joins {
		if j.alias == alias {
			// an inner join narrows an existing left join
			if kind == InnerJoin {
				s.joins[i].kind = InnerJoin
			}
			return s
		}
	}
	s.joins = append(s.joins, join{kind: kind, table: table, alias: alias, on: on})
	return s
}

// Where ANDs nodes into the filter. Nil nodes are skipped.
func (s *Select) Where(nodes ...Node) *Select {
	s.filter = append(s.filter, compact(nodes)...)
	return s
}

func (s *Select) OrderBy(orders ...Order) *Select {
	s.orders = append(s.orders, orders...)
	return s
}

func (s *Select) Limit(limit int) *Select   { s.limit = &limit; return s }
func (s *Select) Offset(offset int) *Select { s.offset = &offset; return s }

// Paginate applies LIMIT size OFFSET offset.
func (s *Select) Paginate(size, offset int) *Select {
	return s.Limit(size).Offset(offset)
}

// Lock appends a row-locking clause. With joins present the lock only covers
// the base table.
func (s *Select) Lock(l Lock) *Select {
	s.lock = l
	return s
}

// Count derives a COUNT(*) over the same joins and filter. Ordering, paging
// and locking are dropped.
func (s *Select) Count() *Select {
	return &Select{
		table:   s.table,
		alias:   s.alias,
		columns: []string{"COUNT(*)"},
		joins:   append([]join(nil), s.joins...),
		filter:  append([]Node(nil), s.filter...),
	}
}

// Build renders the statement and its arguments.
func (s *Select) Build() (string, []any) {
	var b strings.Builder
	args := []any{}
	argIndex := 1

	fmt.Fprintf(&b, "SELECT %s FROM %s", strings.Join(s.columns, ", "), s.table)
	if s.alias != "" {
		b.WriteString(" " + s.alias)
	}
	for _, j := range s.joins {
		fmt.Fprintf(&b, " %s %s %s ON %s", j.kind, j.table, j.alias, j.on)
	}
	if len(s.filter) > 0 {
		where, wargs := compileNode(And{Children: s.filter}, &argIndex)
		if where != "" {
			b.WriteString(" WHERE " + trimParens(where))
			args = append(args, wargs...)
		}
	}
	if len(s.orders) > 0 {
		parts := make([]string, len(s.orders))
		for i, o := range s.orders {
			dir := "ASC"
			if o.Desc {
				dir = "DESC"
			}
			parts[i] = o.Field + " " + dir
		}
		b.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}
	if s.limit != nil {
		fmt.Fprintf(&b, " LIMIT $%d", argIndex)
		args = append(args, *s.limit)
		argIndex++
	}
	if s.offset != nil {
		fmt.Fprintf(&b, " OFFSET $%d", argIndex)
		args = append(args, *s.offset)
		argIndex++
	}
	if c := s.lock.clause(); c != "" {
		b.WriteString(" " + c)
		if len(s.joins) > 0 && s.alias != "" {
			b.WriteString(" OF " + s.alias)
		}
	}
	return b.String(), args
}

// Update builds an UPDATE statement.
type Update struct {
	table  string
	sets   []assignment
	filter []Node
}

type assignment struct {
	column string
	value  any
	expr   string
}

// UpdateTable starts an update of table.
func UpdateTable(table string) *Update {
	return &Update{table: table}
}

// Set assigns a value passed as an argument.
func (u *Update) Set(column string, value any) *Update {
	u.sets = append(u.sets, assignment{column: column, value: value})
	return u
}

// SetExpr assigns a raw SQL expression, e.g. "age + 1".
func (u *Update) SetExpr(column, expr string) *Update {
	u.sets = append(u.sets, assignment{column: column, expr: expr})
	return u
}

// Where ANDs nodes into the filter.
func (u *Update) Where(nodes ...Node) *Update {
	u.filter = append(u.filter, compact(nodes)...)
	return u
}

// Build renders the statement and its arguments.
func (u *Update) Build() (string, []any) {
	args := []any{}
	argIndex := 1
	sets := make([]string, len(u.sets))
	for i, a := range u.sets {
		if a.expr != "" {
			sets[i] = fmt.Sprintf("%s = %s", a.column, a.expr)
			continue
		}
		sets[i] = fmt.Sprintf("%s = $%d", a.column, argIndex)
		args = append(args, a.value)
		argIndex++
	}
	q := fmt.Sprintf("UPDATE %s SET %s", u.table, strings.Join(sets, ", "))
	if len(u.filter) > 0 {
		where, wargs := compileNode(And{Children: u.filter}, &argIndex)
		if where != "" {
			q += " WHERE " + trimParens(where)
			args = append(args, wargs...)
		}
	}
	return q, args
}

// trimParens drops the outer parentheses of a compiled top-level AND.
func trimParens(s string) string {
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") && balanced(s[1:len(s)-1]) {
		return s[1 : len(s)-1]
	}
	return s
}

func balanced(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
