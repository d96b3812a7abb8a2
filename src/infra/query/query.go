// Package query compiles structured filter trees into PostgreSQL
// statements. Field and table names come from code, never from requests;
// values always travel as $n arguments.
package query

import "strings"

// Operator represents a comparison operation in filters.
type Operator string

const (
	OpEq       Operator = "eq"
	OpNe       Operator = "ne"
	OpGt       Operator = "gt"
	OpGe       Operator = "ge"
	OpLt       Operator = "lt"
	OpLe       Operator = "le"
	OpIn       Operator = "in"
	OpPrefix   Operator = "prefix"   // string starts with
	OpSuffix   Operator = "suffix"   // string ends with
	OpContains Operator = "contains" // string contains
	OpIsNull   Operator = "isnull"
	OpNotNull  Operator = "notnull"
)

// Node is a filter tree element: Condition, And or Or.
type Node interface{ isNode() }

// Condition is a simple filter condition (field op value).
type Condition struct {
	Field string
	Op    Operator
	// Value is a single value, or []any for OpIn.
	Value any
	// Fold compares strings case-insensitively.
	Fold bool
}

// And matches when every child matches.
type And struct{ Children []Node }

// Or matches when any child matches.
type Or struct{ Children []Node }

func (Condition) isNode() {}
func (And) isNode()       {}
func (Or) isNode()        {}

// Helper functions for creating conditions
func Eq(field string, value any) Condition {
	return Condition{Field: field, Op: OpEq, Value: value}
}

func Ne(field string, value any) Condition {
	return Condition{Field: field, Op: OpNe, Value: value}
}

func Gt(field string, value any) Condition {
	return Condition{Field: field, Op: OpGt, Value: value}
}

func Ge(field string, value any) Condition {
	return Condition{Field: field, Op: OpGe, Value: value}
}

func Lt(field string, value any) Condition {
	return Condition{Field: field, Op: OpLt, Value: value}
}

func Le(field string, value any) Condition {
	return Condition{Field: field, Op: OpLe, Value: value}
}

func In(field string, values ...any) Condition {
	return Condition{Field: field, Op: OpIn, Value: values}
}

// InStrings is In for a string slice.
func InStrings(field string, values []string) Condition {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return In(field, vals...)
}

func Prefix(field, value string) Condition {
	return Condition{Field: field, Op: OpPrefix, Value: value}
}

func Suffix(field, value string) Condition {
	return Condition{Field: field, Op: OpSuffix, Value: value}
}

func Contains(field, value string) Condition {
	return Condition{Field: field, Op: OpContains, Value: value}
}

func IsNull(field string) Condition {
	return Condition{Field: field, Op: OpIsNull}
}

func NotNull(field string) Condition {
	return Condition{Field: field, Op: OpNotNull}
}

// IgnoringCase returns a copy of c that compares case-insensitively.
func (c Condition) IgnoringCase() Condition {
	c.Fold = true
	return c
}

// AllOf ANDs nodes, dropping nils.
func AllOf(nodes ...Node) Node {
	return And{Children: compact(nodes)}
}

// AnyOf ORs nodes, dropping nils.
func AnyOf(nodes ...Node) Node {
	return Or{Children: compact(nodes)}
}

func compact(nodes []Node) []Node {
	out := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Order defines ordering on a field.
type Order struct {
	Field string
	Desc  bool
}

// Helper functions for creating orders
func Asc(field string) Order {
	return Order{Field: field, Desc: false}
}

func Desc(field string) Order {
	return Order{Field: field, Desc: true}
}

// Lock is a row-locking clause appended to a select.
type Lock int

const (
	NoLock Lock = iota
	ForShare
	ForUpdate
)

func (l Lock) clause() string {
	switch l {
	case ForShare:
		return "FOR SHARE"
	case ForUpdate:
		return "FOR UPDATE"
	default:
		return ""
	}
}

// escapeLike escapes LIKE wildcards so probe values match literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
