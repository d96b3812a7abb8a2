package query

import (
	"fmt"
	"strings"
)

func compileNode(n Node, argIndex *int) (string, []any) {
	switch v := n.(type) {
	case Condition:
		return compileCondition(v, argIndex)
	case And:
		return compileGroup(v.Children, " AND ", argIndex)
	case Or:
		return compileGroup(v.Children, " OR ", argIndex)
	default:
		return "", nil
	}
}

func compileGroup(children []Node, sep string, argIndex *int) (string, []any) {
	parts := make([]string, 0, len(children))
	var args []any
	for _, ch := range children {
		s, a := compileNode(ch, argIndex)
		if s != "" {
			parts = append(parts, s)
			args = append(args, a...)
		}
	}
	switch len(parts) {
	case 0:
		return "", nil
	case 1:
		return parts[0], args
	default:
		return "(" + strings.Join(parts, sep) + ")", args
	}
}

func compileCondition(cond Condition, argIndex *int) (string, []any) {
	f := cond.Field
	placeholder := func() string {
		p := fmt.Sprintf("$%d", *argIndex)
		*argIndex++
		return p
	}
	binary := func(op string) (string, []any) {
		if cond.Fold {
			return fmt.Sprintf("LOWER(%s) %s LOWER(%s)", f, op, placeholder()), []any{cond.Value}
		}
		return fmt.Sprintf("%s %s %s", f, op, placeholder()), []any{cond.Value}
	}
	like := func(pattern string) (string, []any) {
		op := "LIKE"
		if cond.Fold {
			op = "ILIKE"
		}
		return fmt.Sprintf("%s %s %s", f, op, placeholder()), []any{pattern}
	}

	switch cond.Op {
	case OpEq:
		return binary("=")
	case OpNe:
		return binary("<>")
	case OpGt:
		return binary(">")
	case OpGe:
		return binary(">=")
	case OpLt:
		return binary("<")
	case OpLe:
		return binary("<=")
	case OpIn:
		vals, _ := cond.Value.([]any)
		if len(vals) == 0 {
			return "1=0", nil
		}
		ph := make([]string, len(vals))
		for i := range vals {
			ph[i] = placeholder()
		}
		args := make([]any, len(vals))
		copy(args, vals)
		return fmt.Sprintf("%s IN (%s)", f, strings.Join(ph, ", ")), args
	case OpPrefix:
		return like(escapeLike(fmt.Sprint(cond.Value)) + "%")
	case OpSuffix:
		return like("%" + escapeLike(fmt.Sprint(cond.Value)))
	case OpContains:
		return like("%" + escapeLike(fmt.Sprint(cond.Value)) + "%")
	case OpIsNull:
		return fmt.Sprintf("%s IS NULL", f), nil
	case OpNotNull:
		return fmt.Sprintf("%s IS NOT NULL", f), nil
	default:
		return "", nil
	}
}
