package querybuilder

import (
	"strconv"
	"strings"
)

// params collects positional arguments and hands out $n placeholders.
type params struct {
	values []any
}

func (p *params) add(v any) string {
	p.values = append(p.values, v)
	return "$" + strconv.Itoa(len(p.values))
}

// Condition is one predicate of a WHERE clause. Conditions are joined by AND.
type Condition interface {
	writeTo(sb *strings.Builder, p *params)
}

type eq struct {
	column string
	value  any
}

func Eq(column string, value any) Condition {
	return eq{column: column, value: value}
}

func (c eq) writeTo(sb *strings.Builder, p *params) {
	sb.WriteString(c.column)
	sb.WriteString(" = ")
	sb.WriteString(p.add(c.value))
}

type in struct {
	column string
	values []any
}

// In matches any of values. An empty list matches nothing.
func In(column string, values ...any) Condition {
	return in{column: column, values: values}
}

func (c in) writeTo(sb *strings.Builder, p *params) {
	if len(c.values) == 0 {
		sb.WriteString("1=0")
		return
	}
	sb.WriteString(c.column)
	sb.WriteString(" IN (")
	for i, v := range c.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.add(v))
	}
	sb.WriteString(")")
}

type isNull string

func IsNull(column string) Condition {
	return isNull(column)
}

func (c isNull) writeTo(sb *strings.Builder, _ *params) {
	sb.WriteString(string(c))
	sb.WriteString(" IS NULL")
}

func writeWhere(sb *strings.Builder, p *params, conditions []Condition) {
	if len(conditions) == 0 {
		return
	}
	sb.WriteString(" WHERE ")
	for i, c := range conditions {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		c.writeTo(sb, p)
	}
}
