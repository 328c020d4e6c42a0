package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var errNoTable = errors.New("table is required")

type SelectBuilder struct {
	columns []string
	table   string
	where   []Condition
	orderBy []string
	limit   int
}

func Select(columns ...string) *SelectBuilder {
	return &SelectBuilder{columns: columns}
}

func (b *SelectBuilder) From(table string) *SelectBuilder {
	b.table = table
	return b
}

func (b *SelectBuilder) Where(conditions ...Condition) *SelectBuilder {
	b.where = append(b.where, conditions...)
	return b
}

func (b *SelectBuilder) OrderBy(terms ...string) *SelectBuilder {
	b.orderBy = append(b.orderBy, terms...)
	return b
}

func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = n
	return b
}

func (b *SelectBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	columns := "*"
	if len(b.columns) > 0 {
		columns = strings.Join(b.columns, ", ")
	}

	var sb strings.Builder
	var p params
	sb.WriteString("SELECT " + columns + " FROM " + b.table)
	writeWhere(&sb, &p, b.where)
	if len(b.orderBy) > 0 {
		sb.WriteString(" ORDER BY " + strings.Join(b.orderBy, ", "))
	}
	if b.limit > 0 {
		sb.WriteString(" LIMIT " + strconv.Itoa(b.limit))
	}
	return sb.String(), p.values, nil
}

// InsertModel builds an INSERT from the db-tagged exported fields of model.
// suffix is appended verbatim (ON CONFLICT, RETURNING, ...).
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	if strings.TrimSpace(table) == "" {
		return "", nil, errNoTable
	}
	columns, values, err := taggedColumns(model)
	if err != nil {
		return "", nil, err
	}

	var sb strings.Builder
	var p params
	sb.WriteString("INSERT INTO " + table + " (" + strings.Join(columns, ", ") + ") VALUES (")
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.add(v))
	}
	sb.WriteString(")")
	if suffix = strings.TrimSpace(suffix); suffix != "" {
		sb.WriteString(" " + suffix)
	}
	return sb.String(), p.values, nil
}

func taggedColumns(model any) ([]string, []any, error) {
	v := reflect.ValueOf(model)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil, nil, errors.New("insert model is nil")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("insert model must be a struct, got %s", v.Kind())
	}

	t := v.Type()
	var columns []string
	var values []any
	for i := range t.NumField() {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		name = strings.TrimSpace(name)
		if name == "" || name == "-" {
			continue
		}
		columns = append(columns, name)
		values = append(values, v.Field(i).Interface())
	}
	if len(columns) == 0 {
		return nil, nil, fmt.Errorf("insert model %s has no db columns", t.Name())
	}
	return columns, values, nil
}

type assignment struct {
	column string
	value  any
}

type UpdateBuilder struct {
	table string
	set   []assignment
	where []Condition
}

func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{table: table}
}

func (b *UpdateBuilder) Set(column string, value any) *UpdateBuilder {
	b.set = append(b.set, assignment{column: column, value: value})
	return b
}

func (b *UpdateBuilder) Where(conditions ...Condition) *UpdateBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses an UPDATE without a WHERE clause.
func (b *UpdateBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.set) == 0 {
		return "", nil, errors.New("update needs at least one column")
	}
	if len(b.where) == 0 {
		return "", nil, errors.New("update without conditions")
	}

	var sb strings.Builder
	var p params
	sb.WriteString("UPDATE " + b.table + " SET ")
	for i, a := range b.set {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(a.column + " = " + p.add(a.value))
	}
	writeWhere(&sb, &p, b.where)
	return sb.String(), p.values, nil
}

type DeleteBuilder struct {
	table string
	where []Condition
}

func DeleteFrom(table string) *DeleteBuilder {
	return &DeleteBuilder{table: table}
}

func (b *DeleteBuilder) Where(conditions ...Condition) *DeleteBuilder {
	b.where = append(b.where, conditions...)
	return b
}

// ToSQL refuses a DELETE without a WHERE clause.
func (b *DeleteBuilder) ToSQL() (string, []any, error) {
	if strings.TrimSpace(b.table) == "" {
		return "", nil, errNoTable
	}
	if len(b.where) == 0 {
		return "", nil, errors.New("delete without conditions")
	}

	var sb strings.Builder
	var p params
	sb.WriteString("DELETE FROM " + b.table)
	writeWhere(&sb, &p, b.where)
	return sb.String(), p.values, nil
}
