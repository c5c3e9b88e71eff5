package filter

import (
	"fmt"
	"strings"
)

// Columns はフィールド名 → カラム名の許可リスト。載っていないフィールドはエラー。
type Columns map[string]string

func (c Columns) column(field string) (string, error) {
	col, ok := c[field]
	if !ok {
		return "", fmt.Errorf("filter: unknown field %q", field)
	}
	return col, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ToSQL は式を ? プレースホルダのWHERE句と引数にする。nilなら空文字。
func ToSQL(e *Expr, cols Columns) (string, []any, error) {
	if e == nil {
		return "", nil, nil
	}
	var args []any
	where, err := build(e, cols, &args)
	if err != nil {
		return "", nil, err
	}
	return where, args, nil
}

func build(e *Expr, cols Columns, args *[]any) (string, error) {
	switch e.Op {
	case OpAnd, OpOr:
		parts := make([]string, 0, len(e.Children))
		for _, c := range e.Children {
			s, err := build(c, cols, args)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		sep := " AND "
		if e.Op == OpOr {
			sep = " OR "
		}
		return "(" + strings.Join(parts, sep) + ")", nil
	}

	col, err := cols.column(e.Field)
	if err != nil {
		return "", err
	}

	switch e.Op {
	case OpEq, OpNeq, OpGte, OpLte:
		if e.Value == nil {
			if e.Op == OpEq {
				return col + " IS NULL", nil
			}
			if e.Op == OpNeq {
				return col + " IS NOT NULL", nil
			}
		}
		op := string(e.Op)
		if e.Op == OpNeq {
			op = "<>"
		}
		*args = append(*args, e.Value)
		return col + " " + op + " ?", nil
	case OpLike:
		s, _ := e.Value.(string)
		*args = append(*args, "%"+likeEscaper.Replace(strings.ToLower(s))+"%")
		return "LOWER(" + col + `) LIKE ? ESCAPE '\'`, nil
	case OpIn:
		marks := make([]string, len(e.Values))
		for i, v := range e.Values {
			marks[i] = "?"
			*args = append(*args, v)
		}
		return col + " IN (" + strings.Join(marks, ", ") + ")", nil
	}
	return "", fmt.Errorf("filter: unsupported op %q", e.Op)
}
