package filter

import (
	"fmt"
	"strings"
)

type Sort struct {
	Field string
	Desc  bool
}

type Sorts []Sort

func Asc(field string) Sort  { return Sort{Field: field} }
func Desc(field string) Sort { return Sort{Field: field, Desc: true} }

// ParseSort は "-rating,-created" 形式を読む。先頭 - は降順、+ か無印は昇順。
func ParseSort(s string) Sorts {
	var out Sorts
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		switch {
		case part == "" || part == "-" || part == "+":
			continue
		case strings.HasPrefix(part, "-"):
			out = append(out, Desc(part[1:]))
		case strings.HasPrefix(part, "+"):
			out = append(out, Asc(part[1:]))
		default:
			out = append(out, Asc(part))
		}
	}
	return out
}

// ParseSortParam はURLの "created.desc" 形式を読む。空や不正なら def。
func ParseSortParam(s string, def Sorts) Sorts {
	field, dir, ok := strings.Cut(strings.TrimSpace(s), ".")
	if !ok || field == "" {
		return def
	}
	switch strings.ToLower(dir) {
	case "asc":
		return Sorts{Asc(field)}
	case "desc":
		return Sorts{Desc(field)}
	}
	return def
}

func (s Sorts) String() string {
	parts := make([]string, len(s))
	for i, x := range s {
		if x.Desc {
			parts[i] = "-" + x.Field
		} else {
			parts[i] = "+" + x.Field
		}
	}
	return strings.Join(parts, ",")
}

// ToSQL はORDER BY句（ORDER BY は含まない）にする。
func (s Sorts) ToSQL(cols Columns) (string, error) {
	parts := make([]string, 0, len(s))
	for _, x := range s {
		col, err := cols.column(x.Field)
		if err != nil {
			return "", fmt.Errorf("sort: %w", err)
		}
		if x.Desc {
			parts = append(parts, col+" DESC")
		} else {
			parts = append(parts, col+" ASC")
		}
	}
	return strings.Join(parts, ", "), nil
}

// Allowed は許可されたフィールドだけ残す。
func (s Sorts) Allowed(cols Columns) Sorts {
	out := make(Sorts, 0, len(s))
	for _, x := range s {
		if _, ok := cols[x.Field]; ok {
			out = append(out, x)
		}
	}
	return out
}
