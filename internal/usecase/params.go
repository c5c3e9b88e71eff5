package usecase

import (
	"strings"

	"storefront/internal/filter"
)

// "created.desc" と "-created" のどちらも受け付ける。許可されていない項目は捨てる
func parseSort(s string, def filter.Sorts, allowed ...string) filter.Sorts {
	s = strings.TrimSpace(s)
	var sorts filter.Sorts
	switch {
	case s == "":
		return def
	case strings.Contains(s, "."):
		sorts = filter.ParseSortParam(s, def)
	default:
		sorts = filter.ParseSort(s)
	}

	ok := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		ok[a] = true
	}
	out := make(filter.Sorts, 0, len(sorts))
	for _, x := range sorts {
		if ok[x.Field] {
			out = append(out, x)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// "a,b,,c" → [a b c]
func splitList(s string, sep string) []string {
	out := []string{}
	for _, p := range strings.Split(s, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
