package frontend

import (
	"sort"
	"strconv"
	"strings"
)

// Match reports whether an attribute map satisfies all filter
// conditions. Supported operators: ==, !=, =~ (prefix match), >=, <=.
// Unknown operators and malformed condition shapes match nothing.
func (c Criteria) Match(attrs map[string]any) bool {
	for op, fields := range c.Conditions {
		group, ok := fields.(map[string]any)
		if !ok {
			return false
		}
		for field, want := range group {
			if !matchCondition(op, attrs[field], want) {
				return false
			}
		}
	}
	return true
}

func matchCondition(op string, have, want any) bool {
	switch op {
	case "==":
		return equalValues(have, want)
	case "!=":
		return !equalValues(have, want)
	case "=~":
		return strings.HasPrefix(toString(have), toString(want))
	case ">=":
		h, w, ok := floatPair(have, want)
		return ok && h >= w
	case "<=":
		h, w, ok := floatPair(have, want)
		return ok && h <= w
	}
	return false
}

func equalValues(have, want any) bool {
	if h, w, ok := floatPair(have, want); ok {
		return h == w
	}
	return toString(have) == toString(want)
}

func floatPair(have, want any) (float64, float64, bool) {
	h, ok1 := toFloat(have)
	w, ok2 := toFloat(want)
	return h, w, ok1 && ok2
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case nil:
		return ""
	}
	return ""
}

// sortMaps orders attribute maps by the criteria sort keys. A "-"
// prefix sorts that key descending.
func sortMaps(maps []map[string]any, keys []string) []int {
	order := make([]int, len(maps))
	for i := range order {
		order[i] = i
	}
	if len(keys) == 0 {
		return order
	}
	sort.SliceStable(order, func(i, j int) bool {
		a, b := maps[order[i]], maps[order[j]]
		for _, key := range keys {
			desc := strings.HasPrefix(key, "-")
			k := strings.TrimPrefix(key, "-")
			av, bv := toString(a[k]), toString(b[k])
			if af, aok := toFloat(a[k]); aok {
				if bf, bok := toFloat(b[k]); bok {
					if af != bf {
						return (af < bf) != desc
					}
					continue
				}
			}
			if av != bv {
				return (av < bv) != desc
			}
		}
		return false
	})
	return order
}

// window clips [offset, offset+limit) to the slice length.
func window(length, offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > length {
		offset = length
	}
	end := length
	if limit > 0 && offset+limit < length {
		end = offset + limit
	}
	return offset, end
}
