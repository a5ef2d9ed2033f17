package scenario

import "strings"

// TagFilter selects scenarios by tag. Each expression is a comma-separated
// list of alternatives; all expressions must hold. "~@slow" matches
// scenarios without @slow.
type TagFilter struct {
	groups [][]string
}

func ParseTagFilter(exprs ...string) TagFilter {
	var f TagFilter
	for _, expr := range exprs {
		var group []string
		for _, term := range strings.Split(expr, ",") {
			term = strings.TrimSpace(term)
			if term == "" {
				continue
			}
			negate := strings.HasPrefix(term, "~")
			term = strings.TrimPrefix(term, "~")
			if !strings.HasPrefix(term, "@") {
				term = "@" + term
			}
			if negate {
				term = "~" + term
			}
			group = append(group, term)
		}
		if len(group) > 0 {
			f.groups = append(f.groups, group)
		}
	}
	return f
}

// Empty reports whether the filter accepts everything.
func (f TagFilter) Empty() bool {
	return len(f.groups) == 0
}

func (f TagFilter) Match(tags []string) bool {
	has := make(map[string]bool, len(tags))
	for _, tag := range tags {
		has[tag] = true
	}

	for _, group := range f.groups {
		matched := false
		for _, term := range group {
			if name, negate := strings.CutPrefix(term, "~"); negate {
				matched = !has[name]
			} else {
				matched = has[term]
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}
