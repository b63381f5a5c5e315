package core

import (
	"strconv"
	"strings"
)

// Criteria decides whether an entity belongs in the filtered view.
type Criteria[T any] interface {
	Matches(item T) bool
}

// CriteriaFunc adapts a plain predicate to Criteria.
type CriteriaFunc[T any] func(item T) bool

// Matches calls f.
func (f CriteriaFunc[T]) Matches(item T) bool { return f(item) }

// Apply returns the items satisfying c, in their original order. A nil c
// keeps every item. The result never aliases items.
func Apply[T any](items []T, c Criteria[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if c == nil || c.Matches(item) {
			out = append(out, item)
		}
	}
	return out
}

// Status is the active/inactive filter of a list page.
type Status string

const (
	StatusAll      Status = "all"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ParseStatus maps a select value to a Status; unknown values mean all.
func ParseStatus(s string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusActive:
		return StatusActive
	case StatusInactive:
		return StatusInactive
	default:
		return StatusAll
	}
}

// Matches reports whether an entity with the given explicit flags passes.
// An entity whose flag is absent is neither active nor inactive.
func (s Status) Matches(active, inactive bool) bool {
	switch s {
	case StatusActive:
		return active
	case StatusInactive:
		return inactive
	default:
		return true
	}
}

// ContainsFold reports whether term occurs, ignoring case, in any of
// fields. A blank term matches everything.
func ContainsFold(term string, fields ...string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// MatchesID compares a select value against a numeric identifier by its
// decimal text form. An empty selection matches everything.
func MatchesID(selected string, id int64) bool {
	selected = strings.TrimSpace(selected)
	if selected == "" {
		return true
	}
	return strconv.FormatInt(id, 10) == selected
}

// ParseExactInt reads an exact-match numeric filter. Empty, non-numeric and
// non-positive input yields nil, meaning no filter.
func ParseExactInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}
