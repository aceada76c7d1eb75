package controller

import (
	"strings"

	"github.com/noah-isme/agrisure-console/internal/models"
)

// Visible computes the subset of items shown to the user. It is a pure
// function: deterministic, order-preserving, and free of network access.
//
// An item matches when the search term is empty or appears as a
// case-insensitive substring in at least one of its SearchFields, taken in
// their declared order. The status predicate is exact-match; the "all"
// wildcard (any casing) disables it.
func Visible[T Item](items []T, search, status string) []T {
	needle := strings.ToLower(strings.TrimSpace(search))
	matchStatus := !models.IsWildcard(status)

	out := make([]T, 0, len(items))
	for _, item := range items {
		if matchStatus && !strings.EqualFold(string(item.ItemStatus()), status) {
			continue
		}
		if needle != "" && !matchesSearch(item, needle) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesSearch[T Item](item T, needle string) bool {
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
