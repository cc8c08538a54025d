package utils

import (
	"strings"
)

// JoinWithAnd joins a slice of strings with AND operator
func JoinWithAnd(clauses []string) string {
	return strings.Join(clauses, " AND ")
}

// JoinWithOr joins a slice of strings with OR operator, each clause parenthesised
func JoinWithOr(clauses []string) string {
	wrapped := make([]string, len(clauses))
	for i, c := range clauses {
		wrapped[i] = "(" + c + ")"
	}
	return strings.Join(wrapped, " OR ")
}
