// Package graph builds and loads the disease-medication knowledge graph.
// The graph is produced offline by cross-referencing active ingredients and is
// read-only for the lifetime of a running query process.
package graph

import "strings"

// IngredientsMatch reports whether two active-ingredient strings denote the
// same substance: case-insensitive substring containment in either direction.
// "meloxicam" matches "MELOXICAM (como meloxicam sodico)" and vice versa.
func IngredientsMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
