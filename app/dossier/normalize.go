package dossier

import "strings"

// NormalizeName trims and collapses internal whitespace while preserving the
// caller's casing for display.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Key lowercases a normalized name for case-insensitive lookups. Both the
// dossier store and the reporter repository key on this form.
func Key(name string) string {
	return strings.ToLower(NormalizeName(name))
}
