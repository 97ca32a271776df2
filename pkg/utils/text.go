package utils

import "strings"

// CleanNumericString strips the separators the export tool inserts into
// large counters: thousands commas, plain spaces, non-breaking spaces
// and apostrophes.
func CleanNumericString(input string) string {
	replacer := strings.NewReplacer(
		",", "",
		" ", "",
		" ", "",
		"'", "",
	)
	return replacer.Replace(strings.TrimSpace(input))
}

// CollapseSpaces trims the string and folds runs of whitespace into a
// single space.
func CollapseSpaces(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
