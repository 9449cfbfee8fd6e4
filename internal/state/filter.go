package state

import (
	"regexp"
	"strings"
)

// filterCategories returns the entries of all matching text. Matching is a
// case-insensitive regular expression; text that does not compile is
// matched as a case-insensitive substring. Empty text matches everything.
func filterCategories(all []string, text string) []string {
	out := make([]string, 0, len(all))
	if text == "" {
		return append(out, all...)
	}

	match := substringMatcher(text)
	if re, err := regexp.Compile("(?i)" + text); err == nil {
		match = re.MatchString
	}

	for _, c := range all {
		if match(c) {
			out = append(out, c)
		}
	}
	return out
}

func substringMatcher(text string) func(string) bool {
	needle := strings.ToLower(text)
	return func(s string) bool {
		return strings.Contains(strings.ToLower(s), needle)
	}
}

// uniqueInOrder drops repeated values, keeping first occurrences.
func uniqueInOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
