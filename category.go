package castgraph

import "strings"

// DefaultCategories are the category labels marking male and female
// Japanese voice actors.
var DefaultCategories = []string{
	"Category:日本の男性声優",
	"Category:日本の女性声優",
}

// MatchesCategory reports whether text contains any of the category labels.
// It is a plain substring test meant to run before the page is decoded.
func MatchesCategory(text string, labels []string) bool {
	for _, label := range labels {
		if label != "" && strings.Contains(text, label) {
			return true
		}
	}
	return false
}
