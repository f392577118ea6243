package screens

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// suggestionThreshold is the minimum normalized similarity a candidate
// needs before it is offered as a did-you-mean hint.
const suggestionThreshold = 0.5

// ClosestName returns the candidate most similar to name, if any clears the
// similarity threshold. Used to hint at likely misspellings when a host
// group lookup comes back empty.
func ClosestName(name string, candidates []string) (string, bool) {
	var best string
	bestScore := 0.0
	for _, c := range candidates {
		if score := similarity(name, c); score > bestScore {
			best, bestScore = c, score
		}
	}
	if bestScore >= suggestionThreshold {
		return best, true
	}
	return "", false
}

// similarity is 1 for identical strings and approaches 0 as the edit
// distance grows, compared case-insensitively.
func similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
