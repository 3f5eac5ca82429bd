package config

import (
	"github.com/hbollon/go-edlib"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion
const suggestThreshold = 0.7

// suggestKey returns the known key closest to key, or "" when nothing is close.
func suggestKey(key string, known []string) string {
	best, bestScore := "", float32(suggestThreshold)
	for _, k := range known {
		score, err := edlib.StringsSimilarity(key, k, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if score >= bestScore {
			best, bestScore = k, score
		}
	}
	return best
}
