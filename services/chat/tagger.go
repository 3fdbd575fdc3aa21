package chat

import "strings"

// EmotionKeywords is the fixed set of distress-related keywords the
// tagger scans for.
var EmotionKeywords = []string{
	"depressed",
	"anxious",
	"overwhelmed",
	"stressed",
	"worried",
	"sad",
	"angry",
}

// DetectEmotions returns the keywords present in the message as
// case-insensitive substrings, each reported once regardless of how
// often it appears, in keyword-list order. The result may be empty.
func DetectEmotions(message string) []string {
	lower := strings.ToLower(message)
	var detected []string
	for _, keyword := range EmotionKeywords {
		if strings.Contains(lower, keyword) {
			detected = append(detected, keyword)
		}
	}
	return detected
}
