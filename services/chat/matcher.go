package chat

import (
	"sort"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"campuscare/models"
)

// Matching thresholds: a best match at or above AcceptThreshold is
// answered directly; other candidates at or above SuggestThreshold
// become suggestions. Below the accept threshold the generic fallback
// reply is returned with no category and no suggestions.
const (
	DefaultLimit            = 5
	DefaultAcceptThreshold  = 75
	DefaultSuggestThreshold = 60

	// FallbackReply is returned when nothing in the knowledge base
	// scores high enough.
	FallbackReply = "Thanks for your question! We'll get back to you soon."
)

// MatchOptions tunes the matcher.
type MatchOptions struct {
	Limit            int
	AcceptThreshold  int
	SuggestThreshold int
}

// DefaultMatchOptions returns the production thresholds.
func DefaultMatchOptions() MatchOptions {
	return MatchOptions{
		Limit:            DefaultLimit,
		AcceptThreshold:  DefaultAcceptThreshold,
		SuggestThreshold: DefaultSuggestThreshold,
	}
}

// RankedFAQ is one scored knowledge-base candidate.
type RankedFAQ struct {
	FAQ   models.FAQ
	Score int
}

// Rank scores every knowledge-base question against the query using
// token-set similarity (order-insensitive token overlap, 0-100) and
// returns the top limit candidates, best first. The sort is stable so
// score ties break by knowledge-base order.
func Rank(query string, kb []models.FAQ, limit int) []RankedFAQ {
	ranked := make([]RankedFAQ, 0, len(kb))
	for _, entry := range kb {
		ranked = append(ranked, RankedFAQ{
			FAQ:   entry,
			Score: fuzzy.TokenSetRatio(query, entry.Question),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// Match maps free-text input to the closest knowledge-base entry. It
// is pure with respect to its inputs and performs no I/O.
func Match(query string, kb []models.FAQ, opts MatchOptions) models.ChatReply {
	reply := models.ChatReply{
		Reply:       FallbackReply,
		Suggestions: []string{},
	}

	ranked := Rank(query, kb, opts.Limit)
	if len(ranked) == 0 || ranked[0].Score < opts.AcceptThreshold {
		return reply
	}

	best := ranked[0]
	reply.Reply = best.FAQ.Answer
	reply.Category = best.FAQ.Category
	for _, m := range ranked[1:] {
		if m.Score >= opts.SuggestThreshold {
			reply.Suggestions = append(reply.Suggestions, m.FAQ.Question)
		}
	}
	return reply
}
