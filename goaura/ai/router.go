package ai

import "strings"

const (
	routeMaxMessages   = 8
	routeMaxMessageLen = 2000
)

// Phrasings that tend to come with multi-constraint or reasoning-heavy
// requests. Routing is a cost/quality trade-off only; it never affects
// correctness and an explicit caller model always wins.
var hardTaskHints = []string{
	"step by step",
	"must not",
	"constraint",
	"json schema",
	"regex",
	"prove",
	"algorithm",
	"refactor",
}

// PickModel chooses between the cheap and strong model for a request.
func PickModel(messages []Message, requested, cheap, strong string) string {
	if requested != "" {
		return requested
	}
	if len(messages) > routeMaxMessages {
		return strong
	}
	for _, m := range messages {
		if len(m.Content) > routeMaxMessageLen {
			return strong
		}
		lower := strings.ToLower(m.Content)
		if strings.Contains(lower, "```") {
			return strong
		}
		for _, hint := range hardTaskHints {
			if strings.Contains(lower, hint) {
				return strong
			}
		}
	}
	return cheap
}
