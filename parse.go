package main

import "strings"

// maxSuggestions caps both halves of a SuggestionResult.
const maxSuggestions = 3

// parseSuggestions turns the model's free-form reply into a SuggestionResult.
// Activities are the first three non-empty lines of the raw text, kept
// verbatim. The suggested buddies are simply the first three candidates in
// store order; the model's own textual picks are not cross-referenced back
// into the pool, matching the behavior the app shipped with. Total function:
// short input yields short output, never an error.
func parseSuggestions(raw string, candidates []User) SuggestionResult {
	activities := make([]string, 0, maxSuggestions)
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		activities = append(activities, line)
		if len(activities) == maxSuggestions {
			break
		}
	}

	users := candidates
	if len(users) > maxSuggestions {
		users = users[:maxSuggestions]
	}
	if users == nil {
		users = []User{}
	}
	return SuggestionResult{Activities: activities, Users: users}
}
