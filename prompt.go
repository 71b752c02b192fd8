package main

import (
	"fmt"
	"strings"
)

// promptInstruction is the fixed suffix of every suggestion prompt. The parser
// relies on the loose shape it asks for (one item per line, no numbering), so
// the wording stays constant.
const promptInstruction = "Format your response by writing only the activity name, place and name, place. Do not number them."

// buildPrompt renders the requester's profile and the full candidate listing
// into the text block sent to the model. Pure: identical inputs produce
// byte-identical output. The requester is not excluded from the candidate
// listing, matching the behavior the mobile app shipped with.
func buildPrompt(requester User, candidates []User) string {
	descriptions := make([]string, 0, len(candidates))
	for _, u := range candidates {
		descriptions = append(descriptions, fmt.Sprintf(
			"Name: %s\nEmail: %s\nInterests: %s\nLocation: %s\nOuting Size: %d\nUID: %s",
			u.Name, u.Email, u.Interests, u.Location, u.OutingSize, u.UID,
		))
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"Here is a user profile:\n\nName: %s\nInterests: %s\nLocation: %s\nOuting Size: %d\n\n",
		requester.Name, requester.Interests, requester.Location, requester.OutingSize,
	)
	b.WriteString("Based on the above profile, suggest 3 activities this person would enjoy and recommend 3 other users they might like to hang out with, based on the following list of users:\n\n")
	b.WriteString(strings.Join(descriptions, "\n"))
	b.WriteString("\n\n")
	b.WriteString(promptInstruction)
	return b.String()
}
