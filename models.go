package main

// User represents one member of the LinkUp population. The uid is minted at
// registration and never changes; profile fields stay empty string / zero
// until the owner completes profile setup.
type User struct {
	UID        string `json:"uid"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Location   string `json:"location"`
	Interests  string `json:"interests"`
	OutingSize int    `json:"outing_size"`
}

// SuggestionResult is the outcome of one suggestion cycle: up to three
// activity descriptions and up to three users to present as buddies. Both
// slices are truncated, never padded.
type SuggestionResult struct {
	Activities []string `json:"activities"`
	Users      []User   `json:"users"`
}

// accountState tracks how far a user has come: registered but without a
// completed profile, or fully set up. The client keys navigation off this
// instead of ad hoc flags.
type accountState int

const (
	stateAnonymous accountState = iota
	stateAuthenticated
	stateProfileComplete
)

func (s accountState) String() string {
	switch s {
	case stateAuthenticated:
		return "authenticated"
	case stateProfileComplete:
		return "profile_complete"
	default:
		return "anonymous"
	}
}
