package main

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
)

type sessionStatus int

const (
	statusLoading sessionStatus = iota
	statusReady
	statusFailed
)

func (s sessionStatus) String() string {
	switch s {
	case statusReady:
		return "ready"
	case statusFailed:
		return "failed"
	default:
		return "loading"
	}
}

// failedSentinel marks raw model output that is itself a failure report. The
// check mirrors the app's `result.contains("Failed")`; note that the
// "No suggestions received" sentinel does not match and flows through to a
// Ready result with zero activities.
const failedSentinel = "Failed"

var (
	errRequesterNotFound = errors.New("requester not found in user directory")
	errCycleInFlight     = errors.New("suggestion cycle already in flight")
)

// statusFunc observes status transitions of one cycle. result is non-nil only
// for statusReady; message is non-empty only for statusFailed.
type statusFunc func(status sessionStatus, result *SuggestionResult, message string)

// SuggestionSession orchestrates one fetch-and-display cycle: directory fetch,
// prompt build, generation call, parse. Failures stay local to the cycle and
// are reported as display strings through the status callback; nothing here is
// fatal to the process. A session runs at most one cycle at a time.
type SuggestionSession struct {
	directory UserDirectory
	generator suggestionGenerator
	notify    statusFunc

	inFlight atomic.Bool
}

func newSuggestionSession(directory UserDirectory, generator suggestionGenerator, notify statusFunc) *SuggestionSession {
	return &SuggestionSession{directory: directory, generator: generator, notify: notify}
}

// Run executes one suggestion cycle for the given requester. The requester is
// located in the fetched population by uid; absence is an explicit failure
// rather than a silent hang. A second Run while one is outstanding is
// rejected with errCycleInFlight.
func (s *SuggestionSession) Run(ctx context.Context, requesterUID string) (SuggestionResult, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return SuggestionResult{}, errCycleInFlight
	}
	defer s.inFlight.Store(false)

	s.emit(statusLoading, nil, "")

	users, err := s.directory.FetchAll(ctx)
	if err != nil {
		return s.fail(err)
	}

	requester, ok := findUser(users, requesterUID)
	if !ok {
		return s.fail(errRequesterNotFound)
	}

	// The requester stays in the candidate pool, as the shipped app had it.
	raw, err := s.generator.FetchSuggestions(ctx, buildPrompt(requester, users))
	if err != nil {
		return s.fail(err)
	}
	if strings.Contains(raw, failedSentinel) {
		return s.fail(errors.New(raw))
	}
	if raw == noSuggestionsMsg {
		// Soft outcome: the endpoint answered with no choices. Present an
		// empty activity list rather than the sentinel text itself.
		raw = ""
	}

	result := parseSuggestions(raw, users)
	s.emit(statusReady, &result, "")
	return result, nil
}

func (s *SuggestionSession) fail(err error) (SuggestionResult, error) {
	s.emit(statusFailed, nil, displayMessage(err))
	return SuggestionResult{}, err
}

func (s *SuggestionSession) emit(status sessionStatus, result *SuggestionResult, message string) {
	if s.notify != nil {
		s.notify(status, result, message)
	}
}

func findUser(users []User, uid string) (User, bool) {
	for _, u := range users {
		if u.UID == uid {
			return u, true
		}
	}
	return User{}, false
}
