package main

import (
	"database/sql"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

// statusEvent is one status transition pushed over the suggestions socket.
type statusEvent struct {
	Status     string   `json:"status"`
	Activities []string `json:"activities,omitempty"`
	Users      []User   `json:"users,omitempty"`
	Message    string   `json:"message,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// For development: allow the Vite dev origin ws://localhost:5173
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws/suggestions - stream the status transitions of one suggestion cycle
// (loading, then ready or failed) and close. Lets the client render the
// loading state without polling.
func wsSuggestionsHandler(db *sql.DB, directory UserDirectory, generator suggestionGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, ok := getUserIDFromRequest(r)
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("WS upgrade error for user %s: %v", uid, err)
			return
		}
		defer conn.Close()

		complete, err := profileComplete(db, uid)
		if err != nil || !complete {
			_ = conn.WriteJSON(statusEvent{Status: statusFailed.String(), Message: "incomplete_profile"})
			return
		}

		session := newSuggestionSession(directory, generator, func(status sessionStatus, result *SuggestionResult, message string) {
			evt := statusEvent{Status: status.String(), Message: message}
			if result != nil {
				evt.Activities = result.Activities
				evt.Users = result.Users
			}
			if err := conn.WriteJSON(evt); err != nil {
				log.Printf("WS write error for user %s: %v", uid, err)
			}
		})

		if _, err := session.Run(r.Context(), uid); err != nil {
			// Already reported through the status stream
			log.Println("Suggestion cycle failed:", err)
		}
	}
}
