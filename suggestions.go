package main

import (
	"database/sql"
	"log"
	"net/http"
)

// GET /suggestions - run one suggestion cycle for the authenticated user and
// return the final status. Mirrors the session's three-valued status: the
// response always carries "status", with activities/users on ready and a
// human-readable message on failed.
func suggestionsHandler(db *sql.DB, directory UserDirectory, generator suggestionGenerator) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		uid := r.Context().Value(userIDKey).(string)

		// Gate by profile completion
		complete, err := profileComplete(db, uid)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "db_error")
			return
		}
		if !complete {
			writeError(w, http.StatusForbidden, "incomplete_profile")
			return
		}

		session := newSuggestionSession(directory, generator, nil)
		result, err := session.Run(r.Context(), uid)
		if err != nil {
			log.Println("Suggestion cycle failed:", err)
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"status":  statusFailed.String(),
				"message": displayMessage(err),
			})
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":     statusReady.String(),
			"activities": result.Activities,
			"users":      result.Users,
		})
	})
}
