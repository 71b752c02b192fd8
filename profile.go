package main

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
)

// GET /me - identity summary plus account state for client navigation
func meHandler(db *sql.DB) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
			return
		}
		uid := r.Context().Value(userIDKey).(string)

		var email string
		err := db.QueryRow("SELECT email FROM users WHERE uid = $1", uid).Scan(&email)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found")
			return
		}

		state := stateAuthenticated
		if complete, err := profileComplete(db, uid); err == nil && complete {
			state = stateProfileComplete
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"uid":   uid,
			"email": email,
			"state": state.String(),
		})
	})
}

// GET/POST /me/profile - read back or upsert the caller's own profile.
// The save is a full-record upsert: every field is written, merge semantics
// come from ON CONFLICT DO UPDATE.
func meProfileHandler(db *sql.DB) http.HandlerFunc {
	return authenticate(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getMyProfile(db, w, r)
		case http.MethodPost, http.MethodPatch:
			saveMyProfile(db, w, r)
		default:
			writeError(w, http.StatusMethodNotAllowed, "invalid_method")
		}
	})
}

func getMyProfile(db *sql.DB, w http.ResponseWriter, r *http.Request) {
	uid := r.Context().Value(userIDKey).(string)

	var u User
	var isComplete bool
	err := db.QueryRow(`
		SELECT u.uid, u.email,
		       COALESCE(p.name, ''), COALESCE(p.location, ''),
		       COALESCE(p.interests, ''), COALESCE(p.outing_size, 0),
		       COALESCE(p.is_complete, FALSE)
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.uid
		WHERE u.uid = $1
	`, uid).Scan(&u.UID, &u.Email, &u.Name, &u.Location, &u.Interests, &u.OutingSize, &isComplete)
	if err != nil {
		if err == sql.ErrNoRows {
			writeError(w, http.StatusNotFound, "profile_not_found")
		} else {
			writeError(w, http.StatusInternalServerError, "database_error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"uid":         u.UID,
		"email":       u.Email,
		"name":        u.Name,
		"location":    u.Location,
		"interests":   u.Interests,
		"outing_size": u.OutingSize,
		"is_complete": isComplete,
	})
}

func saveMyProfile(db *sql.DB, w http.ResponseWriter, r *http.Request) {
	type ProfileRequest struct {
		Name       string `json:"name"`
		Location   string `json:"location"`
		Interests  string `json:"interests"`
		OutingSize int    `json:"outing_size"`
	}
	var req ProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if req.OutingSize <= 0 {
		writeError(w, http.StatusBadRequest, "invalid_outing_size")
		return
	}
	uid := r.Context().Value(userIDKey).(string)

	_, err := db.Exec(`
		INSERT INTO profiles (user_id, name, location, interests, outing_size, is_complete)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (user_id) DO UPDATE SET
			name = EXCLUDED.name,
			location = EXCLUDED.location,
			interests = EXCLUDED.interests,
			outing_size = EXCLUDED.outing_size,
			is_complete = TRUE
	`, uid, req.Name, req.Location, req.Interests, req.OutingSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "profile_save_error")
		log.Println("Error saving profile:", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func profileComplete(db *sql.DB, uid string) (bool, error) {
	var complete bool
	err := db.QueryRow("SELECT COALESCE(is_complete, FALSE) FROM profiles WHERE user_id = $1", uid).Scan(&complete)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return complete, err
}
