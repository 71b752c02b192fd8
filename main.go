package main

import (
	"log"
	"net/http"
	"os"
)

// JWT secret from environment variable or fallback
func getJWTSecret() []byte {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		return []byte(secret)
	}
	return []byte("your_secret_key_please_change_in_production")
}

var jwtSecret = getJWTSecret()

func main() {
	initDB()

	// No API key means no suggestions can ever be fetched, so fail loudly at
	// startup instead of hanging every cycle later.
	generator, err := newOpenAIClient(os.Getenv("OPENAI_API_KEY"), os.Getenv("OPENAI_BASE_URL"))
	if err != nil {
		log.Fatal("OpenAI client configuration error:", err)
	}
	directory := newPostgresDirectory(db)

	mux := http.NewServeMux()

	// Core auth & profile endpoints
	mux.Handle("/register", registerHandler(db))
	mux.Handle("/login", loginHandler(db))
	mux.Handle("/me", meHandler(db))
	mux.Handle("/me/profile", meProfileHandler(db))

	// Suggestions: one-shot fetch plus a status-streaming socket
	mux.Handle("/suggestions", suggestionsHandler(db, directory, generator))
	mux.Handle("/ws/suggestions", wsSuggestionsHandler(db, directory, generator))

	// Health check endpoint for Docker
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Default().Println("Starting LinkUp Backend on port " + port + "...")
	http.ListenAndServe(":"+port, withCORS(mux))
}
