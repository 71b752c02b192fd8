package main

import (
	"database/sql"
	"log"
	"os"

	_ "github.com/lib/pq" // PostgreSQL driver
)

var db *sql.DB

func initDB() {
	// Get database URL from environment variable, fallback to default for development
	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		connStr = "user=admin password=password dbname=linkupdb sslmode=disable"
		log.Default().Println("Warning: DATABASE_URL not set, using default connection string")
	}

	var err error
	db, err = sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Error connecting to the database:", err)
	}
	err = db.Ping()
	if err != nil {
		log.Fatal("Cannot reach the database:", err)
	}
	log.Default().Println("Database connection established successfully")

	// The schema is tiny, so the service creates it on startup if missing.
	if err := ensureSchema(db); err != nil {
		log.Fatal("Cannot create database schema:", err)
	}
}

func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			uid           TEXT PRIMARY KEY,
			email         TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS profiles (
			user_id     TEXT PRIMARY KEY REFERENCES users(uid),
			name        TEXT NOT NULL DEFAULT '',
			location    TEXT NOT NULL DEFAULT '',
			interests   TEXT NOT NULL DEFAULT '',
			outing_size INT  NOT NULL DEFAULT 0,
			is_complete BOOL NOT NULL DEFAULT FALSE
		);
	`)
	return err
}
