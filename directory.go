package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// errMalformedRecord marks a stored user row the directory could not decode
// into a User. Surfaced instead of silently defaulting the whole row.
var errMalformedRecord = errors.New("malformed user record")

// UserDirectory fetches the full population of known users. The order of the
// returned slice is whatever the store hands back; callers must not read
// meaning into it.
type UserDirectory interface {
	FetchAll(ctx context.Context) ([]User, error)
}

type postgresDirectory struct {
	db *sql.DB
}

func newPostgresDirectory(db *sql.DB) *postgresDirectory {
	return &postgresDirectory{db: db}
}

func (d *postgresDirectory) FetchAll(ctx context.Context) ([]User, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT u.uid, u.email,
		       COALESCE(p.name, ''), COALESCE(p.location, ''),
		       COALESCE(p.interests, ''), COALESCE(p.outing_size, 0)
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.uid
	`)
	if err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.UID, &u.Email, &u.Name, &u.Location, &u.Interests, &u.OutingSize); err != nil {
			return nil, fmt.Errorf("%w: %v", errMalformedRecord, err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
