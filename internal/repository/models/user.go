package models

import (
	"database/sql"
	"time"
)

// User represents a row in the users table.
type User struct {
	ID           string       `db:"id"`            // ULID
	Name         string       `db:"name"`          // Display name
	Email        string       `db:"email"`         // Unique email address
	PasswordHash string       `db:"password_hash"` // bcrypt hash, never the plaintext
	Role         string       `db:"role"`          // "student" or "faculty"
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}
