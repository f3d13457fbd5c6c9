// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is the Principal: the identity resolved from a token subject.
// LoginID is the token subject. Password holds the bcrypt hash, never the
// plaintext. Disabilities is replaced as a whole, never patched.
type User struct {
	ID           int64
	LoginID      string
	Password     string
	UserName     string
	Disabilities []string
	CreatedAt    time.Time
}
