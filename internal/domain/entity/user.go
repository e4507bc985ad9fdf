// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// User is the core identity in the system, representing a registered author.
// Username doubles as the token subject, so it is immutable after creation.
type User struct {
	ID             int64     // Server-assigned identifier; never reused.
	Username       string    // Unique login name; also the subject claim of issued tokens.
	Email          string    // Unique contact email.
	HashedPassword string    // bcrypt digest of the password. The plaintext is never stored.
	Age            *int      // Optional; nil when the user did not provide it at registration.
	CreatedAt      time.Time // Timestamp of when this account was created.
	UpdatedAt      time.Time // Timestamp of the last modification to this account.
}
