// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// Post is a blog entry. UserID identifies the owning author and never
// changes; only the owner may update or delete the post.
type Post struct {
	ID        int64     // Server-assigned identifier.
	UserID    int64     // The owning user's ID. Immutable for the lifetime of the post.
	Title     string
	Content   string
	CreatedAt time.Time // Server-assigned at creation; never refreshed afterwards.
	UpdatedAt time.Time // Refreshed whenever the post is modified.
}
