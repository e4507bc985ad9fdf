// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"
)

// Comment is a reply attached to a Post. The referenced post must exist when
// the comment is created; comments are removed together with their post.
type Comment struct {
	ID        int64     // Server-assigned identifier.
	UserID    int64     // The owning user's ID. Immutable for the lifetime of the comment.
	PostID    int64     // The post this comment belongs to.
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
