// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"quill/internal/domain/entity"
)

// ErrCommentNotFound is returned when a comment is not found.
var ErrCommentNotFound = errors.New("comment not found")

// CommentRepository defines the standard operations for comment persistence.
type CommentRepository interface {
	// FindByID retrieves a single comment by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)

	// ListAll returns every comment, ordered by ID ascending (insertion order).
	ListAll(ctx context.Context) ([]*entity.Comment, error)

	// Create persists a new comment and fills in the server-assigned ID and
	// timestamps. The referenced post must exist; a foreign key violation
	// surfaces as ErrPostNotFound.
	Create(ctx context.Context, comment *entity.Comment) error

	// Update persists the mutable fields of an existing comment and refreshes
	// the entity's timestamps from the stored row.
	Update(ctx context.Context, comment *entity.Comment) error

	// Delete removes the comment.
	Delete(ctx context.Context, id int64) error
}
