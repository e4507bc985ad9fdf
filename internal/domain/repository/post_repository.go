// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"quill/internal/domain/entity"
)

// ErrPostNotFound is returned when a post is not found.
var ErrPostNotFound = errors.New("post not found")

// PostRepository defines the standard operations for post persistence.
type PostRepository interface {
	// FindByID retrieves a single post by its unique ID.
	FindByID(ctx context.Context, id int64) (*entity.Post, error)

	// ListAll returns every post, ordered by ID ascending (insertion order).
	// The ordering is an implementation choice, not a contract of the API.
	ListAll(ctx context.Context) ([]*entity.Post, error)

	// ListByUserID returns the posts owned by the given user, ordered by ID ascending.
	ListByUserID(ctx context.Context, userID int64) ([]*entity.Post, error)

	// Create persists a new post and fills in the server-assigned ID and timestamps.
	Create(ctx context.Context, post *entity.Post) error

	// Update persists the mutable fields of an existing post and refreshes
	// the entity's timestamps from the stored row.
	Update(ctx context.Context, post *entity.Post) error

	// Delete removes the post. Comments referencing it are removed by the
	// store's ON DELETE CASCADE constraint.
	Delete(ctx context.Context, id int64) error
}
