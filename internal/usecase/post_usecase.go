package usecase

import (
	"context"

	"quill/internal/domain/entity"
)

// --- Input DTOs ---

// CreatePostInput defines the data required to create a new post.
// Author is the authenticated user creating the post.
type CreatePostInput struct {
	Author  *entity.User
	Title   string
	Content string
}

// UpdatePostInput defines the data required to update an existing post.
// Nil fields are left unchanged, allowing partial updates.
type UpdatePostInput struct {
	Actor   *entity.User
	PostID  int64
	Title   *string
	Content *string
}

// DeletePostInput identifies the post to delete and who is asking.
type DeletePostInput struct {
	Actor  *entity.User
	PostID int64
}

// PostUsecase defines the interface for post-related business operations.
// Write operations enforce ownership: only the author may update or delete.
type PostUsecase interface {
	Create(ctx context.Context, input *CreatePostInput) (*entity.Post, error)
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	ListAll(ctx context.Context) ([]*entity.Post, error)
	ListOwn(ctx context.Context, owner *entity.User) ([]*entity.Post, error)
	Update(ctx context.Context, input *UpdatePostInput) (*entity.Post, error)
	Delete(ctx context.Context, input *DeletePostInput) error
}
