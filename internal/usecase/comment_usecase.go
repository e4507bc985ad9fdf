package usecase

import (
	"context"

	"quill/internal/domain/entity"
)

// --- Input DTOs ---

// CreateCommentInput defines the data required to create a new comment.
type CreateCommentInput struct {
	Author  *entity.User
	PostID  int64
	Content string
}

// UpdateCommentInput defines the data required to update an existing comment.
type UpdateCommentInput struct {
	Actor     *entity.User
	CommentID int64
	Content   string
}

// DeleteCommentInput identifies the comment to delete and who is asking.
type DeleteCommentInput struct {
	Actor     *entity.User
	CommentID int64
}

// CommentUsecase defines the interface for comment-related business operations.
// Write operations enforce ownership: only the author may update or delete.
type CommentUsecase interface {
	Create(ctx context.Context, input *CreateCommentInput) (*entity.Comment, error)
	ListAll(ctx context.Context) ([]*entity.Comment, error)
	Update(ctx context.Context, input *UpdateCommentInput) (*entity.Comment, error)
	Delete(ctx context.Context, input *DeleteCommentInput) error
}
