package impl

import (
	"context"
	"log/slog"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// commentService implements the CommentUsecase interface.
type commentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	logger      *slog.Logger
}

// CommentServiceParams holds dependencies for CommentService, injected by Fx.
type CommentServiceParams struct {
	fx.In

	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	Logger      *slog.Logger
}

// NewCommentService is the constructor for commentService.
func NewCommentService(params CommentServiceParams) usecase.CommentUsecase {
	return &commentService{
		postRepo:    params.PostRepo,
		commentRepo: params.CommentRepo,
		logger:      params.Logger,
	}
}

func (srv *commentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create attaches a new comment to an existing post. The post lookup gives a
// friendly not-found for the common case; the foreign key on post_id still
// guards against the post vanishing between the check and the insert.
func (srv *commentService) Create(ctx context.Context, input *usecase.CreateCommentInput) (*entity.Comment, error) {
	if _, err := srv.postRepo.FindByID(ctx, input.PostID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post for comment")
	}

	comment := &entity.Comment{
		UserID:  input.Author.ID,
		PostID:  input.PostID,
		Content: input.Content,
	}

	if err := srv.commentRepo.Create(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		srv.log(ctx).Error("Failed to create comment", slog.Int64("postID", input.PostID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create comment")
	}

	srv.log(ctx).Debug("Comment created", slog.Int64("commentID", comment.ID), slog.Int64("postID", comment.PostID))

	return comment, nil
}

// ListAll returns every comment across all posts.
func (srv *commentService) ListAll(ctx context.Context) ([]*entity.Comment, error) {
	comments, err := srv.commentRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	return comments, nil
}

// Update replaces the content of an existing comment.
// Existence is checked before ownership so a missing comment reports not
// found rather than forbidden.
func (srv *commentService) Update(ctx context.Context, input *usecase.UpdateCommentInput) (*entity.Comment, error) {
	comment, err := srv.commentRepo.FindByID(ctx, input.CommentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, domainerrors.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to find comment for update")
	}

	if comment.UserID != input.Actor.ID {
		srv.log(ctx).Warn("Comment update denied",
			slog.Int64("commentID", input.CommentID),
			slog.Int64("actorID", input.Actor.ID),
			slog.Int64("ownerID", comment.UserID),
		)

		return nil, domainerrors.ErrNotOwner
	}

	comment.Content = input.Content

	if err := srv.commentRepo.Update(ctx, comment); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, domainerrors.ErrCommentNotFound
		}

		return nil, errors.Wrap(err, "failed to update comment")
	}

	srv.log(ctx).Debug("Comment updated", slog.Int64("commentID", comment.ID))

	return comment, nil
}

// Delete removes an existing comment.
func (srv *commentService) Delete(ctx context.Context, input *usecase.DeleteCommentInput) error {
	comment, err := srv.commentRepo.FindByID(ctx, input.CommentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return domainerrors.ErrCommentNotFound
		}

		return errors.Wrap(err, "failed to find comment for delete")
	}

	if comment.UserID != input.Actor.ID {
		srv.log(ctx).Warn("Comment delete denied",
			slog.Int64("commentID", input.CommentID),
			slog.Int64("actorID", input.Actor.ID),
			slog.Int64("ownerID", comment.UserID),
		)

		return domainerrors.ErrNotOwner
	}

	if err := srv.commentRepo.Delete(ctx, input.CommentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return domainerrors.ErrCommentNotFound
		}

		return errors.Wrap(err, "failed to delete comment")
	}

	srv.log(ctx).Debug("Comment deleted", slog.Int64("commentID", input.CommentID))

	return nil
}
