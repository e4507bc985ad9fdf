package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	"quill/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// notifyTimeout bounds the background enqueue after the request has returned.
const notifyTimeout = 5 * time.Second

// postService implements the PostUsecase interface.
type postService struct {
	postRepo repository.PostRepository
	notifier service.Notifier
	logger   *slog.Logger
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	PostRepo repository.PostRepository
	Notifier service.Notifier
	Logger   *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	return &postService{
		postRepo: params.PostRepo,
		notifier: params.Notifier,
		logger:   params.Logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create persists a new post and submits the author notification in the
// background. Enqueue failures are logged, never surfaced: the post is
// already committed and the response must not depend on the queue.
func (srv *postService) Create(ctx context.Context, input *usecase.CreatePostInput) (*entity.Post, error) {
	post := &entity.Post{
		UserID:  input.Author.ID,
		Title:   input.Title,
		Content: input.Content,
	}

	if err := srv.postRepo.Create(ctx, post); err != nil {
		srv.log(ctx).Error("Failed to create post", slog.Int64("userID", input.Author.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create post")
	}

	srv.log(ctx).Debug("Post created", slog.Int64("postID", post.ID), slog.Int64("userID", post.UserID))

	srv.notifyPostCreated(ctx, input.Author, post)

	return post, nil
}

// notifyPostCreated fires the creation notification without blocking the
// request. The detached context survives the request's cancellation.
func (srv *postService) notifyPostCreated(ctx context.Context, author *entity.User, post *entity.Post) {
	notification := &service.EmailNotification{
		Subject:   "New Post Created",
		Recipient: author.Username,
		Body:      fmt.Sprintf("Dear %s,\n\nYou created a post titled '%s'.", author.Username, post.Title),
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
	}

	logger := srv.log(ctx)

	go func() {
		notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := srv.notifier.Notify(notifyCtx, notification); err != nil {
			logger.Error("Failed to enqueue post notification",
				slog.Int64("postID", post.ID),
				slog.Any("error", err),
			)
		}
	}()
}

// GetByID returns the post with the given ID.
func (srv *postService) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to get post")
	}

	return post, nil
}

// ListAll returns every post.
func (srv *postService) ListAll(ctx context.Context) ([]*entity.Post, error) {
	posts, err := srv.postRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

// ListOwn returns the posts authored by the given user.
func (srv *postService) ListOwn(ctx context.Context, owner *entity.User) ([]*entity.Post, error) {
	posts, err := srv.postRepo.ListByUserID(ctx, owner.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list own posts")
	}

	return posts, nil
}

// Update replaces the title and content of an existing post.
// Existence is checked before ownership so a missing post reports not found
// rather than forbidden.
func (srv *postService) Update(ctx context.Context, input *usecase.UpdatePostInput) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to find post for update")
	}

	if post.UserID != input.Actor.ID {
		srv.log(ctx).Warn("Post update denied",
			slog.Int64("postID", input.PostID),
			slog.Int64("actorID", input.Actor.ID),
			slog.Int64("ownerID", post.UserID),
		)

		return nil, domainerrors.ErrNotOwner
	}

	if input.Title != nil && *input.Title != "" {
		post.Title = *input.Title
	}
	if input.Content != nil && *input.Content != "" {
		post.Content = *input.Content
	}

	if err := srv.postRepo.Update(ctx, post); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, domainerrors.ErrPostNotFound
		}

		return nil, errors.Wrap(err, "failed to update post")
	}

	srv.log(ctx).Debug("Post updated", slog.Int64("postID", post.ID))

	return post, nil
}

// Delete removes an existing post along with its comments.
func (srv *postService) Delete(ctx context.Context, input *usecase.DeletePostInput) error {
	post, err := srv.postRepo.FindByID(ctx, input.PostID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return domainerrors.ErrPostNotFound
		}

		return errors.Wrap(err, "failed to find post for delete")
	}

	if post.UserID != input.Actor.ID {
		srv.log(ctx).Warn("Post delete denied",
			slog.Int64("postID", input.PostID),
			slog.Int64("actorID", input.Actor.ID),
			slog.Int64("ownerID", post.UserID),
		)

		return domainerrors.ErrNotOwner
	}

	if err := srv.postRepo.Delete(ctx, input.PostID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return domainerrors.ErrPostNotFound
		}

		return errors.Wrap(err, "failed to delete post")
	}

	srv.log(ctx).Debug("Post deleted", slog.Int64("postID", input.PostID))

	return nil
}
