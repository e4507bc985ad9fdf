package impl

import (
	"context"
	"log/slog"
	"testing"

	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCommentService(postRepo *fakePostRepo, commentRepo *fakeCommentRepo) usecase.CommentUsecase {
	return NewCommentService(CommentServiceParams{
		PostRepo:    postRepo,
		CommentRepo: commentRepo,
		Logger:      slog.New(slog.DiscardHandler),
	})
}

func seedPost(t *testing.T, postRepo *fakePostRepo, author *entity.User) *entity.Post {
	t.Helper()

	post := &entity.Post{UserID: author.ID, Title: "seed", Content: "seed"}
	require.NoError(t, postRepo.Create(context.Background(), post))

	return post
}

func TestCommentService_Create(t *testing.T) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	svc := newTestCommentService(postRepo, commentRepo)

	alice := testAuthor(1, "alice")
	post := seedPost(t, postRepo, alice)

	comment, err := svc.Create(context.Background(), &usecase.CreateCommentInput{
		Author:  testAuthor(2, "bob"),
		PostID:  post.ID,
		Content: "nice post",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), comment.ID)
	assert.Equal(t, post.ID, comment.PostID)
	assert.Equal(t, int64(2), comment.UserID)
	assert.Equal(t, "nice post", comment.Content)
}

func TestCommentService_Create_PostMissing(t *testing.T) {
	commentRepo := newFakeCommentRepo()
	svc := newTestCommentService(newFakePostRepo(), commentRepo)

	_, err := svc.Create(context.Background(), &usecase.CreateCommentInput{
		Author:  testAuthor(1, "alice"),
		PostID:  42,
		Content: "into the void",
	})
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)

	// The failed create must not leave a row behind.
	comments, err := commentRepo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentService_ListAll_Empty(t *testing.T) {
	svc := newTestCommentService(newFakePostRepo(), newFakeCommentRepo())

	comments, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentService_ListAll(t *testing.T) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	svc := newTestCommentService(postRepo, commentRepo)

	alice := testAuthor(1, "alice")
	post := seedPost(t, postRepo, alice)

	for _, content := range []string{"first", "second", "third"} {
		_, err := svc.Create(context.Background(), &usecase.CreateCommentInput{
			Author:  alice,
			PostID:  post.ID,
			Content: content,
		})
		require.NoError(t, err)
	}

	comments, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "third", comments[2].Content)
}

func TestCommentService_Update(t *testing.T) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	svc := newTestCommentService(postRepo, commentRepo)

	alice := testAuthor(1, "alice")
	post := seedPost(t, postRepo, alice)

	created, err := svc.Create(context.Background(), &usecase.CreateCommentInput{
		Author:  alice,
		PostID:  post.ID,
		Content: "draft",
	})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), &usecase.UpdateCommentInput{
		Actor:     alice,
		CommentID: created.ID,
		Content:   "final",
	})
	require.NoError(t, err)
	assert.Equal(t, "final", updated.Content)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestCommentService_Update_NotOwner(t *testing.T) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	svc := newTestCommentService(postRepo, commentRepo)

	alice := testAuthor(1, "alice")
	post := seedPost(t, postRepo, alice)

	created, err := svc.Create(context.Background(), &usecase.CreateCommentInput{
		Author:  alice,
		PostID:  post.ID,
		Content: "mine",
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), &usecase.UpdateCommentInput{
		Actor:     testAuthor(2, "bob"),
		CommentID: created.ID,
		Content:   "not yours",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotOwner)
}

func TestCommentService_Update_NotFound(t *testing.T) {
	svc := newTestCommentService(newFakePostRepo(), newFakeCommentRepo())

	_, err := svc.Update(context.Background(), &usecase.UpdateCommentInput{
		Actor:     testAuthor(1, "alice"),
		CommentID: 42,
		Content:   "c",
	})
	assert.ErrorIs(t, err, domainerrors.ErrCommentNotFound)
}

func TestCommentService_Delete(t *testing.T) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	svc := newTestCommentService(postRepo, commentRepo)

	alice := testAuthor(1, "alice")
	post := seedPost(t, postRepo, alice)

	created, err := svc.Create(context.Background(), &usecase.CreateCommentInput{
		Author:  alice,
		PostID:  post.ID,
		Content: "temp",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), &usecase.DeleteCommentInput{
		Actor:     alice,
		CommentID: created.ID,
	}))

	comments, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestCommentService_Delete_NotOwner(t *testing.T) {
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()
	svc := newTestCommentService(postRepo, commentRepo)

	alice := testAuthor(1, "alice")
	post := seedPost(t, postRepo, alice)

	created, err := svc.Create(context.Background(), &usecase.CreateCommentInput{
		Author:  alice,
		PostID:  post.ID,
		Content: "mine",
	})
	require.NoError(t, err)

	err = svc.Delete(context.Background(), &usecase.DeleteCommentInput{
		Actor:     testAuthor(2, "bob"),
		CommentID: created.ID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotOwner)
}
