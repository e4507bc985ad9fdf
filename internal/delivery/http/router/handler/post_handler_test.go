package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpmiddleware "quill/internal/delivery/http/middleware"
	"quill/internal/delivery/http/validator"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePostUsecase struct {
	post    *entity.Post
	posts   []*entity.Post
	err     error
	lastIn  any
	deleted int64
}

func (f *fakePostUsecase) Create(_ context.Context, input *usecase.CreatePostInput) (*entity.Post, error) {
	f.lastIn = input

	return f.post, f.err
}

func (f *fakePostUsecase) GetByID(context.Context, int64) (*entity.Post, error) {
	return f.post, f.err
}

func (f *fakePostUsecase) ListAll(context.Context) ([]*entity.Post, error) {
	return f.posts, f.err
}

func (f *fakePostUsecase) ListOwn(context.Context, *entity.User) ([]*entity.Post, error) {
	return f.posts, f.err
}

func (f *fakePostUsecase) Update(_ context.Context, input *usecase.UpdatePostInput) (*entity.Post, error) {
	f.lastIn = input

	return f.post, f.err
}

func (f *fakePostUsecase) Delete(_ context.Context, input *usecase.DeletePostInput) error {
	f.lastIn = input
	f.deleted = input.PostID

	return f.err
}

// withUser simulates the auth middleware having resolved the caller.
func withUser(user *entity.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(httpmiddleware.ContextKeyUser, user)

			return next(c)
		}
	}
}

func newPostTestApp(uc usecase.PostUsecase, user *entity.User) *echo.Echo {
	e := echo.New()
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(slog.New(slog.DiscardHandler)).HandleHTTPError

	h := NewPostHandler(uc)
	auth := withUser(user)
	e.GET("/posts/", h.ListAll)
	e.GET("/posts/my-posts", h.ListOwn, auth)
	e.POST("/posts/", h.Create, auth)
	e.PUT("/posts/:id", h.Update, auth)
	e.DELETE("/posts/:id", h.Delete, auth)

	return e
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestPostHandler_Create(t *testing.T) {
	alice := &entity.User{ID: 1, Username: "alice"}
	uc := &fakePostUsecase{post: &entity.Post{ID: 7, UserID: 1, Title: "First", Content: "Hello"}}
	e := newPostTestApp(uc, alice)

	rec := doJSON(e, http.MethodPost, "/posts/", `{"title":"First","content":"Hello"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	input, ok := uc.lastIn.(*usecase.CreatePostInput)
	require.True(t, ok)
	assert.Equal(t, alice, input.Author)
	assert.Equal(t, "First", input.Title)

	var body struct {
		Data struct {
			ID     int64 `json:"id"`
			UserID int64 `json:"user_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(7), body.Data.ID)
	assert.Equal(t, int64(1), body.Data.UserID)
}

func TestPostHandler_Create_MissingTitle(t *testing.T) {
	e := newPostTestApp(&fakePostUsecase{}, &entity.User{ID: 1})

	rec := doJSON(e, http.MethodPost, "/posts/", `{"content":"no title"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostHandler_Update_Partial(t *testing.T) {
	alice := &entity.User{ID: 1, Username: "alice"}
	uc := &fakePostUsecase{post: &entity.Post{ID: 7, UserID: 1, Title: "keep", Content: "revised"}}
	e := newPostTestApp(uc, alice)

	rec := doJSON(e, http.MethodPut, "/posts/7", `{"content":"revised"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	input, ok := uc.lastIn.(*usecase.UpdatePostInput)
	require.True(t, ok)
	assert.Equal(t, int64(7), input.PostID)
	assert.Nil(t, input.Title)
	require.NotNil(t, input.Content)
	assert.Equal(t, "revised", *input.Content)
}

func TestPostHandler_Update_NotFound(t *testing.T) {
	e := newPostTestApp(&fakePostUsecase{err: domainerrors.ErrPostNotFound}, &entity.User{ID: 1})

	rec := doJSON(e, http.MethodPut, "/posts/42", `{"title":"t"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "POST_NOT_FOUND")
}

func TestPostHandler_Update_Forbidden(t *testing.T) {
	e := newPostTestApp(&fakePostUsecase{err: domainerrors.ErrNotOwner}, &entity.User{ID: 2})

	rec := doJSON(e, http.MethodPut, "/posts/7", `{"title":"t"}`)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_OWNER")
}

func TestPostHandler_Update_InvalidID(t *testing.T) {
	e := newPostTestApp(&fakePostUsecase{}, &entity.User{ID: 1})

	rec := doJSON(e, http.MethodPut, "/posts/abc", `{"title":"t"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPostHandler_Delete(t *testing.T) {
	uc := &fakePostUsecase{}
	e := newPostTestApp(uc, &entity.User{ID: 1})

	rec := doJSON(e, http.MethodDelete, "/posts/7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), uc.deleted)
	assert.Contains(t, rec.Body.String(), "Post deleted successfully")
}

func TestPostHandler_ListAll_Empty(t *testing.T) {
	e := newPostTestApp(&fakePostUsecase{posts: []*entity.Post{}}, nil)

	rec := doJSON(e, http.MethodGet, "/posts/", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Empty(t, body.Data)
}
