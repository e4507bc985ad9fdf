package handler

import (
	"net/http"
	"time"

	"quill/internal/delivery/http/middleware"
	"quill/internal/delivery/http/response"
	"quill/internal/domain/entity"
	"quill/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CommentHandler holds dependencies for comment-related handlers.
type CommentHandler struct {
	uc usecase.CommentUsecase
}

// NewCommentHandler is the constructor for CommentHandler, injected by Fx.
func NewCommentHandler(uc usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

// createCommentRequest is the JSON body accepted by Create.
type createCommentRequest struct {
	PostID  int64  `json:"post_id" validate:"required,gt=0"`
	Content string `json:"content" validate:"required"`
}

// updateCommentRequest is the JSON body accepted by Update.
type updateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// commentResponse is the public view of a comment.
type commentResponse struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toCommentResponse(comment *entity.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID,
		UserID:    comment.UserID,
		PostID:    comment.PostID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// Create handles the comment creation request.
func (h *CommentHandler) Create(c echo.Context) error {
	var req createCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Create(c.Request().Context(), &usecase.CreateCommentInput{
		Author:  middleware.CurrentUser(c),
		PostID:  req.PostID,
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCommentResponse(output), "Comment created successfully")
}

// Update handles the comment update request.
func (h *CommentHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid comment id")
	}

	var req updateCommentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Update(c.Request().Context(), &usecase.UpdateCommentInput{
		Actor:     middleware.CurrentUser(c),
		CommentID: id,
		Content:   req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommentResponse(output), "Comment updated successfully")
}

// Delete handles the comment deletion request.
func (h *CommentHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid comment id")
	}

	if err := h.uc.Delete(c.Request().Context(), &usecase.DeleteCommentInput{
		Actor:     middleware.CurrentUser(c),
		CommentID: id,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Comment deleted successfully"}, "Comment deleted successfully")
}

// ListAll handles the public comment listing request. An empty list is a
// normal 200, not an error.
func (h *CommentHandler) ListAll(c echo.Context) error {
	comments, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	out := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		out = append(out, toCommentResponse(comment))
	}

	return response.Success(c, http.StatusOK, out, "Comments retrieved successfully")
}
