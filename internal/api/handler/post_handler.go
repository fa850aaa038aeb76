package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/registryhq/birth-registry/internal/core/domain"
	"github.com/registryhq/birth-registry/internal/core/ports"
)

type createPostRequest struct {
	Title   string `json:"title"   validate:"required"`
	Content string `json:"content" validate:"required"`
}

type postResponse struct {
	Message string       `json:"message"`
	Post    *domain.Post `json:"post"`
}

// PostHandler handles post creation. The route is deliberately not behind
// the access gate.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Create stores a new post.
//
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        body  body      createPostRequest  true  "Post content"
// @Success      201   {object}  postResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/post [post]
func (h *PostHandler) Create(c echo.Context) error {
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	post, err := h.service.Create(c.Request().Context(), req.Title, req.Content)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "Error creating post"})
	}

	return c.JSON(http.StatusCreated, postResponse{
		Message: "Post created successfully",
		Post:    post,
	})
}
