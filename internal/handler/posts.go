package handler

import (
	"net/http"
	"strings"

	"github.com/chirpnet/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) postsGetAll(c *gin.Context) {
	entries, err := h.services.Feed.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *Handler) postsGetByID(c *gin.Context) {
	postIDString := strings.TrimSpace(c.Param("postID"))
	postID, err := uuid.Parse(postIDString)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return
	}

	entry, err := h.services.Feed.GetPostByID(c.Request.Context(), postID)
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, entry)
}

func (h *Handler) postsGetByAuthor(c *gin.Context) {
	userID := strings.TrimSpace(c.Param("userID"))
	if userID == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	entries, err := h.services.Feed.GetPostsByUserID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *Handler) postsCreate(c *gin.Context) {
	caller := h.getCallerFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), caller, input)
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, *createdPost)
}
