package handler

import (
	"net/http"
	"strings"

	"github.com/chirpnet/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) profileGetByUsername(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUsername.Error()))
		return
	}

	author, err := h.services.Profile.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(errStatus(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, author)
}
