package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/chirpnet/feed-service/internal/dto"
	"github.com/chirpnet/feed-service/internal/model"
	"github.com/chirpnet/feed-service/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func (h *Handler) authMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	accessToken := strings.Split(header, " ")[1]
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	caller, err := callerFromClaims(claims)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Set("caller", *caller)

	c.Next()
}

func callerFromClaims(claims jwt.MapClaims) (*model.Caller, error) {
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return nil, errNotAuthorized
	}

	username, _ := claims["username"].(string)

	return &model.Caller{ID: id, Username: username}, nil
}

func (h *Handler) getCallerFromRequest(c *gin.Context) *model.Caller {
	value, exists := c.Get("caller")
	if !exists {
		return nil
	}

	caller, ok := value.(model.Caller)
	if !ok {
		return nil
	}

	return &caller
}
