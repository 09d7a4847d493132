package dto

import (
	"time"

	"github.com/google/uuid"
)

type MQPostCreatedMsg struct {
	PostID    uuid.UUID `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type MQUserUpdatedMsg struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
