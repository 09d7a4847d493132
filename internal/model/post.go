package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  string    `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedEntry pairs a post with its resolved author. Author is nil when the
// identity directory did not recognize the post's author id.
type FeedEntry struct {
	Post   Post    `json:"post"`
	Author *Author `json:"author"`
}
