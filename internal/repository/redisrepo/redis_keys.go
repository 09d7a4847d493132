package redisrepo

import (
	"fmt"

	"github.com/google/uuid"
)

// Cache keys are operation + arguments, so a write knows exactly which
// cached reads it makes stale.
const (
	RECENT_FEED_KEY  = "feed:recent"
	POST_KEY         = "post:%s"         // <postID>
	AUTHOR_POSTS_KEY = "author:%s-posts" // <authorID>
	PROFILE_KEY      = "profile:%s"      // <username>
)

func RecentFeedKey() string {
	return RECENT_FEED_KEY
}

func PostKey(postID uuid.UUID) string {
	return fmt.Sprintf(POST_KEY, postID.String())
}

func PostKeysPattern() string {
	return fmt.Sprintf(POST_KEY, "*")
}

func AuthorPostsKey(authorID string) string {
	return fmt.Sprintf(AUTHOR_POSTS_KEY, authorID)
}

func ProfileKey(username string) string {
	return fmt.Sprintf(PROFILE_KEY, username)
}
