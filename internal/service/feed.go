package service

import (
	"context"
	"time"

	"github.com/chirpnet/feed-service/internal/identity"
	"github.com/chirpnet/feed-service/internal/model"
	"github.com/chirpnet/feed-service/internal/repository"
	"github.com/chirpnet/feed-service/internal/repository/postgres"
	"github.com/chirpnet/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	feedTTL        = time.Minute
	postTTL        = time.Hour
	authorPostsTTL = time.Minute
)

type feedService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	directory identity.Directory
}

func newFeedService(logger *zap.Logger, repo *repository.Repository, directory identity.Directory) Feed {
	return &feedService{
		logger:    logger,
		repo:      repo,
		directory: directory,
	}
}

func (s *feedService) GetAll(ctx context.Context) ([]*model.FeedEntry, error) {
	cachedEntries, err := redisrepo.GetMany[model.FeedEntry](s.repo.Redis.Default, ctx, redisrepo.RecentFeedKey())
	if err == nil {
		return cachedEntries, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get recent feed from redis: %s", err.Error())
	}

	posts, err := s.repo.Postgres.Post.FindRecent(ctx, postgres.MAX_LIMIT)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find recent posts from postgres: %s", err.Error())
		return nil, ErrInternal
	}

	entries := s.assemble(ctx, posts)

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.RecentFeedKey(), entries, feedTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set recent feed in redis: %s", err.Error())
	}

	return entries, nil
}

func (s *feedService) GetPostByID(ctx context.Context, id uuid.UUID) (*model.FeedEntry, error) {
	cachedEntry, err := redisrepo.Get[model.FeedEntry](s.repo.Redis.Default, ctx, redisrepo.PostKey(id))
	if err == nil && cachedEntry != nil {
		return cachedEntry, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get post(%s) from redis: %s", id.String(), err.Error())
	}

	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrPostNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	entry := s.assemble(ctx, []*model.Post{post})[0]

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.PostKey(id), entry, postTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%s) in redis: %s", id.String(), err.Error())
	}

	return entry, nil
}

func (s *feedService) GetPostsByUserID(ctx context.Context, userID string) ([]*model.FeedEntry, error) {
	cachedEntries, err := redisrepo.GetMany[model.FeedEntry](s.repo.Redis.Default, ctx, redisrepo.AuthorPostsKey(userID))
	if err == nil {
		return cachedEntries, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get author(%s) posts from redis: %s", userID, err.Error())
	}

	posts, err := s.repo.Postgres.Post.FindByAuthor(ctx, userID, postgres.MAX_LIMIT)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find author(%s) posts from postgres: %s", userID, err.Error())
		return nil, ErrInternal
	}

	entries := s.assemble(ctx, posts)

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.AuthorPostsKey(userID), entries, authorPostsTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set author(%s) posts in redis: %s", userID, err.Error())
	}

	return entries, nil
}

// assemble joins posts to their authors in process, since the post store and
// the identity directory are disjoint systems. Output order is input order.
func (s *feedService) assemble(ctx context.Context, posts []*model.Post) []*model.FeedEntry {
	authors := s.resolveAuthors(ctx, posts)

	entries := make([]*model.FeedEntry, 0, len(posts))
	for _, post := range posts {
		entries = append(entries, &model.FeedEntry{
			Post:   *post,
			Author: authors[post.AuthorID],
		})
	}

	return entries
}

// resolveAuthors issues at most one batched directory call per assembly,
// with the author ids deduplicated; no call is made for an empty post list.
// A failed or partial resolve leaves the affected entries without an author
// rather than dropping posts: the feed degrades, it does not fail.
func (s *feedService) resolveAuthors(ctx context.Context, posts []*model.Post) map[string]*model.Author {
	seen := make(map[string]struct{}, len(posts))
	ids := make([]string, 0, len(posts))
	for _, post := range posts {
		if _, ok := seen[post.AuthorID]; ok {
			continue
		}
		seen[post.AuthorID] = struct{}{}
		ids = append(ids, post.AuthorID)
	}

	if len(ids) == 0 {
		return nil
	}

	users, err := s.directory.GetUserList(ctx, ids)
	if err != nil {
		s.logger.Sugar().Errorf("failed to resolve %d authors from identity directory: %s", len(ids), err.Error())
		return nil
	}

	authors := make(map[string]*model.Author, len(users))
	for i := range users {
		authors[users[i].ID] = &users[i]
	}

	return authors
}
