package service

import (
	"context"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/chirpnet/feed-service/internal/dto"
	"github.com/chirpnet/feed-service/internal/model"
	"github.com/chirpnet/feed-service/internal/rabbitmq"
	"github.com/chirpnet/feed-service/internal/repository"
	"github.com/chirpnet/feed-service/internal/repository/redisrepo"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const DEFAULT_MAX_CONTENT_LENGTH = 280

func maxContentLength() int {
	if limit := viper.GetInt("app.max-post-length"); limit > 0 {
		return limit
	}
	return DEFAULT_MAX_CONTENT_LENGTH
}

type postService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	rabbitmq *rabbitmq.MQConn
}

func newPostService(logger *zap.Logger, repo *repository.Repository, mq *rabbitmq.MQConn) Post {
	return &postService{
		logger:   logger,
		repo:     repo,
		rabbitmq: mq,
	}
}

func (s *postService) Create(ctx context.Context, caller *model.Caller, input dto.CreatePostRequest) (*model.Post, error) {
	if caller == nil || caller.ID == "" {
		return nil, ErrUnauthenticated
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > maxContentLength() {
		return nil, ErrContentTooLong
	}

	post := model.Post{
		AuthorID: caller.ID,
		Content:  content,
	}
	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", caller.ID, err.Error())
		return nil, ErrInternal
	}

	// Invalidate before returning so the caller's next read observes the
	// write instead of a stale cached feed.
	s.invalidateFeeds(ctx, caller.ID)
	s.publishPostCreated(createdPost)

	return createdPost, nil
}

func (s *postService) invalidateFeeds(ctx context.Context, authorID string) {
	keys := []string{redisrepo.RecentFeedKey(), redisrepo.AuthorPostsKey(authorID)}
	if err := s.repo.Redis.Default.Del(ctx, keys...).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate feed cache for author(%s): %s", authorID, err.Error())
	}
}

func (s *postService) publishPostCreated(post *model.Post) {
	if s.rabbitmq == nil {
		return
	}

	msg := dto.MQPostCreatedMsg{
		PostID:    post.ID,
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		s.logger.Sugar().Errorf("failed to marshal post(%s) created message: %s", post.ID.String(), err.Error())
		return
	}

	if err := s.rabbitmq.Publish(rabbitmq.POST_CREATED_QUEUE, body); err != nil {
		s.logger.Sugar().Errorf("failed to publish post(%s) created message: %s", post.ID.String(), err.Error())
	}
}
