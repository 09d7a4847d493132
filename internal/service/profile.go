package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/chirpnet/feed-service/internal/dto"
	"github.com/chirpnet/feed-service/internal/identity"
	"github.com/chirpnet/feed-service/internal/model"
	"github.com/chirpnet/feed-service/internal/rabbitmq"
	"github.com/chirpnet/feed-service/internal/repository"
	"github.com/chirpnet/feed-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const profileTTL = time.Hour

type profileService struct {
	logger    *zap.Logger
	repo      *repository.Repository
	directory identity.Directory
	rabbitmq  *rabbitmq.MQConn
}

func newProfileService(logger *zap.Logger, repo *repository.Repository, directory identity.Directory, mq *rabbitmq.MQConn) Profile {
	return &profileService{
		logger:    logger,
		repo:      repo,
		directory: directory,
		rabbitmq:  mq,
	}
}

func (s *profileService) GetUserByUsername(ctx context.Context, username string) (*model.Author, error) {
	cachedAuthor, err := redisrepo.Get[model.Author](s.repo.Redis.Default, ctx, redisrepo.ProfileKey(username))
	if err == nil && cachedAuthor != nil {
		return cachedAuthor, nil
	}
	if err != nil && err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get profile(%s) from redis: %s", username, err.Error())
	}

	author, err := s.directory.GetUserByUsername(ctx, username)
	if err != nil {
		s.logger.Sugar().Errorf("failed to fetch profile(%s) from identity directory: %s", username, err.Error())
		return nil, ErrUpstream
	}
	if author == nil {
		return nil, ErrProfileNotFound
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.ProfileKey(username), author, profileTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set profile(%s) in redis: %s", username, err.Error())
	}

	return author, nil
}

// ConsumeUserUpdates drops cached views that embed a user's profile whenever
// the identity directory reports a change, so the Redis cache never outlives
// the directory's record by more than one message.
func (s *profileService) ConsumeUserUpdates(ctx context.Context) {
	if s.rabbitmq == nil {
		return
	}

	queue := rabbitmq.USER_INFO_UPDATED_QUEUE
	msgs, err := s.rabbitmq.Consume(queue)
	if err != nil {
		s.logger.Sugar().Errorf("failed to start consume updates from queue(%s): %s", queue, err.Error())
		return
	}

	for msg := range msgs {
		var data dto.MQUserUpdatedMsg
		if err := json.Unmarshal(msg.Body, &data); err != nil {
			s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", queue, err.Error())
			msg.Nack(false, false)
			continue
		}

		if data.UserID == "" {
			s.logger.Sugar().Errorf("'user_id' field is not provided")
			msg.Nack(false, false)
			continue
		}

		if err := s.invalidateUserCaches(ctx, data); err != nil {
			s.logger.Sugar().Errorf("failed to invalidate cache for user(%s): %s", data.UserID, err.Error())
			msg.Nack(false, true)
			continue
		}

		msg.Ack(false)
	}
}

// invalidateUserCaches drops every cached view that can embed the user's
// profile. Single-post entries cannot be matched to an author by key, so
// they are dropped wholesale.
func (s *profileService) invalidateUserCaches(ctx context.Context, data dto.MQUserUpdatedMsg) error {
	keys := []string{redisrepo.RecentFeedKey(), redisrepo.AuthorPostsKey(data.UserID)}
	if data.Username != "" {
		keys = append(keys, redisrepo.ProfileKey(data.Username))
	}

	postKeys, err := s.repo.Redis.Default.Keys(ctx, redisrepo.PostKeysPattern()).Result()
	if err != nil {
		return err
	}
	keys = append(keys, postKeys...)

	return s.repo.Redis.Default.Del(ctx, keys...).Err()
}
