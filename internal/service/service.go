package service

import (
	"context"

	"github.com/chirpnet/feed-service/internal/dto"
	"github.com/chirpnet/feed-service/internal/identity"
	"github.com/chirpnet/feed-service/internal/model"
	"github.com/chirpnet/feed-service/internal/rabbitmq"
	"github.com/chirpnet/feed-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Feed interface {
	GetAll(ctx context.Context) ([]*model.FeedEntry, error)
	GetPostByID(ctx context.Context, id uuid.UUID) (*model.FeedEntry, error)
	GetPostsByUserID(ctx context.Context, userID string) ([]*model.FeedEntry, error)
}

type Post interface {
	Create(ctx context.Context, caller *model.Caller, input dto.CreatePostRequest) (*model.Post, error)
}

type Profile interface {
	GetUserByUsername(ctx context.Context, username string) (*model.Author, error)
	ConsumeUserUpdates(ctx context.Context)
}

type Service struct {
	Feed
	Post
	Profile
}

func New(logger *zap.Logger, repo *repository.Repository, directory identity.Directory, mq *rabbitmq.MQConn) *Service {
	return &Service{
		Feed:    newFeedService(logger, repo, directory),
		Post:    newPostService(logger, repo, mq),
		Profile: newProfileService(logger, repo, directory, mq),
	}
}

func (s *Service) StartConsumeAll(ctx context.Context) {
	s.Profile.ConsumeUserUpdates(ctx)
}
