package postgres

import (
	"context"

	"github.com/chirpnet/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const MAX_LIMIT = 100

func maxLimit(limit *int) {
	if *limit > MAX_LIMIT || *limit <= 0 {
		*limit = MAX_LIMIT
	}
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindRecent(ctx context.Context, limit int) ([]*model.Post, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	FindByAuthor(ctx context.Context, authorID string, limit int) ([]*model.Post, error)
}

type PostgresRepository struct {
	Post
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post: newPostRepo(db),
	}
}
