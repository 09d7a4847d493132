package postgres

import (
	"context"
	"time"

	"github.com/chirpnet/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// The one fixed feed order this service guarantees: newest first, with an id
// tiebreak so equal-timestamp rows stay stable.
const (
	findRecentQuery = `SELECT p.id, p.author_id, p.content, p.created_at
	FROM posts p
	ORDER BY p.created_at DESC, p.id DESC
	LIMIT $1`

	findByAuthorQuery = `SELECT p.id, p.author_id, p.content, p.created_at
	FROM posts p
	WHERE p.author_id = $1
	ORDER BY p.created_at DESC, p.id DESC
	LIMIT $2`
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	post.ID = uuid.New()
	post.CreatedAt = time.Now().UTC()
	if _, err := r.db.Exec(
		ctx,
		"INSERT INTO posts(id, author_id, content, created_at) VALUES($1, $2, $3, $4)",
		post.ID,
		post.AuthorID,
		post.Content,
		post.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindRecent(ctx context.Context, limit int) ([]*model.Post, error) {
	maxLimit(&limit)

	rows, err := r.db.Query(ctx, findRecentQuery, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		"SELECT p.id, p.author_id, p.content, p.created_at FROM posts p WHERE p.id = $1",
		id,
	).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) FindByAuthor(ctx context.Context, authorID string, limit int) ([]*model.Post, error) {
	maxLimit(&limit)

	rows, err := r.db.Query(ctx, findByAuthorQuery, authorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPosts(rows)
}

func scanPosts(rows pgx.Rows) ([]*model.Post, error) {
	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		if err := rows.Scan(
			&post.ID,
			&post.AuthorID,
			&post.Content,
			&post.CreatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}
