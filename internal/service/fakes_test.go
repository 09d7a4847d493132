package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/chirpnet/feed-service/internal/model"
	"github.com/chirpnet/feed-service/internal/repository"
	"github.com/chirpnet/feed-service/internal/repository/postgres"
	"github.com/chirpnet/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

// fakePostRepo keeps posts newest-first, matching the repository's
// created_at DESC contract.
type fakePostRepo struct {
	posts           []*model.Post
	createErr       error
	createCalls     int
	findRecentCalls int
}

func (r *fakePostRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	r.createCalls++
	if r.createErr != nil {
		return nil, r.createErr
	}

	post.ID = uuid.New()
	post.CreatedAt = time.Now().UTC()
	r.posts = append([]*model.Post{&post}, r.posts...)

	return &post, nil
}

func (r *fakePostRepo) FindRecent(ctx context.Context, limit int) ([]*model.Post, error) {
	r.findRecentCalls++
	if limit > len(r.posts) {
		limit = len(r.posts)
	}
	return r.posts[:limit], nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	for _, post := range r.posts {
		if post.ID == id {
			return post, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakePostRepo) FindByAuthor(ctx context.Context, authorID string, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	for _, post := range r.posts {
		if post.AuthorID == authorID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

type fakeDirectory struct {
	users         map[string]model.Author
	listCalls     [][]string
	listErr       error
	usernameCalls int
}

func (d *fakeDirectory) GetUserList(ctx context.Context, ids []string) ([]model.Author, error) {
	d.listCalls = append(d.listCalls, append([]string(nil), ids...))
	if d.listErr != nil {
		return nil, d.listErr
	}

	var users []model.Author
	for _, id := range ids {
		if user, ok := d.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (d *fakeDirectory) GetUserByUsername(ctx context.Context, username string) (*model.Author, error) {
	d.usernameCalls++
	if d.listErr != nil {
		return nil, d.listErr
	}

	for _, user := range d.users {
		if user.Username != nil && *user.Username == username {
			user := user
			return &user, nil
		}
	}
	return nil, nil
}

type fakeCache struct {
	store   map[string]string
	deleted []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: make(map[string]string)}
}

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (c *fakeCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	valueJSON, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.store[key] = string(valueJSON)
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) *redis.StringCmd {
	if value, ok := c.store[key]; ok {
		return redis.NewStringResult(value, nil)
	}
	return redis.NewStringResult("", redis.Nil)
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(c.store, key)
		c.deleted = append(c.deleted, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func (c *fakeCache) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	prefix := strings.TrimSuffix(pattern, "*")
	var keys []string
	for key := range c.store {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return redis.NewStringSliceResult(keys, nil)
}

func newTestRepo(postRepo postgres.Post, cache redisrepo.Default) *repository.Repository {
	return &repository.Repository{
		Postgres: &postgres.PostgresRepository{Post: postRepo},
		Redis:    &redisrepo.RedisRepository{Default: cache},
	}
}

func testAuthor(id string, username string) model.Author {
	return model.Author{
		ID:       id,
		Username: &username,
	}
}

func testPost(authorID string, content string, createdAt time.Time) *model.Post {
	return &model.Post{
		ID:        uuid.New(),
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: createdAt,
	}
}
