package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/chirpnet/feed-service/internal/model"
	"github.com/chirpnet/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFeed(repo *fakePostRepo, directory *fakeDirectory, cache *fakeCache) Feed {
	return newFeedService(zap.NewNop(), newTestRepo(repo, cache), directory)
}

func TestGetAllResolvesDistinctAuthorsOnce(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakePostRepo{posts: []*model.Post{
		testPost("a", "third", now),
		testPost("b", "second", now.Add(-time.Minute)),
		testPost("a", "first", now.Add(-time.Hour)),
	}}
	directory := &fakeDirectory{users: map[string]model.Author{
		"a": testAuthor("a", "alice"),
		"b": testAuthor("b", "bob"),
	}}

	entries, err := newTestFeed(repo, directory, newFakeCache()).GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Len(t, directory.listCalls, 1)
	assert.ElementsMatch(t, []string{"a", "b"}, directory.listCalls[0])
}

func TestGetAllPreservesPostOrder(t *testing.T) {
	now := time.Now().UTC()
	posts := []*model.Post{
		testPost("b", "yo", now),
		testPost("a", "hi", now.Add(-time.Minute)),
	}
	repo := &fakePostRepo{posts: posts}
	directory := &fakeDirectory{users: map[string]model.Author{
		"a": testAuthor("a", "alice"),
		"b": testAuthor("b", "bob"),
	}}

	entries, err := newTestFeed(repo, directory, newFakeCache()).GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	for i := range posts {
		assert.Equal(t, posts[i].ID, entries[i].Post.ID)
	}
	require.NotNil(t, entries[0].Author)
	assert.Equal(t, "bob", *entries[0].Author.Username)
	require.NotNil(t, entries[1].Author)
	assert.Equal(t, "alice", *entries[1].Author.Username)
}

func TestGetAllEmptyFeedSkipsDirectoryCall(t *testing.T) {
	repo := &fakePostRepo{}
	directory := &fakeDirectory{}

	entries, err := newTestFeed(repo, directory, newFakeCache()).GetAll(context.Background())

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, directory.listCalls)
}

func TestGetAllToleratesUnresolvedAuthors(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakePostRepo{posts: []*model.Post{
		testPost("a", "hi", now),
		testPost("ghost", "who am i", now.Add(-time.Minute)),
	}}
	directory := &fakeDirectory{users: map[string]model.Author{
		"a": testAuthor("a", "alice"),
	}}

	entries, err := newTestFeed(repo, directory, newFakeCache()).GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Author)
	assert.Nil(t, entries[1].Author)
}

func TestGetAllToleratesDirectoryFailure(t *testing.T) {
	now := time.Now().UTC()
	repo := &fakePostRepo{posts: []*model.Post{
		testPost("a", "hi", now),
		testPost("b", "yo", now.Add(-time.Minute)),
	}}
	directory := &fakeDirectory{listErr: errors.New("directory down")}

	entries, err := newTestFeed(repo, directory, newFakeCache()).GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Nil(t, entry.Author)
	}
}

func TestGetAllServesCachedFeed(t *testing.T) {
	cache := newFakeCache()
	cachedEntries := []*model.FeedEntry{
		{Post: *testPost("a", "cached", time.Now().UTC())},
	}
	require.NoError(t, cache.SetJSON(context.Background(), redisrepo.RecentFeedKey(), cachedEntries, time.Minute))

	repo := &fakePostRepo{}
	directory := &fakeDirectory{}

	entries, err := newTestFeed(repo, directory, cache).GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cached", entries[0].Post.Content)
	assert.Zero(t, repo.findRecentCalls)
}

func TestGetPostByIDNotFound(t *testing.T) {
	repo := &fakePostRepo{}
	directory := &fakeDirectory{}

	entry, err := newTestFeed(repo, directory, newFakeCache()).GetPostByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Nil(t, entry)
}

func TestGetPostByIDResolvesAuthor(t *testing.T) {
	post := testPost("a", "hi", time.Now().UTC())
	repo := &fakePostRepo{posts: []*model.Post{post}}
	directory := &fakeDirectory{users: map[string]model.Author{
		"a": testAuthor("a", "alice"),
	}}
	feed := newTestFeed(repo, directory, newFakeCache())

	entry, err := feed.GetPostByID(context.Background(), post.ID)

	require.NoError(t, err)
	assert.Equal(t, post.ID, entry.Post.ID)
	require.NotNil(t, entry.Author)
	assert.Equal(t, "alice", *entry.Author.Username)

	// second read comes from the cache, no second directory call
	_, err = feed.GetPostByID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, directory.listCalls, 1)
}

func TestGetPostsByUserIDFiltersByAuthor(t *testing.T) {
	now := time.Now().UTC()
	mine := []*model.Post{
		testPost("a", "newer", now),
		testPost("a", "older", now.Add(-time.Hour)),
	}
	repo := &fakePostRepo{posts: []*model.Post{
		mine[0],
		testPost("b", "not mine", now.Add(-time.Minute)),
		mine[1],
	}}
	directory := &fakeDirectory{users: map[string]model.Author{
		"a": testAuthor("a", "alice"),
	}}

	entries, err := newTestFeed(repo, directory, newFakeCache()).GetPostsByUserID(context.Background(), "a")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	for i := range mine {
		assert.Equal(t, mine[i].ID, entries[i].Post.ID)
	}
}

func TestGetPostsByUserIDEmptyForUnknownAuthor(t *testing.T) {
	repo := &fakePostRepo{posts: []*model.Post{
		testPost("a", "hi", time.Now().UTC()),
	}}
	directory := &fakeDirectory{}

	entries, err := newTestFeed(repo, directory, newFakeCache()).GetPostsByUserID(context.Background(), "nobody")

	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, directory.listCalls)
}
