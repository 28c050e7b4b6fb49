// SPDX-License-Identifier: AGPL-3.0-only
package social

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/natterhq/natter/internal/database"

	_ "github.com/lib/pq"
)

func setupTestDB(t *testing.T) (*database.Queries, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("natter_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("postgres", connStr)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, goose.Up(db, "../../sql/schema"))

	return database.New(db), db
}

func seedProfile(t *testing.T, q *database.Queries, username string) database.Profile {
	t.Helper()
	ctx := context.Background()
	now := time.Now()

	user, err := q.CreateUser(ctx, database.CreateUserParams{
		ID:           uuid.New(),
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	profile, err := q.CreateProfile(ctx, database.CreateProfileParams{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return profile
}

func seedPost(t *testing.T, q *database.Queries, author uuid.UUID, title string, createdAt time.Time) database.Post {
	t.Helper()
	post, err := q.CreatePost(context.Background(), database.CreatePostParams{
		ID:        uuid.New(),
		AuthorID:  author,
		Title:     title,
		Content:   "content of " + title,
		Published: true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	require.NoError(t, err)
	return post
}

func TestFollow(t *testing.T) {
	q, _ := setupTestDB(t)
	svc := NewService(q)
	ctx := context.Background()

	alice := seedProfile(t, q, "alice")
	bob := seedProfile(t, q, "bob")

	t.Run("self follow rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.Follow(ctx, alice.ID, alice.ID), ErrSelfFollow)
	})

	t.Run("unknown followee", func(t *testing.T) {
		assert.ErrorIs(t, svc.Follow(ctx, alice.ID, uuid.New()), ErrNotFound)
	})

	t.Run("follow then duplicate", func(t *testing.T) {
		require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))
		assert.ErrorIs(t, svc.Follow(ctx, alice.ID, bob.ID), ErrAlreadyFollowing)
	})

	t.Run("follow is directed", func(t *testing.T) {
		followers, err := svc.Followers(ctx, bob.ID, Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, followers, 1)
		assert.Equal(t, alice.ID, followers[0].ID)

		followers, err = svc.Followers(ctx, alice.ID, Page{Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, followers)
	})

	t.Run("unfollow round trip", func(t *testing.T) {
		require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))
		assert.ErrorIs(t, svc.Unfollow(ctx, alice.ID, bob.ID), ErrNotFollowing)

		following, err := svc.Following(ctx, alice.ID, Page{Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, following)
	})
}

func TestFollowConcurrentDuplicates(t *testing.T) {
	q, _ := setupTestDB(t)
	svc := NewService(q)
	ctx := context.Background()

	alice := seedProfile(t, q, "alice")
	bob := seedProfile(t, q, "bob")

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Follow(ctx, alice.ID, bob.ID)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrAlreadyFollowing)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent follow should win")

	followers, err := svc.Followers(ctx, bob.ID, Page{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, followers, 1)
}

func TestComposeFeed(t *testing.T) {
	q, _ := setupTestDB(t)
	svc := NewService(q)
	ctx := context.Background()

	reader := seedProfile(t, q, "reader")
	followed := seedProfile(t, q, "followed")
	stranger := seedProfile(t, q, "stranger")

	require.NoError(t, svc.Follow(ctx, reader.ID, followed.ID))

	base := time.Now().Add(-time.Hour)
	older := seedPost(t, q, followed.ID, "older", base)
	newer := seedPost(t, q, followed.ID, "newer", base.Add(10*time.Minute))
	seedPost(t, q, stranger.ID, "unrelated", base.Add(20*time.Minute))

	t.Run("only followed authors, newest first", func(t *testing.T) {
		feed, err := svc.ComposeFeed(ctx, reader.ID, Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, feed, 2)
		assert.Equal(t, newer.ID, feed[0].ID)
		assert.Equal(t, older.ID, feed[1].ID)
	})

	t.Run("own posts are not in the feed", func(t *testing.T) {
		seedPost(t, q, reader.ID, "mine", base.Add(30*time.Minute))
		feed, err := svc.ComposeFeed(ctx, reader.ID, Page{Limit: 10})
		require.NoError(t, err)
		for _, p := range feed {
			assert.NotEqual(t, reader.ID, p.AuthorID)
		}
	})

	t.Run("pagination window", func(t *testing.T) {
		feed, err := svc.ComposeFeed(ctx, reader.ID, Page{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, older.ID, feed[0].ID)
	})

	t.Run("empty for a profile following nobody", func(t *testing.T) {
		feed, err := svc.ComposeFeed(ctx, stranger.ID, Page{Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, feed)
	})

	t.Run("unfollow removes the author's posts", func(t *testing.T) {
		require.NoError(t, svc.Unfollow(ctx, reader.ID, followed.ID))
		feed, err := svc.ComposeFeed(ctx, reader.ID, Page{Limit: 10})
		require.NoError(t, err)
		assert.Empty(t, feed)
	})
}

func TestComposeFeedTieBreak(t *testing.T) {
	q, _ := setupTestDB(t)
	svc := NewService(q)
	ctx := context.Background()

	reader := seedProfile(t, q, "reader")
	author := seedProfile(t, q, "author")
	require.NoError(t, svc.Follow(ctx, reader.ID, author.ID))

	at := time.Now().Truncate(time.Second)
	first := seedPost(t, q, author.ID, "first", at)
	second := seedPost(t, q, author.ID, "second", at)

	want := []uuid.UUID{first.ID, second.ID}
	if bytes.Compare(second.ID[:], first.ID[:]) > 0 {
		want = []uuid.UUID{second.ID, first.ID}
	}

	feed, err := svc.ComposeFeed(ctx, reader.ID, Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, want[0], feed[0].ID, "equal timestamps should order by id descending")
	assert.Equal(t, want[1], feed[1].ID)
}

func TestLikeConcurrentDuplicates(t *testing.T) {
	q, _ := setupTestDB(t)
	ctx := context.Background()

	author := seedProfile(t, q, "author")
	fan := seedProfile(t, q, "fan")
	post := seedPost(t, q, author.ID, "contested", time.Now())

	const attempts = 8
	results := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = q.CreateLike(ctx, database.CreateLikeParams{
				ProfileID: fan.ID,
				PostID:    post.ID,
				CreatedAt: time.Now(),
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.True(t, isUniqueViolation(err), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent like should win")

	got, err := q.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.LikeCount)
}

func TestToggleLike(t *testing.T) {
	q, _ := setupTestDB(t)
	svc := NewService(q)
	ctx := context.Background()

	author := seedProfile(t, q, "author")
	fan := seedProfile(t, q, "fan")
	post := seedPost(t, q, author.ID, "likeable", time.Now())

	t.Run("unknown post", func(t *testing.T) {
		_, _, err := svc.ToggleLike(ctx, fan.ID, uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unpublished post cannot be liked", func(t *testing.T) {
		hidden, err := q.CreatePost(ctx, database.CreatePostParams{
			ID:        uuid.New(),
			AuthorID:  author.ID,
			Title:     "not out yet",
			Content:   "waiting",
			PublishAt: sql.NullTime{Time: time.Now().Add(time.Hour), Valid: true},
			Published: false,
			CreatedAt: time.Now().Add(time.Hour),
			UpdatedAt: time.Now(),
		})
		require.NoError(t, err)

		_, _, err = svc.ToggleLike(ctx, fan.ID, hidden.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := q.GetPost(ctx, hidden.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), got.LikeCount)
	})

	t.Run("like then unlike", func(t *testing.T) {
		liked, count, err := svc.ToggleLike(ctx, fan.ID, post.ID)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, int64(1), count)

		liked, count, err = svc.ToggleLike(ctx, fan.ID, post.ID)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.Equal(t, int64(0), count)
	})

	t.Run("likes from distinct profiles accumulate", func(t *testing.T) {
		_, _, err := svc.ToggleLike(ctx, fan.ID, post.ID)
		require.NoError(t, err)
		_, count, err := svc.ToggleLike(ctx, author.ID, post.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
	})
}

func TestDispatchDue(t *testing.T) {
	q, _ := setupTestDB(t)
	svc := NewService(q)
	ctx := context.Background()

	reader := seedProfile(t, q, "reader")
	author := seedProfile(t, q, "author")
	require.NoError(t, svc.Follow(ctx, reader.ID, author.ID))

	now := time.Now()
	seedPost(t, q, author.ID, "already out", now.Add(-2*time.Hour))

	scheduledAt := now.Add(-time.Minute)
	scheduled, err := q.CreatePost(ctx, database.CreatePostParams{
		ID:        uuid.New(),
		AuthorID:  author.ID,
		Title:     "scheduled",
		Content:   "arrives later",
		PublishAt: sql.NullTime{Time: scheduledAt, Valid: true},
		Published: false,
		CreatedAt: scheduledAt,
		UpdatedAt: scheduledAt,
	})
	require.NoError(t, err)

	notYet, err := q.CreatePost(ctx, database.CreatePostParams{
		ID:        uuid.New(),
		AuthorID:  author.ID,
		Title:     "far future",
		Content:   "still waiting",
		PublishAt: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
		Published: false,
		CreatedAt: now.Add(time.Hour),
		UpdatedAt: now,
	})
	require.NoError(t, err)

	t.Run("hidden before dispatch", func(t *testing.T) {
		feed, err := svc.ComposeFeed(ctx, reader.ID, Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, "already out", feed[0].Title)
	})

	t.Run("dispatch publishes only due posts", func(t *testing.T) {
		n, err := svc.DispatchDue(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		feed, err := svc.ComposeFeed(ctx, reader.ID, Page{Limit: 10})
		require.NoError(t, err)
		require.Len(t, feed, 2)
		assert.Equal(t, scheduled.ID, feed[0].ID)

		fresh, err := q.GetPost(ctx, notYet.ID)
		require.NoError(t, err)
		assert.False(t, fresh.Published)
	})

	t.Run("dispatch is idempotent", func(t *testing.T) {
		n, err := svc.DispatchDue(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("overdue post surfaces after the hour", func(t *testing.T) {
		n, err := svc.DispatchDue(ctx, now.Add(2*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})
}

func TestFollowerCounts(t *testing.T) {
	q, _ := setupTestDB(t)
	svc := NewService(q)
	ctx := context.Background()

	hub := seedProfile(t, q, "hub")
	for i := 0; i < 3; i++ {
		fan := seedProfile(t, q, fmt.Sprintf("fan%d", i))
		require.NoError(t, svc.Follow(ctx, fan.ID, hub.ID))
	}

	count, err := q.CountFollowers(ctx, hub.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = q.CountFollowing(ctx, hub.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
