// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/natterhq/natter/internal/config"
	"github.com/natterhq/natter/internal/database"
	"github.com/natterhq/natter/internal/middleware"
	"github.com/natterhq/natter/internal/social"

	_ "github.com/lib/pq"
)

type testEnv struct {
	router *gin.Engine
	db     *database.Queries
	svc    *social.Service
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

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

	require.NoError(t, goose.Up(db, "../../../sql/schema"))

	queries := database.New(db)
	cfg := &config.AppConfig{
		JWTSecret:     []byte("test-secret"),
		TokenTTL:      time.Hour,
		SessionSecret: []byte("session-secret"),
	}
	svc := social.NewService(queries)
	h := NewHandler(queries, db, cfg, svc, nil)

	r := gin.New()
	r.Use(sessions.Sessions("natter_session", cookie.NewStore(cfg.SessionSecret)))
	r.Use(middleware.AuthMiddleware(queries, cfg))

	r.GET("/health", h.HealthCheckHandler)
	api := r.Group("/api")
	{
		api.POST("/register", h.RegisterHandler)
		api.POST("/login", h.LoginHandler)
		api.GET("/me", h.MeHandler)
		api.GET("/profiles", h.ListProfilesHandler)
		api.GET("/profiles/me", h.MyProfileHandler)
		api.GET("/profiles/:id", h.GetProfileHandler)
		api.POST("/profiles/:id/follow", h.FollowHandler)
		api.DELETE("/profiles/:id/follow", h.UnfollowHandler)
		api.GET("/profiles/:id/followers", h.FollowersHandler)
		api.GET("/profiles/:id/stats", h.ProfileStatsHandler)
		api.GET("/posts", h.ListPostsHandler)
		api.POST("/posts", h.CreatePostHandler)
		api.GET("/posts/export", h.ExportPostsHandler)
		api.GET("/posts/following_posts", h.FollowingPostsHandler)
		api.GET("/posts/liked", h.LikedPostsHandler)
		api.GET("/posts/:id", h.GetPostHandler)
		api.POST("/posts/:id/like", h.LikeHandler)
		api.POST("/posts/:id/comment", h.CreateCommentHandler)
		api.DELETE("/posts/:id/comment/:comment_id", h.DeleteCommentHandler)
	}

	return &testEnv{router: r, db: queries, svc: svc}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// signup registers a user and logs in, returning the bearer token and the
// profile id.
func (e *testEnv) signup(t *testing.T, username string) (token, profileID string) {
	t.Helper()

	w := e.request(t, "POST", "/api/register", "", gin.H{
		"email":    username + "@example.com",
		"password": "sunny1day",
		"username": username,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	profile := decode(t, w)["profile"].(map[string]any)
	profileID = profile["id"].(string)

	w = e.request(t, "POST", "/api/login", "", gin.H{
		"email":    username + "@example.com",
		"password": "sunny1day",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token = decode(t, w)["access_token"].(string)
	return token, profileID
}

func TestAuthFlow(t *testing.T) {
	env := setupTestEnv(t)

	t.Run("register and login", func(t *testing.T) {
		token, _ := env.signup(t, "alice")

		w := env.request(t, "GET", "/api/me", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice@example.com", decode(t, w)["email"])
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		w := env.request(t, "POST", "/api/register", "", gin.H{
			"email":    "alice@example.com",
			"password": "sunny1day",
			"username": "alice2",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		w := env.request(t, "POST", "/api/login", "", gin.H{
			"email":    "alice@example.com",
			"password": "wrong1password",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected route without token", func(t *testing.T) {
		w := env.request(t, "GET", "/api/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFollowEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	aliceToken, aliceProfile := env.signup(t, "alice")
	_, bobProfile := env.signup(t, "bob")

	t.Run("follow", func(t *testing.T) {
		w := env.request(t, "POST", "/api/profiles/"+bobProfile+"/follow", aliceToken, nil)
		assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("duplicate follow", func(t *testing.T) {
		w := env.request(t, "POST", "/api/profiles/"+bobProfile+"/follow", aliceToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("self follow", func(t *testing.T) {
		w := env.request(t, "POST", "/api/profiles/"+aliceProfile+"/follow", aliceToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("follow unknown profile", func(t *testing.T) {
		w := env.request(t, "POST", "/api/profiles/01234567-89ab-cdef-0123-456789abcdef/follow", aliceToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("followers listing", func(t *testing.T) {
		w := env.request(t, "GET", "/api/profiles/"+bobProfile+"/followers", aliceToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		results := decode(t, w)["results"].([]any)
		require.Len(t, results, 1)
		follower := results[0].(map[string]any)
		assert.Equal(t, "alice", follower["username"])
	})

	t.Run("unfollow", func(t *testing.T) {
		w := env.request(t, "DELETE", "/api/profiles/"+bobProfile+"/follow", aliceToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = env.request(t, "DELETE", "/api/profiles/"+bobProfile+"/follow", aliceToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPostAndFeedEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	authorToken, authorProfile := env.signup(t, "author")
	readerToken, _ := env.signup(t, "reader")

	w := env.request(t, "POST", "/api/profiles/"+authorProfile+"/follow", readerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var postID string
	t.Run("create post", func(t *testing.T) {
		w := env.request(t, "POST", "/api/posts", authorToken, gin.H{
			"title":   "hello",
			"content": "first post",
			"tags":    []string{"intro"},
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		postID = decode(t, w)["id"].(string)
	})

	t.Run("fetch post with tags", func(t *testing.T) {
		w := env.request(t, "GET", "/api/posts/"+postID, readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		post := decode(t, w)["post"].(map[string]any)
		assert.Equal(t, "hello", post["title"])
		assert.Equal(t, "author", post["author_username"])
		tags := post["tags"].([]any)
		require.Len(t, tags, 1)
		assert.Equal(t, "intro", tags[0])
	})

	t.Run("feed contains followed author's post", func(t *testing.T) {
		w := env.request(t, "GET", "/api/posts/following_posts", readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		results := decode(t, w)["results"].([]any)
		require.Len(t, results, 1)
		assert.Equal(t, postID, results[0].(map[string]any)["id"])
	})

	t.Run("author's own feed is empty", func(t *testing.T) {
		w := env.request(t, "GET", "/api/posts/following_posts", authorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode(t, w)["results"])
	})

	t.Run("search by title prefix", func(t *testing.T) {
		w := env.request(t, "GET", "/api/posts?search=hel", readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["results"], 1)

		w = env.request(t, "GET", "/api/posts?search=zzz", readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode(t, w)["results"])
	})

	t.Run("like toggle", func(t *testing.T) {
		w := env.request(t, "POST", "/api/posts/"+postID+"/like", readerToken, nil)
		require.Equal(t, http.StatusCreated, w.Code)
		body := decode(t, w)
		assert.Equal(t, "liked", body["status"])
		assert.Equal(t, float64(1), body["like_count"])

		w = env.request(t, "GET", "/api/posts/liked", readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["results"], 1)

		w = env.request(t, "POST", "/api/posts/"+postID+"/like", readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "unliked", decode(t, w)["status"])
	})

	t.Run("comment round trip", func(t *testing.T) {
		w := env.request(t, "POST", "/api/posts/"+postID+"/comment", readerToken, gin.H{
			"content": "nice one",
		})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		commentID := decode(t, w)["id"].(string)

		w = env.request(t, "GET", "/api/posts/"+postID, readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		comments := decode(t, w)["comments"].([]any)
		require.Len(t, comments, 1)
		assert.Equal(t, "nice one", comments[0].(map[string]any)["content"])

		w = env.request(t, "DELETE", "/api/posts/"+postID+"/comment/"+commentID, readerToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = env.request(t, "DELETE", "/api/posts/"+postID+"/comment/"+commentID, readerToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("profile stats", func(t *testing.T) {
		w := env.request(t, "GET", "/api/profiles/"+authorProfile+"/stats", readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, float64(1), body["post_count"])
		assert.Equal(t, float64(1), body["follower_count"])
	})

	t.Run("export posts csv", func(t *testing.T) {
		w := env.request(t, "GET", "/api/posts/export", authorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Contains(t, w.Body.String(), "hello")
	})
}

func TestScheduledPostEndpoints(t *testing.T) {
	env := setupTestEnv(t)

	authorToken, authorProfile := env.signup(t, "author")
	readerToken, _ := env.signup(t, "reader")

	w := env.request(t, "POST", "/api/profiles/"+authorProfile+"/follow", readerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	publishAt := time.Now().Add(30 * time.Minute)
	w = env.request(t, "POST", "/api/posts", authorToken, gin.H{
		"title":        "later",
		"content":      "from the future",
		"publish_time": publishAt.Format("2006-01-02 15:04:05"),
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	postID := decode(t, w)["id"].(string)

	t.Run("hidden until published", func(t *testing.T) {
		w := env.request(t, "GET", "/api/posts/"+postID, readerToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = env.request(t, "GET", "/api/posts/following_posts", readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decode(t, w)["results"])
	})

	t.Run("visible after dispatch", func(t *testing.T) {
		n, err := env.svc.DispatchDue(context.Background(), publishAt.Add(time.Second))
		require.NoError(t, err)
		require.Equal(t, int64(1), n)

		w := env.request(t, "GET", "/api/posts/"+postID, readerToken, nil)
		assert.Equal(t, http.StatusOK, w.Code)

		w = env.request(t, "GET", "/api/posts/following_posts", readerToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		results := decode(t, w)["results"].([]any)
		require.Len(t, results, 1)
		assert.Equal(t, postID, results[0].(map[string]any)["id"])
	})

	t.Run("malformed publish_time", func(t *testing.T) {
		w := env.request(t, "POST", "/api/posts", authorToken, gin.H{
			"title":        "bad",
			"content":      "x",
			"publish_time": "tomorrow",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPostWriteHandlersStorageFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)

	conn, err := sql.Open("postgres", "postgres://localhost:1/natter?sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, conn.Close())

	h := NewHandler(database.New(conn), conn, &config.AppConfig{}, social.NewService(nil), nil)

	cases := []struct {
		name    string
		method  string
		body    string
		handler gin.HandlerFunc
	}{
		{"update", http.MethodPut, `{"title":"t","content":"c"}`, h.UpdatePostHandler},
		{"delete", http.MethodDelete, "", h.DeletePostHandler},
		{"upload image", http.MethodPost, "", h.UploadPostImageHandler},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(tc.method, "/", bytes.NewBufferString(tc.body))
			c.Request.Header.Set("Content-Type", "application/json")
			c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
			c.Set(middleware.ContextUserKey, database.User{ID: uuid.New()})
			c.Set(middleware.ContextProfileKey, database.Profile{ID: uuid.New()})

			tc.handler(c)
			assert.Equal(t, http.StatusInternalServerError, w.Code,
				"a storage failure should not read as a missing post")
		})
	}
}
