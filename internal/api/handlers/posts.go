// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/natterhq/natter/internal/database"
	"github.com/natterhq/natter/internal/helpers"
	"github.com/natterhq/natter/internal/social"
)

const publishTimeLayout = "2006-01-02 15:04:05"

func toPostView(row database.ListPostsRow) PostView {
	view := PostView{
		ID:             row.ID,
		AuthorID:       row.AuthorID,
		AuthorUsername: row.AuthorUsername,
		Title:          row.Title,
		Content:        row.Content,
		HasImage:       row.Image.Valid && row.Image.String != "",
		LikeCount:      row.LikeCount,
		CommentCount:   row.CommentCount,
		CreatedAt:      row.CreatedAt,
	}
	if row.PublishAt.Valid {
		t := row.PublishAt.Time
		view.PublishAt = &t
	}
	return view
}

func toPostViews(rows []database.ListPostsRow) []PostView {
	views := make([]PostView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toPostView(row))
	}
	return views
}

func (h *Handler) CreatePostHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := validatePost(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": errs})
		return
	}

	now := time.Now()
	createdAt := now
	published := true
	var publishAt sql.NullTime

	if req.PublishTime != "" {
		t, err := time.ParseInLocation(publishTimeLayout, req.PublishTime, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": FieldErrors{"publish_time": "must match format " + publishTimeLayout}})
			return
		}
		if t.After(now) {
			publishAt = sql.NullTime{Time: t, Valid: true}
			published = false
			// The post is timestamped with its publication moment so the
			// feed ordering matches when readers first see it.
			createdAt = t
		}
	}

	ctx := c.Request.Context()
	post, err := h.DB.CreatePost(ctx, database.CreatePostParams{
		ID:        uuid.New(),
		AuthorID:  profile.ID,
		Title:     req.Title,
		Content:   req.Content,
		PublishAt: publishAt,
		Published: published,
		CreatedAt: createdAt,
		UpdatedAt: now,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create post"})
		return
	}

	for _, name := range req.Tags {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		tag, err := h.DB.UpsertTag(ctx, database.UpsertTagParams{ID: uuid.New(), Name: name})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to tag post"})
			return
		}
		if err := h.DB.CreatePostTag(ctx, database.CreatePostTagParams{PostID: post.ID, TagID: tag.ID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to tag post"})
			return
		}
	}

	if !published {
		c.JSON(http.StatusAccepted, gin.H{
			"id":     post.ID,
			"status": "post is scheduled for publication at " + post.PublishAt.Time.Format(publishTimeLayout),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         post.ID,
		"title":      post.Title,
		"content":    post.Content,
		"created_at": post.CreatedAt,
	})
}

func (h *Handler) ListPostsHandler(c *gin.Context) {
	limit, offset := helpers.ParsePage(c)

	posts, err := h.DB.ListPosts(c.Request.Context(), database.ListPostsParams{
		Search: c.Query("search"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": toPostViews(posts)})
}

func (h *Handler) GetPostHandler(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	ctx := c.Request.Context()
	post, err := h.DB.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}

	// Scheduled posts stay invisible until the dispatcher publishes them.
	if !post.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	comments, err := h.DB.ListPostComments(ctx, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load comments"})
		return
	}

	commentViews := make([]CommentView, 0, len(comments))
	for _, cm := range comments {
		commentViews = append(commentViews, CommentView{
			ID:             cm.ID,
			PostID:         cm.PostID,
			AuthorID:       cm.AuthorID,
			AuthorUsername: cm.AuthorUsername,
			Content:        cm.Content,
			CreatedAt:      cm.CreatedAt,
		})
	}

	tags, err := h.DB.ListPostTags(ctx, post.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tags"})
		return
	}
	tagNames := make([]string, 0, len(tags))
	for _, t := range tags {
		tagNames = append(tagNames, t.Name)
	}

	view := toPostView(database.ListPostsRow{
		ID:             post.ID,
		AuthorID:       post.AuthorID,
		Title:          post.Title,
		Content:        post.Content,
		Image:          post.Image,
		PublishAt:      post.PublishAt,
		Published:      post.Published,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
		AuthorUsername: post.AuthorUsername,
		LikeCount:      post.LikeCount,
		CommentCount:   int64(len(comments)),
	})
	view.Tags = tagNames

	c.JSON(http.StatusOK, gin.H{
		"post":     view,
		"comments": commentViews,
	})
}

func (h *Handler) UpdatePostHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := validatePost(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": errs})
		return
	}

	ctx := c.Request.Context()
	post, err := h.DB.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	if post.AuthorID != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author may edit a post"})
		return
	}

	updated, err := h.DB.UpdatePost(ctx, database.UpdatePostParams{
		ID:      post.ID,
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update post"})
		return
	}

	if req.Tags != nil {
		if err := h.DB.DeletePostTags(ctx, post.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to tag post"})
			return
		}
		for _, name := range req.Tags {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			tag, err := h.DB.UpsertTag(ctx, database.UpsertTagParams{ID: uuid.New(), Name: name})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to tag post"})
				return
			}
			if err := h.DB.CreatePostTag(ctx, database.CreatePostTagParams{PostID: post.ID, TagID: tag.ID}); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to tag post"})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         updated.ID,
		"title":      updated.Title,
		"content":    updated.Content,
		"updated_at": updated.UpdatedAt,
	})
}

func (h *Handler) DeletePostHandler(c *gin.Context) {
	user, _ := h.CurrentUser(c)
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	ctx := c.Request.Context()
	post, err := h.DB.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	if post.AuthorID != profile.ID && !user.IsStaff {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author may delete a post"})
		return
	}

	if _, err := h.DB.DeletePost(ctx, post.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete post"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) MyPostsHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	limit, offset := helpers.ParsePage(c)
	posts, err := h.DB.ListPostsByAuthor(c.Request.Context(), database.ListPostsByAuthorParams{
		AuthorID: profile.ID,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list posts"})
		return
	}

	views := make([]PostView, 0, len(posts))
	for _, row := range posts {
		views = append(views, toPostView(database.ListPostsRow(row)))
	}

	c.JSON(http.StatusOK, gin.H{"results": views})
}

func (h *Handler) FollowingPostsHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	limit, offset := helpers.ParsePage(c)
	posts, err := h.Social.ComposeFeed(c.Request.Context(), profile.ID, social.Page{Limit: limit, Offset: offset})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compose feed"})
		return
	}

	views := make([]PostView, 0, len(posts))
	for _, row := range posts {
		views = append(views, toPostView(database.ListPostsRow(row)))
	}

	c.JSON(http.StatusOK, gin.H{"results": views})
}

func (h *Handler) LikedPostsHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	limit, offset := helpers.ParsePage(c)
	posts, err := h.DB.ListLikedPosts(c.Request.Context(), database.ListLikedPostsParams{
		ProfileID: profile.ID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list liked posts"})
		return
	}

	views := make([]PostView, 0, len(posts))
	for _, row := range posts {
		views = append(views, toPostView(database.ListPostsRow(row)))
	}

	c.JSON(http.StatusOK, gin.H{"results": views})
}

func (h *Handler) LikeHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	liked, count, err := h.Social.ToggleLike(c.Request.Context(), profile.ID, postID)
	if err != nil {
		if errors.Is(err, social.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle like"})
		return
	}

	if liked {
		c.JSON(http.StatusCreated, gin.H{"status": "liked", "like_count": count})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unliked", "like_count": count})
}

func (h *Handler) UploadPostImageHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	ctx := c.Request.Context()
	post, err := h.DB.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load post"})
		return
	}
	if post.AuthorID != profile.ID {
		c.JSON(http.StatusForbidden, gin.H{"error": "only the author may attach an image"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	if header.Size > 25*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file size too large (max 25MB)"})
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" && ext != ".webp" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid file type (allowed: jpg, jpeg, png, webp)"})
		return
	}

	encoded, err := helpers.EncodeImage(file, 1600)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to process image"})
		return
	}

	if err := h.DB.UpdatePostImage(ctx, database.UpdatePostImageParams{
		ID:    post.ID,
		Image: sql.NullString{String: encoded, Valid: true},
	}); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "image attached"})
}

func (h *Handler) PostImageHandler(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	post, err := h.DB.GetPost(c.Request.Context(), postID)
	if err != nil || !post.Published || !post.Image.Valid || post.Image.String == "" {
		c.Status(http.StatusNotFound)
		return
	}

	imageData, err := helpers.DecodeStoredImage(post.Image.String)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Cache-Control", "public, max-age=172800")
	c.Header("Content-Type", "image/webp")
	c.Writer.Write(imageData)
}
