// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/natterhq/natter/internal/database"
)

func (h *Handler) CreateCommentHandler(c *gin.Context) {
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

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := validateComment(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": errs})
		return
	}

	ctx := c.Request.Context()
	post, err := h.DB.GetPost(ctx, postID)
	if err != nil || !post.Published {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}

	comment, err := h.DB.CreateComment(ctx, database.CreateCommentParams{
		ID:        uuid.New(),
		PostID:    post.ID,
		AuthorID:  profile.ID,
		Content:   req.Content,
		CreatedAt: time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, CommentView{
		ID:             comment.ID,
		PostID:         comment.PostID,
		AuthorID:       comment.AuthorID,
		AuthorUsername: profile.Username,
		Content:        comment.Content,
		CreatedAt:      comment.CreatedAt,
	})
}

func (h *Handler) DeleteCommentHandler(c *gin.Context) {
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
	commentID, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	rows, err := h.DB.DeleteComment(c.Request.Context(), database.DeleteCommentParams{
		ID:       commentID,
		PostID:   postID,
		AuthorID: profile.ID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete comment"})
		return
	}
	if rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
		return
	}

	c.Status(http.StatusNoContent)
}
