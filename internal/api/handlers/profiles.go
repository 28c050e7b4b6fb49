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

func (h *Handler) ListProfilesHandler(c *gin.Context) {
	limit, offset := helpers.ParsePage(c)
	search := c.Query("search")

	profiles, err := h.DB.ListProfiles(c.Request.Context(), database.ListProfilesParams{
		Username: sql.NullString{String: search, Valid: true},
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list profiles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": toProfileViews(profiles)})
}

func (h *Handler) GetProfileHandler(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	profile, err := h.DB.GetProfileByID(c.Request.Context(), profileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, toProfileView(profile))
}

func (h *Handler) MyProfileHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, toProfileView(profile))
}

func (h *Handler) CreateMyProfileHandler(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}
	if _, exists := h.CurrentProfile(c); exists {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile already exists"})
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := validateProfile(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": errs})
		return
	}

	now := time.Now()
	profile, err := h.DB.CreateProfile(c.Request.Context(), database.CreateProfileParams{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  req.Username,
		Bio:       sql.NullString{String: req.Bio, Valid: req.Bio != ""},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		return
	}

	c.JSON(http.StatusCreated, toProfileView(profile))
}

func (h *Handler) UpdateMyProfileHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if errs := validateProfile(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": errs})
		return
	}

	updated, err := h.DB.UpdateProfile(c.Request.Context(), database.UpdateProfileParams{
		ID:       profile.ID,
		Username: req.Username,
		Bio:      sql.NullString{String: req.Bio, Valid: req.Bio != ""},
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		return
	}

	c.JSON(http.StatusOK, toProfileView(updated))
}

func (h *Handler) DeleteMyProfileHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	if err := h.DB.DeleteProfile(c.Request.Context(), profile.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) FollowHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	err = h.Social.Follow(c.Request.Context(), profile.ID, targetID)
	switch {
	case err == nil:
		c.JSON(http.StatusCreated, gin.H{"status": "followed"})
	case errors.Is(err, social.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
	case errors.Is(err, social.ErrAlreadyFollowing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "already following"})
	case errors.Is(err, social.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to follow"})
	}
}

func (h *Handler) UnfollowHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	err = h.Social.Unfollow(c.Request.Context(), profile.ID, targetID)
	switch {
	case err == nil:
		c.Status(http.StatusNoContent)
	case errors.Is(err, social.ErrNotFollowing):
		c.JSON(http.StatusBadRequest, gin.H{"error": "not following"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unfollow"})
	}
}

func (h *Handler) MyFollowersHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	limit, offset := helpers.ParsePage(c)
	followers, err := h.Social.Followers(c.Request.Context(), profile.ID, social.Page{Limit: limit, Offset: offset})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list followers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": toProfileViews(followers)})
}

func (h *Handler) MyFollowingsHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	limit, offset := helpers.ParsePage(c)
	following, err := h.Social.Following(c.Request.Context(), profile.ID, social.Page{Limit: limit, Offset: offset})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list followings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": toProfileViews(following)})
}

func (h *Handler) FollowersHandler(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	limit, offset := helpers.ParsePage(c)
	followers, err := h.Social.Followers(c.Request.Context(), profileID, social.Page{Limit: limit, Offset: offset})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list followers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": toProfileViews(followers)})
}

func (h *Handler) FollowingsHandler(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	limit, offset := helpers.ParsePage(c)
	following, err := h.Social.Following(c.Request.Context(), profileID, social.Page{Limit: limit, Offset: offset})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list followings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": toProfileViews(following)})
}

func (h *Handler) UploadAvatarHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	file, header, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
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

	encoded, err := helpers.EncodeImage(file, 512)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to process image"})
		return
	}

	_, err = h.DB.UpdateProfileAvatar(c.Request.Context(), database.UpdateProfileAvatarParams{
		ID:     profile.ID,
		Avatar: sql.NullString{String: encoded, Valid: true},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "avatar updated"})
}

func (h *Handler) AvatarHandler(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	profile, err := h.DB.GetProfileByID(c.Request.Context(), profileID)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	if !profile.Avatar.Valid || profile.Avatar.String == "" {
		c.Status(http.StatusNotFound)
		return
	}

	imageData, err := helpers.DecodeStoredImage(profile.Avatar.String)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Cache-Control", "public, max-age=172800")
	c.Header("Content-Type", "image/webp")
	c.Writer.Write(imageData)
}
