// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/natterhq/natter/internal/authhelp"
	"github.com/natterhq/natter/internal/database"
)

func (h *Handler) RegisterHandler(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if errs := validateRegister(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": errs})
		return
	}

	if err := authhelp.ValidatePasswordStrength(req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": FieldErrors{"password": err.Error()}})
		return
	}

	hash, err := authhelp.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	username := req.Username
	if username == "" {
		username = uuid.NewString()
	}

	ctx := c.Request.Context()
	tx, err := h.DBConn.BeginTx(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}
	defer tx.Rollback()

	qtx := h.DB.WithTx(tx)
	now := time.Now()

	user, err := qtx.CreateUser(ctx, database.CreateUserParams{
		ID:           uuid.New(),
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email or username already taken"})
		return
	}

	// The profile accompanies the account from the start.
	profile, err := qtx.CreateProfile(ctx, database.CreateProfileParams{
		ID:        uuid.New(),
		UserID:    user.ID,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email or username already taken"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      user.ID,
		"email":   user.Email,
		"profile": toProfileView(profile),
	})
}

func (h *Handler) LoginHandler(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.DB.GetUserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !authhelp.CheckPasswordHash(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	session := sessions.Default(c)

	if user.TotpEnabled {
		session.Set("2fa_pending_user_id", user.ID.String())
		session.Save()
		c.JSON(http.StatusOK, gin.H{"2fa_required": true})
		return
	}

	h.completeLogin(c, user)
}

func (h *Handler) Login2FAHandler(c *gin.Context) {
	var req TwoFARequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session := sessions.Default(c)
	pendingID := session.Get("2fa_pending_user_id")
	if pendingID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no pending login"})
		return
	}

	userID, err := uuid.Parse(pendingID.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no pending login"})
		return
	}

	user, err := h.DB.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "no pending login"})
		return
	}

	if !user.TotpSecret.Valid || !authhelp.ValidateTOTP(req.Code, user.TotpSecret.String) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid code"})
		return
	}

	session.Delete("2fa_pending_user_id")
	h.completeLogin(c, user)
}

func (h *Handler) completeLogin(c *gin.Context, user database.User) {
	token, err := authhelp.IssueToken(user.ID, h.Config.JWTSecret, h.Config.TokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID.String())
	session.Save()

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"expires_in":   int(h.Config.TokenTTL.Seconds()),
	})
}

func (h *Handler) LogoutHandler(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Status(http.StatusNoContent)
}

func (h *Handler) MeHandler(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           user.ID,
		"email":        user.Email,
		"is_staff":     user.IsStaff,
		"totp_enabled": user.TotpEnabled,
		"created_at":   user.CreatedAt,
	})
}

func (h *Handler) UpdateMeHandler(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ctx := c.Request.Context()

	if req.Email != "" {
		if _, err := h.DB.UpdateUserEmail(ctx, database.UpdateUserEmailParams{
			ID:    user.ID,
			Email: req.Email,
		}); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email already taken"})
			return
		}
	}

	if req.Password != "" {
		if err := authhelp.ValidatePasswordStrength(req.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": FieldErrors{"password": err.Error()}})
			return
		}
		hash, err := authhelp.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
			return
		}
		if _, err := h.DB.UpdateUserPassword(ctx, database.UpdateUserPasswordParams{
			ID:           user.ID,
			PasswordHash: hash,
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}
