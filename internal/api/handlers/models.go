// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/natterhq/natter/internal/database"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TwoFARequest struct {
	Code string `json:"code"`
}

type TwoFAEnableRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}

type UpdateAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

type PostRequest struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	PublishTime string   `json:"publish_time"`
}

type CommentRequest struct {
	Content string `json:"content"`
}

type ProfileView struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Bio       string    `json:"bio,omitempty"`
	HasAvatar bool      `json:"has_avatar"`
	CreatedAt time.Time `json:"created_at"`
}

type PostView struct {
	ID             uuid.UUID  `json:"id"`
	AuthorID       uuid.UUID  `json:"author_id"`
	AuthorUsername string     `json:"author_username"`
	Title          string     `json:"title"`
	Content        string     `json:"content"`
	HasImage       bool       `json:"has_image"`
	LikeCount      int64      `json:"like_count"`
	CommentCount   int64      `json:"comment_count"`
	Tags           []string   `json:"tags,omitempty"`
	PublishAt      *time.Time `json:"publish_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type CommentView struct {
	ID             uuid.UUID `json:"id"`
	PostID         uuid.UUID `json:"post_id"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorUsername string    `json:"author_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

func toProfileView(p database.Profile) ProfileView {
	return ProfileView{
		ID:        p.ID,
		Username:  p.Username,
		Bio:       p.Bio.String,
		HasAvatar: p.Avatar.Valid && p.Avatar.String != "",
		CreatedAt: p.CreatedAt,
	}
}

func toProfileViews(profiles []database.Profile) []ProfileView {
	views := make([]ProfileView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, toProfileView(p))
	}
	return views
}

// FieldErrors carries field-level validation detail for 400 responses.
type FieldErrors map[string]string

func validateRegister(req RegisterRequest) FieldErrors {
	errs := FieldErrors{}
	if req.Email == "" {
		errs["email"] = "is required"
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs["email"] = "is not a valid address"
	}
	if req.Password == "" {
		errs["password"] = "is required"
	}
	if req.Username != "" {
		if err := validateUsername(req.Username); err != "" {
			errs["username"] = err
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateProfile(req ProfileRequest) FieldErrors {
	errs := FieldErrors{}
	if req.Username == "" {
		errs["username"] = "is required"
	} else if err := validateUsername(req.Username); err != "" {
		errs["username"] = err
	}
	if len(req.Bio) > 1000 {
		errs["bio"] = "must be at most 1000 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validatePost(req PostRequest) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "is required"
	} else if len(req.Title) > 255 {
		errs["title"] = "must be at most 255 characters"
	}
	if strings.TrimSpace(req.Content) == "" {
		errs["content"] = "is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateComment(req CommentRequest) FieldErrors {
	if strings.TrimSpace(req.Content) == "" {
		return FieldErrors{"content": "is required"}
	}
	return nil
}

func validateUsername(username string) string {
	if len(username) < 3 || len(username) > 150 {
		return "must be between 3 and 150 characters"
	}
	for _, r := range username {
		if !isUsernameRune(r) {
			return "may only contain letters, digits, '.', '-' and '_'"
		}
	}
	return ""
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '-', r == '_':
		return true
	}
	return false
}
