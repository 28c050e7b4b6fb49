// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"database/sql"

	"github.com/gin-gonic/gin"

	"github.com/natterhq/natter/internal/config"
	"github.com/natterhq/natter/internal/database"
	"github.com/natterhq/natter/internal/middleware"
	"github.com/natterhq/natter/internal/social"
	"github.com/natterhq/natter/internal/worker"
)

type Handler struct {
	DB     *database.Queries
	DBConn *sql.DB
	Config *config.AppConfig
	Social *social.Service
	Worker *worker.Worker
}

func NewHandler(db *database.Queries, dbConn *sql.DB, cfg *config.AppConfig, svc *social.Service, w *worker.Worker) *Handler {
	return &Handler{
		DB:     db,
		DBConn: dbConn,
		Config: cfg,
		Social: svc,
		Worker: w,
	}
}

// CurrentUser returns the account resolved by the auth middleware.
func (h *Handler) CurrentUser(c *gin.Context) (database.User, bool) {
	v, ok := c.Get(middleware.ContextUserKey)
	if !ok {
		return database.User{}, false
	}
	user, ok := v.(database.User)
	return user, ok
}

// CurrentProfile returns the caller's profile, when one exists.
func (h *Handler) CurrentProfile(c *gin.Context) (database.Profile, bool) {
	v, ok := c.Get(middleware.ContextProfileKey)
	if !ok {
		return database.Profile{}, false
	}
	profile, ok := v.(database.Profile)
	return profile, ok
}
