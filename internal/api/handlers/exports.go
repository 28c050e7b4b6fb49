// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/natterhq/natter/internal/exports"
)

func (h *Handler) ExportPostsHandler(c *gin.Context) {
	profile, ok := h.CurrentProfile(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	filename := "posts_" + time.Now().Format("20060102_150405") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := exports.WritePostsCSV(c.Request.Context(), h.DB, profile.ID, c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
