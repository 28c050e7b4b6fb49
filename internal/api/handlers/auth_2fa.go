// SPDX-License-Identifier: AGPL-3.0-only
package handlers

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natterhq/natter/internal/authhelp"
	"github.com/natterhq/natter/internal/database"
)

func (h *Handler) TwoFASetupHandler(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	key, err := authhelp.GenerateTOTP(user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate 2FA key"})
		return
	}

	qrCode, err := authhelp.GenerateQRCode(key)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate QR code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"secret":  key.Secret(),
		"qr_code": qrCode,
	})
}

func (h *Handler) TwoFAEnableHandler(c *gin.Context) {
	user, ok := h.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req TwoFAEnableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.Secret == "" || !authhelp.ValidateTOTP(req.Code, req.Secret) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid code"})
		return
	}

	_, err := h.DB.UpdateUserTOTP(c.Request.Context(), database.UpdateUserTOTPParams{
		ID:          user.ID,
		TotpSecret:  sql.NullString{String: req.Secret, Valid: true},
		TotpEnabled: true,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enable 2FA"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "2fa enabled"})
}
