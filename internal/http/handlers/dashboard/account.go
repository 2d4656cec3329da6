package dashboard

import (
	"errors"
	"strings"

	handlershared "github.com/ghostform/ghostform/internal/http/handlers/shared"
	"github.com/ghostform/ghostform/internal/http/response"
	"github.com/ghostform/ghostform/internal/service"

	"github.com/gin-gonic/gin"
)

// Me returns the logged-in user's identity.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	email, _ := c.Get("user_email")

	response.Success(c, gin.H{
		"id":    userID,
		"email": email,
	})
}

// Logout revokes the current session and clears the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if token, ok := c.Get("session_token"); ok {
		if tokenStr, ok := token.(string); ok && strings.TrimSpace(tokenStr) != "" {
			if err := h.SessionService.Revoke(tokenStr); err != nil {
				handlershared.RequestLog(c).Warnw("session_revoke_failed", "error", err)
			}
		}
	}

	handlershared.ClearSessionCookie(c, h.Config.Session)
	response.Success(c, gin.H{"logged_out": true})
}

// DeleteAccount removes the account with all of its forms, submissions
// and sessions, then clears the cookie.
func (h *Handler) DeleteAccount(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}

	if err := h.AuthService.DeleteAccount(userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "account not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "could not delete account", err)
		return
	}

	handlershared.ClearSessionCookie(c, h.Config.Session)
	response.Success(c, gin.H{"deleted": true})
}
