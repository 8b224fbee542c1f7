package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskboard/internal/domain"
)

const identityKey = "identity"

// authFailedMessage is shared by every authentication failure so clients
// cannot tell a missing token from an invalid one or a deleted user.
const authFailedMessage = "Not authorized"

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// requireAuth resolves the bearer token into a user and attaches it to the
// request context. Handlers behind it never re-verify tokens; they read the
// identity via currentUser.
func (h *Handler) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, prefix) {
			abortUnauthorized(c)
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
		userID, err := h.tokens.Verify(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		// the token may outlive the account it was issued for
		user, err := h.users.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(identityKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authFailedMessage})
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
