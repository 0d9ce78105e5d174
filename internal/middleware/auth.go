package middleware

import (
	"errors"
	"net/http"

	"github.com/Abhayrajput-cs/Financial-Management-System/internal/token"
	"github.com/Abhayrajput-cs/Financial-Management-System/internal/util"

	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// Auth resolves the caller's identity from the Authorization header and puts
// the token claims into the request context. Tokens are self-contained, so no
// session lookup happens here.
func Auth(tokens *token.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := tokens.FromAuthHeader(c.GetHeader("Authorization"))
		if err != nil {
			if errors.Is(err, token.ErrMissingBearer) {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "missing or malformed authorization header")
			} else {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, "invalid or expired token")
			}
			c.Abort()
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// Identity returns the authenticated caller's claims, or nil when the request
// did not pass through Auth.
func Identity(c *gin.Context) *token.Claims {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*token.Claims)
	if !ok {
		return nil
	}
	return claims
}
