package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionChecker is the slice of the session manager the guard needs.
type SessionChecker interface {
	IsLoggedIn() bool
}

// Guard gates the authenticated section of the portal. The decision is
// purely local: a token in the session store means allow, regardless of
// whether the server would still accept it. A stale token is only
// discovered when the next upstream call fails.
func Guard(session SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.IsLoggedIn() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success":  false,
				"message":  "login required",
				"redirect": "/auth/login",
			})
			return
		}
		c.Next()
	}
}
