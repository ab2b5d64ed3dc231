package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/basit/tasklist-backend/auth"
	"github.com/basit/tasklist-backend/graph/resolvers"
)

// AuthOptional resolves the Authorization header into an identity on the
// request context. The header value is used as-is. Requests without a
// credential continue anonymously; a credential that fails verification
// ends the request before any resolver runs.
func AuthOptional(tokens auth.TokenVerifier, users auth.UserFinder, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		credential := c.GetHeader("Authorization")

		user, err := auth.ResolveIdentity(c.Request.Context(), tokens, users, credential)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidToken) {
				logger.WithError(err).WithField("ip", c.ClientIP()).Warn("Rejected request credential")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"errors": []gin.H{{
						"message":    err.Error(),
						"extensions": gin.H{"code": resolvers.CodeUnauthenticated},
					}},
				})
				return
			}
			logger.WithError(err).Error("Failed to resolve identity")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"errors": []gin.H{{"message": "internal server error"}},
			})
			return
		}

		if user != nil {
			c.Request = c.Request.WithContext(resolvers.WithUser(c.Request.Context(), user))
			c.Set("userID", user.ID)
		}
		c.Next()
	}
}
