package routes

import (
	"net/http"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/gin-gonic/gin"

	"github.com/basit/tasklist-backend/handlers"
)

func RegisterGraphQLRoutes(r *gin.Engine, graphql gin.HandlerFunc, auth gin.HandlerFunc) {
	r.GET("/", func(c *gin.Context) {
		playground.Handler("GraphQL playground", "/graphql").ServeHTTP(c.Writer, c.Request)
	})
	r.POST("/graphql", auth, graphql)
}

// RegisterAvatarRoutes is a no-op when no bucket is configured.
func RegisterAvatarRoutes(r *gin.Engine, avatars *handlers.AvatarHandler) {
	if avatars == nil {
		return
	}
	r.POST("/api/avatars", avatars.Upload)
}

func RegisterHealthRoutes(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
