package graph

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler serves POST /graphql. Operation-level failures come back with
// status 200 and an "errors" member, as GraphQL clients expect.
func (s *Schema) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req Request
		if err := c.ShouldBindJSON(&req); err != nil || req.Query == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": []gin.H{{"message": "request body must be JSON with a query"}},
			})
			return
		}

		result := s.Execute(c.Request.Context(), req)
		if result.HasErrors() {
			messages := make([]string, 0, len(result.Errors))
			for _, e := range result.Errors {
				messages = append(messages, e.Message)
			}
			s.logger.WithFields(logrus.Fields{
				"operation": req.OperationName,
				"errors":    messages,
			}).Debug("GraphQL operation returned errors")
		}

		c.JSON(http.StatusOK, result)
	}
}
