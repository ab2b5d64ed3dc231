package graph

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, _ := setupTestSchema(t)
	router := gin.New()
	router.POST("/graphql", s.Handler())

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/graphql", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("malformed body", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, post(`{`).Code)
		assert.Equal(t, http.StatusBadRequest, post(`{}`).Code)
	})

	t.Run("operation errors keep status 200", func(t *testing.T) {
		w := post(`{"query": "{ myTaskLists { id } }"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Data   map[string]interface{} `json:"data"`
			Errors []struct {
				Message    string                 `json:"message"`
				Extensions map[string]interface{} `json:"extensions"`
			} `json:"errors"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "UNAUTHENTICATED", body.Errors[0].Extensions["code"])
	})

	t.Run("sign up", func(t *testing.T) {
		w := post(`{"query": "mutation($in: SignUpInput!) { signUp(input: $in) { token user { email } } }",
			"variables": {"in": {"email": "ada@example.com", "password": "pw", "name": "Ada"}}}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"email":"ada@example.com"`)
		assert.NotContains(t, w.Body.String(), "errors")
	})
}
