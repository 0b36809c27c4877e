package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(g *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	g.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestStartAndHealth(t *testing.T) {
	g := gin.New()
	RegisterHealth(g, nil)

	w := serve(g, "/start")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Hello World!", w.Body.String())

	w = serve(g, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "healthy", w.Body.String())
}

func TestReady(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("server selection timeout") }

	cases := []struct {
		name   string
		checks map[string]Check
		code   int
		status string
		deps   map[string]bool
	}{
		{"no checks", nil, http.StatusOK, "ready", map[string]bool{}},
		{"all up", map[string]Check{"mongo": ok, "redis": ok}, http.StatusOK, "ready", map[string]bool{"mongo": true, "redis": true}},
		{"store down", map[string]Check{"mongo": down, "redis": ok}, http.StatusServiceUnavailable, "not_ready", map[string]bool{"mongo": false, "redis": true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := gin.New()
			RegisterHealth(g, tc.checks)

			w := serve(g, "/ready")
			require.Equal(t, tc.code, w.Code)

			var body struct {
				Status string          `json:"status"`
				Deps   map[string]bool `json:"deps"`
				Uptime string          `json:"uptime"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.status, body.Status)
			assert.Equal(t, tc.deps, body.Deps)
			assert.NotEmpty(t, body.Uptime)
		})
	}
}
