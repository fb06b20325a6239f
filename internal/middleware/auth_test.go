package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventflow/eventflow-api/internal/auth"
	"github.com/eventflow/eventflow-api/internal/middleware"
)

const testSecret = "test-secret"

// okHandler records whether the chain reached it and echoes the identity.
func okHandler(reached *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*reached = true
		id, _ := auth.FromContext(c)
		return c.JSON(http.StatusOK, id)
	}
}

func TestAuth_MissingToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic abc123"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			reached := false
			err := middleware.Auth(testSecret)(okHandler(&reached))(c)
			require.NoError(t, err)
			assert.False(t, reached, "downstream handler must not run")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"Access denied. No token provided."}`, rec.Body.String())
		})
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	t.Parallel()

	wrongSecret := func() string {
		// A structurally valid token that fails verification; the client
		// must not be able to tell why.
		raw, err := auth.NewToken("some-other-secret", auth.Identity{ID: 1, Email: "x@y.co", Role: "user"})
		require.NoError(t, err)
		return raw
	}()

	for _, raw := range []string{"garbage", wrongSecret} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		reached := false
		err := middleware.Auth(testSecret)(okHandler(&reached))(c)
		require.NoError(t, err)
		assert.False(t, reached)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid token."}`, rec.Body.String())
	}
}

func TestAuth_ValidTokenAttachesIdentity(t *testing.T) {
	t.Parallel()

	raw, err := auth.NewToken(testSecret, auth.Identity{ID: 7, Email: "alice@example.com", Role: "admin"})
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got auth.Identity
	next := func(c echo.Context) error {
		id, ok := auth.FromContext(c)
		require.True(t, ok)
		got = id
		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, middleware.Auth(testSecret)(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, auth.Identity{ID: 7, Email: "alice@example.com", Role: "admin"}, got)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		identity   *auth.Identity
		allowed    []string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "no identity on a gated route",
			identity:   nil,
			allowed:    []string{"admin"},
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"Access denied. Authentication required."}`,
		},
		{
			name:       "role not in set",
			identity:   &auth.Identity{ID: 1, Email: "alice@example.com", Role: "user"},
			allowed:    []string{"admin"},
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"Access denied. Insufficient permissions."}`,
		},
		{
			name:       "role in set",
			identity:   &auth.Identity{ID: 2, Email: "root@example.com", Role: "admin"},
			allowed:    []string{"admin"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "multiple allowed roles",
			identity:   &auth.Identity{ID: 3, Email: "bob@example.com", Role: "user"},
			allowed:    []string{"admin", "user"},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.identity != nil {
				auth.SetIdentity(c, *tt.identity)
			}

			reached := false
			err := middleware.RequireRole(tt.allowed...)(okHandler(&reached))(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantStatus == http.StatusOK, reached)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
