package serverutils

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestParseUserToken(t *testing.T) {
	userID := uuid.New()
	valid := jwt.MapClaims{"user_id": userID.String(), "exp": time.Now().Add(time.Hour).Unix()}

	got, err := ParseUserToken("secret", sign(t, jwt.SigningMethodHS256, []byte("secret"), valid))
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), valid)},
		{"expired", sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{
			"user_id": userID.String(), "exp": time.Now().Add(-time.Hour).Unix(),
		})},
		{"missing claim", sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"sub": "x"})},
		{"unsigned", sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, valid)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseUserToken("secret", tt.token)
			assert.Error(t, err)
		})
	}
}

func newApp(secret string, statuses ...ErrorStatus) *fiber.App {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(statuses...))
	app.Get("/me", NewJwtMiddleware(secret), func(ctx *fiber.Ctx) error {
		return ctx.SendString(UserID(ctx).String())
	})
	return app
}

func TestJwtMiddleware(t *testing.T) {
	userID := uuid.New()
	token := sign(t, jwt.SigningMethodHS256, []byte("secret"), jwt.MapClaims{"user_id": userID.String()})

	tests := []struct {
		name   string
		secret string
		header string
		status int
		body   string
	}{
		{"auth disabled", "", "", http.StatusOK, uuid.Nil.String()},
		{"missing header", "secret", "", http.StatusUnauthorized, ""},
		{"not bearer", "secret", "Basic abc", http.StatusUnauthorized, ""},
		{"invalid token", "secret", "Bearer abc", http.StatusUnauthorized, ""},
		{"valid token", "secret", "Bearer " + token, http.StatusOK, userID.String()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := newApp(tt.secret).Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			if tt.body != "" {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.body, string(body))
			}
		})
	}
}

func TestWriteErrorMapsSentinels(t *testing.T) {
	errGone := errors.New("gone")

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware(ErrorStatus{Err: errGone, Code: http.StatusNotFound}))
	app.Get("/gone", func(ctx *fiber.Ctx) error { return fmt.Errorf("lookup: %w", errGone) })
	app.Get("/boom", func(ctx *fiber.Ctx) error { return errors.New("db password leaked") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/gone", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "password")
}

func TestValidateRequest(t *testing.T) {
	type request struct {
		Title string `json:"title" validate:"required,max=5"`
		Body  string `json:"-" validate:"required"`
	}

	assert.NoError(t, ValidateRequest(request{Title: "ok", Body: "x"}))

	err := ValidateRequest(request{Title: "too long"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"title": "title must be at most 5 characters",
		"Body":  "Body is required",
	}, verr.Fields)
	assert.Equal(t, "validation failed: Body is required; title must be at most 5 characters", err.Error())
}
