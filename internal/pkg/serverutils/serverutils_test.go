package serverutils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp(secret string) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(ErrorHandlerMiddleware())
	app.Get("/me", NewJwtMiddleware(secret), func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", UserID(ctx)))
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("db exploded")
	})
	app.Get("/gone", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	})
	return app
}

func decode(t *testing.T, app *fiber.App, req *httptestRequest) (int, Response[any]) {
	t.Helper()
	resp, err := app.Test(req.build())
	require.NoError(t, err)
	defer resp.Body.Close()

	var body Response[any]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

type httptestRequest struct {
	path  string
	token string
}

func (r *httptestRequest) build() *http.Request {
	req := httptest.NewRequest("GET", r.path, nil)
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}
	return req
}

func sign(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestJwtMiddleware(t *testing.T) {
	app := newApp("secret")

	code, body := decode(t, app, &httptestRequest{path: "/me", token: sign(t, "secret", jwt.MapClaims{"user_id": "u-1"})})
	assert.Equal(t, 200, code)
	assert.Equal(t, "u-1", body.Data)

	code, body = decode(t, app, &httptestRequest{path: "/me"})
	assert.Equal(t, 401, code)
	assert.Equal(t, "Missing token", body.Message)

	code, _ = decode(t, app, &httptestRequest{path: "/me", token: sign(t, "other", jwt.MapClaims{"user_id": "u-1"})})
	assert.Equal(t, 401, code)

	code, _ = decode(t, app, &httptestRequest{path: "/me", token: sign(t, "secret", jwt.MapClaims{"sub": "u-1"})})
	assert.Equal(t, 401, code)
}

func TestJwtMiddlewareDisabled(t *testing.T) {
	code, body := decode(t, newApp(""), &httptestRequest{path: "/me"})

	assert.Equal(t, 200, code)
	assert.True(t, body.Success)
}

func TestErrorHandler(t *testing.T) {
	app := newApp("")

	code, body := decode(t, app, &httptestRequest{path: "/boom"})
	assert.Equal(t, 500, code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.False(t, body.Success)

	code, body = decode(t, app, &httptestRequest{path: "/gone"})
	assert.Equal(t, 404, code)
	assert.Equal(t, "session not found", body.Message)

	code, _ = decode(t, app, &httptestRequest{path: "/missing-route"})
	assert.Equal(t, 404, code)
}

func TestValidateRequest(t *testing.T) {
	type req struct {
		Question string `validate:"required"`
		Category string `validate:"oneof=KB1 KB2"`
	}

	assert.NoError(t, ValidateRequest(req{Question: "q", Category: "KB1"}))

	err := ValidateRequest(req{Category: "KB3"})
	var fe *fiber.Error
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, 400, fe.Code)
	assert.Contains(t, fe.Message, "Question is required")
	assert.Contains(t, fe.Message, "Category must satisfy oneof=KB1 KB2")
}
