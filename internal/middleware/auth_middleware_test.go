package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sandeep-S-M/FarmConn/pkg/utils"

	"github.com/labstack/echo/v4"
)

type fakeTokenValidator struct {
	sessions map[string]string
}

func (v *fakeTokenValidator) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	if userID, ok := v.sessions[token]; ok {
		return userID, nil
	}
	return "", errors.New("token not found")
}

func runAuth(t *testing.T, authHeader string, validator *fakeTokenValidator) (echo.Context, *httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/mine", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	handler := AuthMiddleware(validator)(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	return c, rec, reached
}

func TestAuthMiddleware(t *testing.T) {
	utils.SetJWTSecret("unit-test-secret")

	token, err := utils.GenerateJWT("7", "farmer")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}
	validator := &fakeTokenValidator{sessions: map[string]string{token: "7"}}

	c, rec, reached := runAuth(t, "Bearer "+token, validator)
	if !reached {
		t.Fatalf("handler not reached, status %d, body %s", rec.Code, rec.Body.String())
	}
	if got := c.Get("user_id").(uint); got != 7 {
		t.Errorf("user_id = %d, want 7", got)
	}
	if got := c.Get("role").(string); got != "farmer" {
		t.Errorf("role = %q, want farmer", got)
	}
	if got := c.Get("token").(string); got != token {
		t.Error("token not stored in context")
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	utils.SetJWTSecret("unit-test-secret")

	token, err := utils.GenerateJWT("7", "farmer")
	if err != nil {
		t.Fatalf("GenerateJWT failed: %v", err)
	}

	cases := []struct {
		name      string
		header    string
		validator *fakeTokenValidator
	}{
		{"missing header", "", &fakeTokenValidator{sessions: map[string]string{}}},
		{"not bearer", "Basic abc123", &fakeTokenValidator{sessions: map[string]string{}}},
		{"garbage token", "Bearer not.a.token", &fakeTokenValidator{sessions: map[string]string{}}},
		{"logged out", "Bearer " + token, &fakeTokenValidator{sessions: map[string]string{}}},
		{"session user mismatch", "Bearer " + token, &fakeTokenValidator{sessions: map[string]string{token: "99"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, rec, reached := runAuth(t, tc.header, tc.validator)
			if reached {
				t.Fatal("handler must not be reached")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}

func TestNurseryOnly(t *testing.T) {
	e := echo.New()

	run := func(role interface{}) (*httptest.ResponseRecorder, bool) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/products", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set("role", role)
		}

		reached := false
		handler := NurseryOnly()(func(c echo.Context) error {
			reached = true
			return c.NoContent(http.StatusOK)
		})
		if err := handler(c); err != nil {
			t.Fatalf("middleware returned error: %v", err)
		}
		return rec, reached
	}

	if _, reached := run("nursery"); !reached {
		t.Error("nursery role should pass")
	}

	for _, role := range []interface{}{"farmer", "", nil} {
		rec, reached := run(role)
		if reached {
			t.Errorf("role %v must not pass", role)
		}
		if rec.Code != http.StatusForbidden {
			t.Errorf("role %v: status = %d, want 403", role, rec.Code)
		}
	}
}
