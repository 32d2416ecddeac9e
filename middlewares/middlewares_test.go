package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims *Claims, secret string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return tok
}

func doAuth(t *testing.T, header string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, h(c)
}

func TestRequireAuth(t *testing.T) {
	valid := signToken(t, &Claims{
		Sub: 1, IsTeacher: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)
	expired := signToken(t, &Claims{
		Sub: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}, testSecret)
	wrongKey := signToken(t, &Claims{Sub: 1}, "other-secret")

	tests := []struct {
		name     string
		header   string
		wantCode int
	}{
		{"valid token", "Bearer " + valid, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := doAuth(t, tt.header)
			if tt.wantCode == http.StatusOK {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if rec.Code != http.StatusOK {
					t.Fatalf("code: got %d", rec.Code)
				}
				return
			}
			he, ok := err.(*echo.HTTPError)
			if !ok {
				t.Fatalf("want HTTPError, got %v", err)
			}
			if he.Code != tt.wantCode {
				t.Fatalf("code: got %d, want %d", he.Code, tt.wantCode)
			}
		})
	}
}

func TestRequireAuthAttachesClaims(t *testing.T) {
	token := signToken(t, &Claims{
		Sub: 42, Name: "Иванов Иван", StudentID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, testSecret)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	c := e.NewContext(req, httptest.NewRecorder())

	var got *Claims
	h := RequireAuth(testSecret)(func(c echo.Context) error {
		got = AuthClaims(c)
		return nil
	})
	if err := h(c); err != nil {
		t.Fatalf("auth failed: %v", err)
	}
	if got == nil || got.Sub != 42 || got.StudentID != 7 {
		t.Fatalf("claims: got %+v", got)
	}
}

func TestRoleGates(t *testing.T) {
	tests := []struct {
		name   string
		gate   echo.MiddlewareFunc
		claims *Claims
		pass   bool
	}{
		{"admin passes junioradmin", RequireAdmin(), &Claims{IsJuniorAdmin: true}, true},
		{"admin passes superuser", RequireAdmin(), &Claims{IsSuperuser: true}, true},
		{"admin rejects teacher", RequireAdmin(), &Claims{IsTeacher: true}, false},
		{"admin rejects nil claims", RequireAdmin(), nil, false},
		{"teacher passes teacher", RequireTeacher(), &Claims{IsTeacher: true}, true},
		{"teacher rejects student", RequireTeacher(), &Claims{StudentID: 1}, false},
		{"student passes linked account", RequireStudent(), &Claims{StudentID: 1}, true},
		{"student rejects staff", RequireStudent(), &Claims{IsTeacher: true}, false},
		{"staff passes teacher", RequireStaff(), &Claims{IsTeacher: true}, true},
		{"staff rejects student", RequireStaff(), &Claims{StudentID: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			if tt.claims != nil {
				c.Set("auth", tt.claims)
			}
			err := tt.gate(func(c echo.Context) error { return nil })(c)
			if tt.pass && err != nil {
				t.Fatalf("gate rejected: %v", err)
			}
			if !tt.pass {
				he, ok := err.(*echo.HTTPError)
				if !ok || he.Code != http.StatusForbidden {
					t.Fatalf("want 403, got %v", err)
				}
			}
		})
	}
}
