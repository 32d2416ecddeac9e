package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/middlewares"
	"github.com/project-college/backend/models"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:       "test-secret",
		JWTTTL:          time.Hour,
		MaxMark:         5,
		AbsentMark:      "н",
		DefaultPassword: "changeme",
		MediaRoot:       "media",
	}
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

// newJSONContext builds an echo context around a JSON body and records
// the response.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
	return out
}

func createAccount(t *testing.T, db *gorm.DB, login, password string, mutate func(*models.Account)) models.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatal(err)
	}
	a := models.Account{Login: login, PasswordHash: string(hash), FirstName: "Имя", LastName: "Фамилия"}
	if mutate != nil {
		mutate(&a)
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatal(err)
	}
	return a
}

func asAccount(c echo.Context, a *models.Account) {
	var studentID uint
	if a.StudentID != nil {
		studentID = *a.StudentID
	}
	c.Set("auth", &middlewares.Claims{
		Sub:           a.ID,
		Name:          a.FullName(),
		IsTeacher:     a.IsTeacher,
		IsJuniorAdmin: a.IsJuniorAdmin,
		IsSuperuser:   a.IsSuperuser,
		StudentID:     studentID,
	})
}

func TestLogin(t *testing.T) {
	db := setupDB(t)
	createAccount(t, db, "petrova", "pass123", func(a *models.Account) { a.IsTeacher = true })
	h := NewAuthHandler(testConfig())

	t.Run("ok", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/auth/login",
			`{"login":"petrova","password":"pass123"}`)
		if err := h.Login(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("code: got %d (%s)", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)
		if body["token"] == "" {
			t.Fatal("no token in response")
		}
		user := body["user"].(map[string]any)
		if user["role"] != "teacher" {
			t.Fatalf("role: got %v", user["role"])
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/auth/login",
			`{"login":"petrova","password":"nope"}`)
		if err := h.Login(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("code: got %d", rec.Code)
		}
	})

	t.Run("unknown login", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPost, "/auth/login",
			`{"login":"ghost","password":"pass123"}`)
		if err := h.Login(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("code: got %d", rec.Code)
		}
	})
}

func TestChangePassword(t *testing.T) {
	db := setupDB(t)
	a := createAccount(t, db, "petrova", "old-pass", nil)
	h := NewAuthHandler(testConfig())

	t.Run("wrong old password", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPut, "/auth/password",
			`{"old_password":"nope","new_password":"new-pass","repeat_new_password":"new-pass"}`)
		asAccount(c, &a)
		if err := h.ChangePassword(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code: got %d", rec.Code)
		}
	})

	t.Run("repeat mismatch", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPut, "/auth/password",
			`{"old_password":"old-pass","new_password":"new-pass","repeat_new_password":"other"}`)
		asAccount(c, &a)
		if err := h.ChangePassword(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("code: got %d", rec.Code)
		}
	})

	t.Run("ok", func(t *testing.T) {
		c, rec := newJSONContext(t, http.MethodPut, "/auth/password",
			`{"old_password":"old-pass","new_password":"new-pass","repeat_new_password":"new-pass"}`)
		asAccount(c, &a)
		if err := h.ChangePassword(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code: got %d (%s)", rec.Code, rec.Body.String())
		}
		var got models.Account
		db.First(&got, a.ID)
		if bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("new-pass")) != nil {
			t.Fatal("new password does not verify")
		}
	})
}

func TestResetPassword(t *testing.T) {
	db := setupDB(t)
	a := createAccount(t, db, "petrova", "whatever", nil)
	h := NewAuthHandler(testConfig())

	c, rec := newJSONContext(t, http.MethodPost, "/auth/reset-password",
		`{"login":"petrova"}`)
	if err := h.ResetPassword(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("code: got %d (%s)", rec.Code, rec.Body.String())
	}
	var got models.Account
	db.First(&got, a.ID)
	if bcrypt.CompareHashAndPassword([]byte(got.PasswordHash), []byte("changeme")) != nil {
		t.Fatal("password not reset to the default")
	}

	c, rec = newJSONContext(t, http.MethodPost, "/auth/reset-password",
		`{"login":"ghost"}`)
	if err := h.ResetPassword(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown login: got %d", rec.Code)
	}
}

func TestAccountRoleRule(t *testing.T) {
	setupDB(t)
	h := NewAccountHandler(testConfig())

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{
			"teacher ok",
			`{"login":"t1","first_name":"Имя","last_name":"Фамилия","is_teacher":true}`,
			http.StatusCreated,
		},
		{
			"junioradmin ok",
			`{"login":"a1","first_name":"Имя","last_name":"Фамилия","is_junioradmin":true}`,
			http.StatusCreated,
		},
		{
			"both roles rejected",
			`{"login":"x1","first_name":"Имя","last_name":"Фамилия","is_teacher":true,"is_junioradmin":true}`,
			http.StatusBadRequest,
		},
		{
			"no role rejected",
			`{"login":"x2","first_name":"Имя","last_name":"Фамилия"}`,
			http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/admin/accounts", tt.body)
			if err := h.Create(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tt.wantCode {
				t.Fatalf("code: got %d (%s)", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAccountCreateDefaultPassword(t *testing.T) {
	db := setupDB(t)
	h := NewAccountHandler(testConfig())

	c, rec := newJSONContext(t, http.MethodPost, "/admin/accounts",
		`{"login":"t2","first_name":"Имя","last_name":"Фамилия","is_teacher":true}`)
	if err := h.Create(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("code: got %d (%s)", rec.Code, rec.Body.String())
	}
	var a models.Account
	if err := db.First(&a, "login = ?", "t2").Error; err != nil {
		t.Fatal(err)
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte("changeme")) != nil {
		t.Fatal("account not provisioned with the default password")
	}
}
