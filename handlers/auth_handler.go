package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/middlewares"
	"github.com/project-college/backend/models"
)

type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler { return &AuthHandler{cfg: cfg} }

func (h *AuthHandler) signJWT(a *models.Account) (string, error) {
	var studentID uint
	if a.StudentID != nil {
		studentID = *a.StudentID
	}
	claims := middlewares.Claims{
		Sub:           a.ID,
		Name:          a.FullName(),
		IsTeacher:     a.IsTeacher,
		IsJuniorAdmin: a.IsJuniorAdmin,
		IsSuperuser:   a.IsSuperuser,
		StudentID:     studentID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(h.cfg.JWTTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.cfg.JWTSecret))
}

type loginReq struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	login := strings.TrimSpace(req.Login)
	if login == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}

	var a models.Account
	if err := database.DB.Where("login = ?", login).First(&a).Error; err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "INVALID_CREDENTIALS"})
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "INVALID_CREDENTIALS"})
	}

	token, err := h.signJWT(&a)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "TOKEN_GEN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"token": token,
		"user": map[string]any{
			"id":    a.ID,
			"login": a.Login,
			"name":  a.FullName(),
			"role":  a.Role(),
		},
	})
}

type changePasswordReq struct {
	OldPassword    string `json:"old_password"`
	NewPassword    string `json:"new_password"`
	RepeatPassword string `json:"repeat_new_password"`
}

// PUT /auth/password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	claims := middlewares.AuthClaims(c)
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "MISSING_FIELDS"})
	}

	var a models.Account
	if err := database.DB.First(&a, claims.Sub).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.OldPassword)) != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"old_password": "Неправильный текущий пароль"},
		})
	}
	if req.NewPassword != req.RepeatPassword {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"repeat_new_password": "Пароли не совпадают"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	a.PasswordHash = string(hash)
	if err := database.DB.Save(&a).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}

type resetPasswordReq struct {
	Login string `json:"login"`
}

// POST /auth/reset-password - resets the login's password to the
// configured default. Admin only.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	login := strings.TrimSpace(req.Login)

	var a models.Account
	if err := database.DB.Where("login = ?", login).First(&a).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"login": "Пользователя с таким логином не существует"},
		})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(h.cfg.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	a.PasswordHash = string(hash)
	if err := database.DB.Save(&a).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /profile - the caller's own account, with the student profile
// when one is linked.
func (h *AuthHandler) Profile(c echo.Context) error {
	claims := middlewares.AuthClaims(c)
	var a models.Account
	if err := database.DB.Preload("Student").First(&a, claims.Sub).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	resp := map[string]any{"account": a, "role": a.Role()}
	if a.Student != nil {
		resp["student"] = a.Student
	}
	return c.JSON(http.StatusOK, resp)
}
