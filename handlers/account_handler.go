package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/importer"
	"github.com/project-college/backend/models"
)

// AccountHandler manages staff accounts (teachers and junior admins).
// New accounts always start with the configured default password.
type AccountHandler struct {
	cfg *config.Config
}

func NewAccountHandler(cfg *config.Config) *AccountHandler { return &AccountHandler{cfg: cfg} }

type accountPayload struct {
	Login         string `json:"login"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	MiddleName    string `json:"middle_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	IsTeacher     bool   `json:"is_teacher"`
	IsJuniorAdmin bool   `json:"is_junioradmin"`
}

func (p *accountPayload) normalize() {
	p.Login = strings.TrimSpace(p.Login)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.MiddleName = strings.TrimSpace(p.MiddleName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
}

func validateAccount(p *accountPayload) map[string]string {
	errs := map[string]string{}
	if p.Login == "" {
		errs["login"] = "Укажите логин"
	}
	if p.FirstName == "" {
		errs["first_name"] = "Укажите имя"
	}
	if p.LastName == "" {
		errs["last_name"] = "Укажите фамилию"
	}
	// Exactly one of the two staff roles; the superuser is created by
	// the bootstrap CLI, never through this form.
	if p.IsTeacher == p.IsJuniorAdmin {
		errs["role"] = "Укажите кем является пользователь"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /admin/accounts - teachers only, admins and the superuser are not
// listed.
func (h *AccountHandler) List(c echo.Context) error {
	var items []models.Account
	err := database.DB.
		Where("is_teacher = ? AND is_junioradmin = ? AND is_superuser = ?", true, false, false).
		Order("last_name, first_name").
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/accounts
func (h *AccountHandler) Create(c echo.Context) error {
	var p accountPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateAccount(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if importer.LoginTaken(database.DB, p.Login) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"login": "Пользователь с таким логином уже существует"},
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(h.cfg.DefaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	a := models.Account{
		Login:         p.Login,
		PasswordHash:  string(hash),
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		MiddleName:    optStr(p.MiddleName),
		Email:         optStr(p.Email),
		Phone:         optStr(p.Phone),
		IsTeacher:     p.IsTeacher,
		IsJuniorAdmin: p.IsJuniorAdmin,
	}
	if err := database.DB.Create(&a).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, a)
}

// PUT /admin/accounts/:id
func (h *AccountHandler) Update(c echo.Context) error {
	var a models.Account
	if err := database.DB.First(&a, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p accountPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateAccount(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if p.Login != a.Login && importer.LoginTaken(database.DB, p.Login) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"login": "Пользователь с таким логином уже существует"},
		})
	}

	a.Login = p.Login
	a.FirstName = p.FirstName
	a.LastName = p.LastName
	a.MiddleName = optStr(p.MiddleName)
	a.Email = optStr(p.Email)
	a.Phone = optStr(p.Phone)
	a.IsTeacher = p.IsTeacher
	a.IsJuniorAdmin = p.IsJuniorAdmin

	if err := database.DB.Save(&a).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, a)
}

// DELETE /admin/accounts/:id
func (h *AccountHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Account{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
