package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/project-college/backend/database"
	"github.com/project-college/backend/models"
)

type QualificationHandler struct{}

func NewQualificationHandler() *QualificationHandler { return &QualificationHandler{} }

type codeNamePayload struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func (p *codeNamePayload) normalize() {
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
}

func validateCodeName(p *codeNamePayload) map[string]string {
	errs := map[string]string{}
	if p.Code == "" {
		errs["code"] = "Укажите код"
	}
	if p.Name == "" {
		errs["name"] = "Укажите имя"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /admin/qualifications
func (h *QualificationHandler) List(c echo.Context) error {
	var items []models.Qualification
	if err := database.DB.Order("name").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/qualifications
func (h *QualificationHandler) Create(c echo.Context) error {
	var p codeNamePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateCodeName(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	q := models.Qualification{Code: p.Code, Name: p.Name}
	if err := database.DB.Create(&q).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, q)
}

// PUT /admin/qualifications/:id
func (h *QualificationHandler) Update(c echo.Context) error {
	var q models.Qualification
	if err := database.DB.First(&q, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p codeNamePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateCodeName(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	q.Code = p.Code
	q.Name = p.Name
	if err := database.DB.Save(&q).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, q)
}

// DELETE /admin/qualifications/:id
func (h *QualificationHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Qualification{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
