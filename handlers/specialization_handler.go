package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/project-college/backend/database"
	"github.com/project-college/backend/models"
)

type SpecializationHandler struct{}

func NewSpecializationHandler() *SpecializationHandler { return &SpecializationHandler{} }

// GET /admin/specializations
func (h *SpecializationHandler) List(c echo.Context) error {
	var items []models.Specialization
	if err := database.DB.Order("name").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/specializations
func (h *SpecializationHandler) Create(c echo.Context) error {
	var p codeNamePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateCodeName(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	s := models.Specialization{Code: p.Code, Name: p.Name}
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /admin/specializations/:id
func (h *SpecializationHandler) Update(c echo.Context) error {
	var s models.Specialization
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
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
	s.Code = p.Code
	s.Name = p.Name
	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}

// DELETE /admin/specializations/:id
func (h *SpecializationHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Specialization{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
