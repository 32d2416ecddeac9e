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

type GroupHandler struct{}

func NewGroupHandler() *GroupHandler { return &GroupHandler{} }

type groupPayload struct {
	Name string `json:"name"`
}

// GET /admin/groups
func (h *GroupHandler) List(c echo.Context) error {
	var items []models.Group
	if err := database.DB.Order("name").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/groups
func (h *GroupHandler) Create(c echo.Context) error {
	var p groupPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"name": "Укажите название группы"},
		})
	}
	g := models.Group{Name: p.Name}
	if err := database.DB.Create(&g).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, g)
}

// PUT /admin/groups/:id
func (h *GroupHandler) Update(c echo.Context) error {
	var g models.Group
	if err := database.DB.First(&g, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p groupPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"name": "Укажите название группы"},
		})
	}
	g.Name = p.Name
	if err := database.DB.Save(&g).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, g)
}

// DELETE /admin/groups/:id - students fall back to "no group", their
// schedules go with the group.
func (h *GroupHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Student{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("group_id = ?", id).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, "id = ?", id).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
