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

type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler { return &NotificationHandler{} }

type notificationPayload struct {
	Content     string `json:"content"`
	ForStudents bool   `json:"for_students"`
	ForTeachers bool   `json:"for_teachers"`
}

// GET /admin/notifications - newest first.
func (h *NotificationHandler) List(c echo.Context) error {
	var items []models.Notification
	if err := database.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/notifications
func (h *NotificationHandler) Create(c echo.Context) error {
	var p notificationPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Content = strings.TrimSpace(p.Content)
	if p.Content == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"content": "Укажите текст"},
		})
	}
	n := models.Notification{Content: p.Content, ForStudents: p.ForStudents, ForTeachers: p.ForTeachers}
	if err := database.DB.Create(&n).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, n)
}

// PUT /admin/notifications/:id
func (h *NotificationHandler) Update(c echo.Context) error {
	var n models.Notification
	if err := database.DB.First(&n, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p notificationPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.Content = strings.TrimSpace(p.Content)
	if p.Content == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"content": "Укажите текст"},
		})
	}
	n.Content = p.Content
	n.ForStudents = p.ForStudents
	n.ForTeachers = p.ForTeachers
	if err := database.DB.Save(&n).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, n)
}

// DELETE /admin/notifications/:id
func (h *NotificationHandler) Delete(c echo.Context) error {
	if err := database.DB.Delete(&models.Notification{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
