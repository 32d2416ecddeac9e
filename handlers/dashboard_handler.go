package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/project-college/backend/database"
	"github.com/project-college/backend/models"
)

type DashboardHandler struct{}

func NewDashboardHandler() *DashboardHandler { return &DashboardHandler{} }

// GET /admin/dashboard
func (h *DashboardHandler) Stats(c echo.Context) error {
	var studentCount, teacherCount int64
	if err := database.DB.Model(&models.Student{}).Count(&studentCount).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := database.DB.Model(&models.Account{}).Where("is_teacher = ?", true).Count(&teacherCount).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"student_count": studentCount,
		"teacher_count": teacherCount,
	})
}
