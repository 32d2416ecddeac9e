package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/middlewares"
	"github.com/project-college/backend/models"
)

// TeacherHandler serves the teacher-facing reads: the groups a teacher
// is scheduled with, their sessions per group, and the teacher board.
type TeacherHandler struct {
	cfg *config.Config
}

func NewTeacherHandler(cfg *config.Config) *TeacherHandler { return &TeacherHandler{cfg: cfg} }

// GET /teacher/groups - distinct groups from schedules naming me.
func (h *TeacherHandler) Groups(c echo.Context) error {
	claims := middlewares.AuthClaims(c)

	var groups []models.Group
	err := database.DB.
		Distinct("groups.*").
		Model(&models.Group{}).
		Joins("JOIN schedules ON schedules.group_id = groups.id").
		Joins("JOIN schedule_teachers ON schedule_teachers.schedule_id = schedules.id").
		Where("schedule_teachers.account_id = ?", claims.Sub).
		Order("groups.name").
		Find(&groups).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": groups})
}

// GET /teacher/groups/:id/modules - my sessions for the group, by
// weekday.
func (h *TeacherHandler) GroupModules(c echo.Context) error {
	claims := middlewares.AuthClaims(c)

	var group models.Group
	if err := database.DB.First(&group, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var items []models.Schedule
	err := database.DB.
		Preload("Module").
		Joins("JOIN schedule_teachers ON schedule_teachers.schedule_id = schedules.id").
		Where("schedules.group_id = ? AND schedule_teachers.account_id = ?", group.ID, claims.Sub).
		Order("time_start, time_end").
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"group":    group,
		"days":     h.cfg.DayNames(),
		"schedule": groupByWeekday(items),
	})
}

// GET /teacher/notifications
func (h *TeacherHandler) Notifications(c echo.Context) error {
	var items []models.Notification
	err := database.DB.
		Where("for_teachers = ?", true).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}
