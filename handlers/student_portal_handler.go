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

// StudentPortalHandler serves the student-facing reads: own schedule,
// own marks per session, the student board and the profile.
type StudentPortalHandler struct {
	cfg *config.Config
}

func NewStudentPortalHandler(cfg *config.Config) *StudentPortalHandler {
	return &StudentPortalHandler{cfg: cfg}
}

func (h *StudentPortalHandler) student(c echo.Context) (*models.Student, error) {
	claims := middlewares.AuthClaims(c)
	var s models.Student
	if err := database.DB.First(&s, claims.StudentID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// GET /student/schedule - my group's week.
func (h *StudentPortalHandler) Schedule(c echo.Context) error {
	s, err := h.student(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	if s.GroupID == nil {
		return c.JSON(http.StatusOK, map[string]any{
			"days":     h.cfg.DayNames(),
			"schedule": groupByWeekday(nil),
		})
	}

	var items []models.Schedule
	err = database.DB.
		Preload("Module").
		Preload("Teachers").
		Where("group_id = ?", *s.GroupID).
		Order("time_start, time_end").
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"days":     h.cfg.DayNames(),
		"schedule": groupByWeekday(items),
	})
}

type studentMarkRow struct {
	Topic string `json:"topic"`
	Value *uint  `json:"value"`
	Blank bool   `json:"blank"`
}

// GET /student/marks/:scheduleID - my marks per topic for the session's
// module.
func (h *StudentPortalHandler) Marks(c echo.Context) error {
	s, err := h.student(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}

	var sch models.Schedule
	err = database.DB.
		Preload("Module").
		Preload("Teachers").
		First(&sch, "id = ?", c.Param("scheduleID")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if sch.Module == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}

	var topics []models.Topic
	if err := database.DB.Where("module_id = ?", sch.Module.ID).Order("name").Find(&topics).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	rows := make([]studentMarkRow, 0, len(topics))
	for _, topic := range topics {
		var mark models.Mark
		err := database.DB.
			Where("topic_id = ? AND student_id = ?", topic.ID, s.ID).
			First(&mark).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			rows = append(rows, studentMarkRow{Topic: topic.Name, Blank: true})
			continue
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
		}
		rows = append(rows, studentMarkRow{Topic: topic.Name, Value: mark.Value})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"module":       sch.Module.DisplayName(),
		"teachers":     sch.Teachers,
		"marks":        rows,
		"marks_rating": h.cfg.MarksRating(),
	})
}

// GET /student/notifications
func (h *StudentPortalHandler) Notifications(c echo.Context) error {
	var items []models.Notification
	err := database.DB.
		Where("for_students = ?", true).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// GET /student/profile
func (h *StudentPortalHandler) Profile(c echo.Context) error {
	s, err := h.student(c)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, s)
}
