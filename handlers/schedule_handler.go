package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/models"
)

type ScheduleHandler struct {
	cfg *config.Config
}

func NewScheduleHandler(cfg *config.Config) *ScheduleHandler { return &ScheduleHandler{cfg: cfg} }

type schedulePayload struct {
	GroupID    uint    `json:"group_id"`
	ModuleID   *uint   `json:"module_id"`
	Weekday    uint    `json:"weekday"`
	TimeStart  *string `json:"time_start"`
	TimeEnd    *string `json:"time_end"`
	TeacherIDs []uint  `json:"teacher_ids"`
}

func validTime(p *string) bool {
	if p == nil || *p == "" {
		return true
	}
	_, err := time.Parse("15:04", *p)
	return err == nil
}

func validateSchedule(p *schedulePayload) map[string]string {
	errs := map[string]string{}
	if p.GroupID == 0 {
		errs["group_id"] = "Выберите группу"
	}
	if p.Weekday > 5 {
		errs["weekday"] = "Выберите день недели"
	}
	if !validTime(p.TimeStart) {
		errs["time_start"] = "Время должно быть в формате ЧЧ:ММ"
	}
	if !validTime(p.TimeEnd) {
		errs["time_end"] = "Время должно быть в формате ЧЧ:ММ"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// loadTeachers resolves teacher ids; every referenced account must
// carry teacher rights.
func loadTeachers(ids []uint) ([]models.Account, map[string]string) {
	if len(ids) == 0 {
		return nil, nil
	}
	var teachers []models.Account
	if err := database.DB.Where("is_teacher = ?", true).Find(&teachers, ids).Error; err != nil {
		return nil, map[string]string{"teacher_ids": "DB_QUERY_FAILED"}
	}
	if len(teachers) != len(ids) {
		return nil, map[string]string{"teacher_ids": "Выберите преподавателей"}
	}
	return teachers, nil
}

// GET /admin/groups/:id/schedule - entries grouped by weekday index,
// ordered by start time within the day.
func (h *ScheduleHandler) ListForGroup(c echo.Context) error {
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
		Preload("Teachers").
		Where("group_id = ?", group.ID).
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

func groupByWeekday(items []models.Schedule) map[string][]models.Schedule {
	byDay := map[string][]models.Schedule{}
	for d := 0; d <= 5; d++ {
		byDay[strconv.Itoa(d)] = []models.Schedule{}
	}
	for _, s := range items {
		key := strconv.Itoa(int(s.Weekday))
		byDay[key] = append(byDay[key], s)
	}
	return byDay
}

// POST /admin/schedules
func (h *ScheduleHandler) Create(c echo.Context) error {
	var p schedulePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if errs := validateSchedule(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	teachers, errs := loadTeachers(p.TeacherIDs)
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	s := models.Schedule{
		GroupID:   p.GroupID,
		ModuleID:  p.ModuleID,
		Weekday:   p.Weekday,
		TimeStart: p.TimeStart,
		TimeEnd:   p.TimeEnd,
		Teachers:  teachers,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /admin/schedules/:id
func (h *ScheduleHandler) Update(c echo.Context) error {
	var s models.Schedule
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p schedulePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if errs := validateSchedule(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	teachers, errs := loadTeachers(p.TeacherIDs)
	if errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	s.GroupID = p.GroupID
	s.ModuleID = p.ModuleID
	s.Weekday = p.Weekday
	s.TimeStart = p.TimeStart
	s.TimeEnd = p.TimeEnd
	if err := database.DB.Save(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := database.DB.Model(&s).Association("Teachers").Replace(teachers); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}

// DELETE /admin/schedules/:id
func (h *ScheduleHandler) Delete(c echo.Context) error {
	var s models.Schedule
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := database.DB.Model(&s).Association("Teachers").Clear(); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := database.DB.Delete(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
