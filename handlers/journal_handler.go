package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/journal"
	"github.com/project-college/backend/middlewares"
	"github.com/project-college/backend/models"
)

type JournalHandler struct {
	cfg *config.Config
}

func NewJournalHandler(cfg *config.Config) *JournalHandler { return &JournalHandler{cfg: cfg} }

// loadSchedule resolves the session and checks the caller teaches it.
func (h *JournalHandler) loadSchedule(c echo.Context) (*models.Schedule, error) {
	var sch models.Schedule
	if err := database.DB.First(&sch, "id = ?", c.Param("scheduleID")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	claims := middlewares.AuthClaims(c)
	var n int64
	err := database.DB.Table("schedule_teachers").
		Where("schedule_id = ? AND account_id = ?", sch.ID, claims.Sub).
		Count(&n).Error
	if err != nil {
		return nil, c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if n == 0 {
		return nil, c.JSON(http.StatusForbidden, map[string]string{"error": "FORBIDDEN"})
	}
	return &sch, nil
}

func (h *JournalHandler) render(c echo.Context, sch *models.Schedule, errs []string) error {
	view, err := journal.Build(database.DB, sch)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if errs == nil {
		errs = []string{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"journal":      view,
		"mark_values":  h.cfg.MarkValues(),
		"marks_rating": h.cfg.MarksRating(),
		"errors":       errs,
	})
}

// GET /teacher/journal/:scheduleID
func (h *JournalHandler) Get(c echo.Context) error {
	sch, done := h.loadSchedule(c)
	if sch == nil {
		return done
	}
	return h.render(c, sch, nil)
}

// POST /teacher/journal/:scheduleID - applies the submitted cell edits
// and returns the refreshed grid. Date errors from the parse stage come
// back alongside the grid, not instead of it.
func (h *JournalHandler) Save(c echo.Context) error {
	sch, done := h.loadSchedule(c)
	if sch == nil {
		return done
	}

	form, err := c.FormParams()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	flat := make(map[string]string, len(form))
	for key, values := range form {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}

	edits, errs := journal.ParseEdits(flat, h.cfg.MarkValues(), h.cfg.AbsentMark)
	claims := middlewares.AuthClaims(c)
	if err := journal.ApplyEdits(database.DB, sch.ModuleID, claims.Sub, edits); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return h.render(c, sch, errs)
}
