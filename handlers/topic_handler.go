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

type TopicHandler struct{}

func NewTopicHandler() *TopicHandler { return &TopicHandler{} }

type topicPayload struct {
	Name     string `json:"name"`
	Hours    uint   `json:"hours"`
	HomeTask string `json:"home_task"`
	ModuleID uint   `json:"module_id"`
}

func validateTopic(p *topicPayload) map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "Укажите имя темы"
	}
	if p.ModuleID == 0 {
		errs["module_id"] = "Выберите предмет"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// GET /admin/topics?module_id=N
func (h *TopicHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Topic{})
	if moduleID := strings.TrimSpace(c.QueryParam("module_id")); moduleID != "" {
		tx = tx.Where("module_id = ?", moduleID)
	}
	var items []models.Topic
	if err := tx.Order("module_id, name").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/topics
func (h *TopicHandler) Create(c echo.Context) error {
	var p topicPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if errs := validateTopic(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	var m models.Module
	if err := database.DB.First(&m, p.ModuleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	t := models.Topic{
		Name:     strings.TrimSpace(p.Name),
		Hours:    p.Hours,
		HomeTask: optStr(p.HomeTask),
		ModuleID: m.ID,
	}
	if err := database.DB.Create(&t).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, t)
}

// PUT /admin/topics/:id
func (h *TopicHandler) Update(c echo.Context) error {
	var t models.Topic
	if err := database.DB.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p topicPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if errs := validateTopic(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	t.Name = strings.TrimSpace(p.Name)
	t.Hours = p.Hours
	t.HomeTask = optStr(p.HomeTask)
	t.ModuleID = p.ModuleID
	if err := database.DB.Save(&t).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, t)
}

// DELETE /admin/topics/:id - the topic's marks and completions go with
// it.
func (h *TopicHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&models.Mark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id = ?", id).Delete(&models.CompletedTopic{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Topic{}, "id = ?", id).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
