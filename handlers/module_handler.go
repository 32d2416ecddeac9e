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

type ModuleHandler struct{}

func NewModuleHandler() *ModuleHandler { return &ModuleHandler{} }

type modulePayload struct {
	Index             string `json:"index"`
	Name              string `json:"name"`
	Hours1            uint   `json:"hours_1"`
	Hours2            uint   `json:"hours_2"`
	Hours3            uint   `json:"hours_3"`
	Hours4            uint   `json:"hours_4"`
	Hours5            uint   `json:"hours_5"`
	Hours6            uint   `json:"hours_6"`
	Hours7            uint   `json:"hours_7"`
	Hours8            uint   `json:"hours_8"`
	ExamType          string `json:"exam_type"`
	QualificationIDs  []uint `json:"qualification_ids"`
	SpecializationIDs []uint `json:"specialization_ids"`
}

func (p *modulePayload) normalize() {
	p.Index = strings.TrimSpace(p.Index)
	p.Name = strings.TrimSpace(p.Name)
	p.ExamType = strings.TrimSpace(p.ExamType)
}

func validateModule(p *modulePayload) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "Укажите наименование предмета"
	}
	if p.ExamType != models.ExamTypeExam && p.ExamType != models.ExamTypePass {
		errs["exam_type"] = "Выберите форму итоговой аттестации"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (p *modulePayload) apply(m *models.Module) {
	m.Index = optStr(p.Index)
	m.Name = p.Name
	m.Hours1, m.Hours2, m.Hours3, m.Hours4 = p.Hours1, p.Hours2, p.Hours3, p.Hours4
	m.Hours5, m.Hours6, m.Hours7, m.Hours8 = p.Hours5, p.Hours6, p.Hours7, p.Hours8
	m.ExamType = p.ExamType
}

func loadAssociations(p *modulePayload) ([]models.Qualification, []models.Specialization, error) {
	var quals []models.Qualification
	if len(p.QualificationIDs) > 0 {
		if err := database.DB.Find(&quals, p.QualificationIDs).Error; err != nil {
			return nil, nil, err
		}
	}
	var specs []models.Specialization
	if len(p.SpecializationIDs) > 0 {
		if err := database.DB.Find(&specs, p.SpecializationIDs).Error; err != nil {
			return nil, nil, err
		}
	}
	return quals, specs, nil
}

// GET /admin/modules
func (h *ModuleHandler) List(c echo.Context) error {
	var items []models.Module
	err := database.DB.
		Preload("Qualifications").
		Preload("Specializations").
		Order("name").
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// GET /admin/modules/:id
func (h *ModuleHandler) Get(c echo.Context) error {
	var m models.Module
	err := database.DB.
		Preload("Qualifications").
		Preload("Specializations").
		First(&m, "id = ?", c.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, m)
}

// POST /admin/modules
func (h *ModuleHandler) Create(c echo.Context) error {
	var p modulePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateModule(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	quals, specs, err := loadAssociations(&p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var m models.Module
	p.apply(&m)
	m.Qualifications = quals
	m.Specializations = specs
	if err := database.DB.Create(&m).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, m)
}

// PUT /admin/modules/:id
func (h *ModuleHandler) Update(c echo.Context) error {
	var m models.Module
	if err := database.DB.First(&m, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p modulePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateModule(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	quals, specs, err := loadAssociations(&p)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	p.apply(&m)
	if err := database.DB.Save(&m).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := database.DB.Model(&m).Association("Qualifications").Replace(quals); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err := database.DB.Model(&m).Association("Specializations").Replace(specs); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, m)
}

// DELETE /admin/modules/:id - topics go with the module, schedules and
// marks keep running with the reference nulled.
func (h *ModuleHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		topicIDs := tx.Model(&models.Topic{}).Select("id").Where("module_id = ?", id)
		if err := tx.Where("topic_id IN (?)", topicIDs).Delete(&models.Mark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("topic_id IN (?)", topicIDs).Delete(&models.CompletedTopic{}).Error; err != nil {
			return err
		}
		if err := tx.Where("module_id = ?", id).Delete(&models.Topic{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Schedule{}).Where("module_id = ?", id).Update("module_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Module{}, "id = ?", id).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
