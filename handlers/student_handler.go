package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/project-college/backend/config"
	"github.com/project-college/backend/database"
	"github.com/project-college/backend/importer"
	"github.com/project-college/backend/models"
)

type StudentHandler struct {
	cfg *config.Config
}

func NewStudentHandler(cfg *config.Config) *StudentHandler { return &StudentHandler{cfg: cfg} }

type studentPayload struct {
	Login           string `json:"login"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	MiddleName      string `json:"middle_name"`
	Phone           string `json:"phone"`
	Birthday        string `json:"birthday"` // YYYY-MM-DD or blank
	Email           string `json:"email"`
	BookNumber      *uint  `json:"book_number"`
	EnrollmentOrder string `json:"enrollment_order"`
	HomeAddress     string `json:"home_address"`
	Courses         string `json:"courses"`
	AdditionalInfo  string `json:"additional_info"`
	GroupID         *uint  `json:"group_id"`
}

func (p *studentPayload) normalize() {
	p.Login = strings.TrimSpace(p.Login)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Birthday = strings.TrimSpace(p.Birthday)
}

func validateStudent(p *studentPayload) map[string]string {
	errs := map[string]string{}
	if p.Login == "" {
		errs["login"] = "Укажите логин"
	}
	if p.FirstName == "" {
		errs["first_name"] = "Укажите имя"
	}
	if p.LastName == "" {
		errs["last_name"] = "Укажите фамилию"
	}
	if p.Birthday != "" {
		if _, err := time.Parse("2006-01-02", p.Birthday); err != nil {
			errs["birthday"] = "Дата рождения должна быть в формате ГГГГ-ММ-ДД"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (p *studentPayload) apply(s *models.Student) {
	s.Login = p.Login
	s.FirstName = p.FirstName
	s.LastName = p.LastName
	s.MiddleName = optStr(p.MiddleName)
	s.Phone = optStr(p.Phone)
	s.Email = optStr(p.Email)
	s.BookNumber = p.BookNumber
	s.EnrollmentOrder = optStr(p.EnrollmentOrder)
	s.HomeAddress = optStr(p.HomeAddress)
	s.Courses = optStr(p.Courses)
	s.AdditionalInfo = optStr(p.AdditionalInfo)
	s.GroupID = p.GroupID
	if p.Birthday != "" {
		if b, err := time.Parse("2006-01-02", p.Birthday); err == nil {
			s.Birthday = &b
		}
	} else {
		s.Birthday = nil
	}
}

// GET /admin/students?group_id=N - N omitted or 0 lists students
// without a group.
func (h *StudentHandler) List(c echo.Context) error {
	tx := database.DB.Model(&models.Student{})
	groupID := strings.TrimSpace(c.QueryParam("group_id"))
	if groupID == "" || groupID == "0" {
		tx = tx.Where("group_id IS NULL")
	} else {
		tx = tx.Where("group_id = ?", groupID)
	}

	var items []models.Student
	if err := tx.Order("last_name, first_name, middle_name").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// GET /admin/students/:id
func (h *StudentHandler) Get(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

// POST /admin/students - also provisions the paired login account with
// the default password.
func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var s models.Student
	p.apply(&s)
	if ok, msg := importer.CreateStudentWithAccount(database.DB, &s, h.cfg.DefaultPassword); !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"login": msg},
		})
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /admin/students/:id - renaming the login renames the paired
// account as well.
func (h *StudentHandler) Update(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	if p.Login != s.Login && importer.LoginTaken(database.DB, p.Login) {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"login": "Пользователь с таким логином уже существует"},
		})
	}

	oldLogin := s.Login
	p.apply(&s)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&s).Error; err != nil {
			return err
		}
		if s.Login != oldLogin {
			return tx.Model(&models.Account{}).
				Where("student_id = ?", s.ID).
				Update("login", s.Login).Error
		}
		return nil
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}

// DELETE /admin/students/:id - removes the student, its account and its
// marks for good.
func (h *StudentHandler) Delete(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", s.ID).Delete(&models.Mark{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", s.ID).Delete(&models.Account{}).Error; err != nil {
			return err
		}
		return tx.Delete(&s).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// POST /admin/students/:id/dismiss - snapshots the student's personal
// fields and removes the live row. The account stays, unlinked, so
// recovery can pick it back up by login.
func (h *StudentHandler) Dismiss(c echo.Context) error {
	var s models.Student
	if err := database.DB.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var dismissed models.DismissedStudent
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		dismissed = models.DismissedStudent{
			Login:          s.Login,
			FirstName:      s.FirstName,
			LastName:       s.LastName,
			MiddleName:     s.MiddleName,
			Phone:          s.Phone,
			Birthday:       s.Birthday,
			Email:          s.Email,
			HomeAddress:    s.HomeAddress,
			AdditionalInfo: s.AdditionalInfo,
		}
		if err := tx.Create(&dismissed).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Account{}).
			Where("student_id = ?", s.ID).
			Update("student_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", s.ID).Delete(&models.Mark{}).Error; err != nil {
			return err
		}
		return tx.Delete(&s).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, dismissed)
}

// GET /admin/dismissed-students
func (h *StudentHandler) ListDismissed(c echo.Context) error {
	var items []models.DismissedStudent
	if err := database.DB.Order("last_name, first_name, middle_name").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"data": items})
}

// POST /admin/dismissed-students/:id/recover - recreates the student
// from the snapshot (without a group), relinks the account sharing the
// login and drops the snapshot.
func (h *StudentHandler) Recover(c echo.Context) error {
	var d models.DismissedStudent
	if err := database.DB.First(&d, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var s models.Student
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		s = models.Student{
			Login:          d.Login,
			FirstName:      d.FirstName,
			LastName:       d.LastName,
			MiddleName:     d.MiddleName,
			Phone:          d.Phone,
			Birthday:       d.Birthday,
			Email:          d.Email,
			HomeAddress:    d.HomeAddress,
			AdditionalInfo: d.AdditionalInfo,
		}
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Account{}).
			Where("login = ?", s.Login).
			Update("student_id", s.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&d).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}
