package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/project-college/backend/models"
)

func seedSession(t *testing.T, db *gorm.DB) (sch models.Schedule, topic models.Topic, student models.Student, teacher models.Account) {
	t.Helper()
	group := models.Group{Name: "П-21"}
	if err := db.Create(&group).Error; err != nil {
		t.Fatal(err)
	}
	module := models.Module{Name: "Математика", ExamType: models.ExamTypeExam}
	if err := db.Create(&module).Error; err != nil {
		t.Fatal(err)
	}
	topic = models.Topic{Name: "Пределы", Hours: 2, ModuleID: module.ID}
	if err := db.Create(&topic).Error; err != nil {
		t.Fatal(err)
	}
	student = models.Student{Login: "ivanov", FirstName: "Иван", LastName: "Иванов", GroupID: &group.ID}
	if err := db.Create(&student).Error; err != nil {
		t.Fatal(err)
	}
	teacher = createAccount(t, db, "petrova", "pass", func(a *models.Account) { a.IsTeacher = true })
	sch = models.Schedule{GroupID: group.ID, ModuleID: &module.ID, Weekday: 0, Teachers: []models.Account{teacher}}
	if err := db.Create(&sch).Error; err != nil {
		t.Fatal(err)
	}
	return
}

func journalContext(t *testing.T, method string, form url.Values, scheduleID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, "/teacher/journal/"+scheduleID, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, "/teacher/journal/"+scheduleID, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("scheduleID")
	c.SetParamValues(scheduleID)
	return c, rec
}

func TestJournalGetRequiresAssignment(t *testing.T) {
	db := setupDB(t)
	sch, _, _, teacher := seedSession(t, db)
	outsider := createAccount(t, db, "sidorov", "pass", func(a *models.Account) { a.IsTeacher = true })
	h := NewJournalHandler(testConfig())

	c, rec := journalContext(t, http.MethodGet, nil, "1")
	asAccount(c, &outsider)
	if err := h.Get(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("outsider: got %d", rec.Code)
	}

	c, rec = journalContext(t, http.MethodGet, nil, "1")
	asAccount(c, &teacher)
	if err := h.Get(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("assigned teacher: got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["journal"] == nil || body["mark_values"] == nil {
		t.Fatalf("grid missing from response: %v", body)
	}
	_ = sch
}

func TestJournalSave(t *testing.T) {
	db := setupDB(t)
	sch, topic, student, teacher := seedSession(t, db)
	h := NewJournalHandler(testConfig())

	form := url.Values{}
	form.Set(formKey(topic.ID, student.ID), "5")
	form.Set("date_empty_"+itoa(topic.ID), "01.09.24")
	form.Set("date_empty_999", "не дата") // create path reports bad dates

	c, rec := journalContext(t, http.MethodPost, form, "1")
	asAccount(c, &teacher)
	if err := h.Save(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("save: got %d (%s)", rec.Code, rec.Body.String())
	}

	var mark models.Mark
	if err := db.First(&mark, "student_id = ? AND topic_id = ?", student.ID, topic.ID).Error; err != nil {
		t.Fatalf("mark not created: %v", err)
	}
	if mark.Value == nil || *mark.Value != 5 {
		t.Fatalf("value: got %v", mark.Value)
	}
	if mark.TeacherID == nil || *mark.TeacherID != teacher.ID {
		t.Fatalf("teacher not stamped: %v", mark.TeacherID)
	}

	var ct models.CompletedTopic
	if err := db.First(&ct, "topic_id = ?", topic.ID).Error; err != nil {
		t.Fatalf("completion not created: %v", err)
	}

	body := decodeBody(t, rec)
	errs := body["errors"].([]any)
	if len(errs) != 1 {
		t.Fatalf("errors: got %v", errs)
	}
	_ = sch
}

func formKey(topicID, studentID uint) string {
	return itoa(topicID) + "_" + itoa(studentID)
}

func itoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}
