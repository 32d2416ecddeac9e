package journal

import (
	"testing"

	"github.com/project-college/backend/models"
)

func TestBuildView(t *testing.T) {
	db := setupDB(t)

	group := models.Group{Name: "П-21"}
	if err := db.Create(&group).Error; err != nil {
		t.Fatal(err)
	}
	module := models.Module{Name: "Математика", ExamType: models.ExamTypeExam}
	if err := db.Create(&module).Error; err != nil {
		t.Fatal(err)
	}
	topicA := models.Topic{Name: "А. Пределы", Hours: 2, ModuleID: module.ID}
	topicB := models.Topic{Name: "Б. Производные", Hours: 4, ModuleID: module.ID}
	if err := db.Create(&topicA).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&topicB).Error; err != nil {
		t.Fatal(err)
	}

	// Roster order is by last name: Иванов before Петров.
	ivanov := models.Student{Login: "ivanov", FirstName: "Иван", LastName: "Иванов", GroupID: &group.ID}
	petrov := models.Student{Login: "petrov", FirstName: "Пётр", LastName: "Петров", GroupID: &group.ID}
	if err := db.Create(&petrov).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&ivanov).Error; err != nil {
		t.Fatal(err)
	}

	uintp := func(n uint) *uint { return &n }
	marks := []models.Mark{
		{StudentID: ivanov.ID, TopicID: topicA.ID, ModuleID: &module.ID, Value: uintp(5)},
		{StudentID: ivanov.ID, TopicID: topicB.ID, ModuleID: &module.ID, Value: uintp(4)},
		{StudentID: petrov.ID, TopicID: topicA.ID, ModuleID: &module.ID, Value: uintp(3)},
		{StudentID: petrov.ID, TopicID: topicB.ID, ModuleID: &module.ID, Value: nil}, // absent
	}
	if err := db.Create(&marks).Error; err != nil {
		t.Fatal(err)
	}

	sch := models.Schedule{GroupID: group.ID, ModuleID: &module.ID, Weekday: 0}
	if err := db.Create(&sch).Error; err != nil {
		t.Fatal(err)
	}

	view, err := Build(db, &sch)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if len(view.Students) != 2 || view.Students[0].ID != ivanov.ID || view.Students[1].ID != petrov.ID {
		t.Fatalf("roster order wrong: %+v", view.Students)
	}
	if len(view.Rows) != 2 || view.Rows[0].Topic.ID != topicA.ID {
		t.Fatalf("topic order wrong")
	}
	if view.TotalHours != 6 {
		t.Fatalf("total hours: got %d, want 6", view.TotalHours)
	}

	// Absent counts in neither numerator nor denominator.
	if view.Averages[0] != 4.5 {
		t.Fatalf("average[0]: got %v, want 4.5", view.Averages[0])
	}
	if view.Averages[1] != 3 {
		t.Fatalf("average[1]: got %v, want 3", view.Averages[1])
	}

	cell := view.Rows[1].Cells[1]
	if cell.MarkID == nil {
		t.Fatal("absent mark cell should carry its mark id")
	}
	if cell.Value != nil {
		t.Fatalf("absent mark cell should have nil value, got %v", *cell.Value)
	}
	if view.Rows[0].Completed != nil {
		t.Fatal("no completion recorded, row should have none")
	}
}

func TestBuildViewNoMarks(t *testing.T) {
	db := setupDB(t)

	group := models.Group{Name: "П-22"}
	if err := db.Create(&group).Error; err != nil {
		t.Fatal(err)
	}
	module := models.Module{Name: "Физика", ExamType: models.ExamTypePass}
	if err := db.Create(&module).Error; err != nil {
		t.Fatal(err)
	}
	student := models.Student{Login: "sidorov", FirstName: "С", LastName: "Сидоров", GroupID: &group.ID}
	if err := db.Create(&student).Error; err != nil {
		t.Fatal(err)
	}
	topic := models.Topic{Name: "Кинематика", Hours: 2, ModuleID: module.ID}
	if err := db.Create(&topic).Error; err != nil {
		t.Fatal(err)
	}
	sch := models.Schedule{GroupID: group.ID, ModuleID: &module.ID, Weekday: 1}
	if err := db.Create(&sch).Error; err != nil {
		t.Fatal(err)
	}

	view, err := Build(db, &sch)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if view.Averages[0] != 0 {
		t.Fatalf("no marks should average 0, got %v", view.Averages[0])
	}
	cell := view.Rows[0].Cells[0]
	if cell.MarkID != nil || cell.Value != nil {
		t.Fatalf("empty cell expected, got %+v", cell)
	}
}

func TestBuildViewNoModule(t *testing.T) {
	db := setupDB(t)
	group := models.Group{Name: "П-23"}
	if err := db.Create(&group).Error; err != nil {
		t.Fatal(err)
	}
	sch := models.Schedule{GroupID: group.ID, Weekday: 2}
	if err := db.Create(&sch).Error; err != nil {
		t.Fatal(err)
	}
	if _, err := Build(db, &sch); err == nil {
		t.Fatal("want error for schedule without module")
	}
}
