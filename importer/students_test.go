package importer

import (
	"os"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/project-college/backend/models"
)

var studentsHeader = []string{
	"Логин", "Имя", "Фамилия", "Отчество", "Телефон", "Дата рождения",
	"Email", "Номер зачётки", "Приказ о зачислении", "Адрес", "Движение", "Дополнительно",
}

func TestImportStudents(t *testing.T) {
	db := setupDB(t)
	group := models.Group{Name: "П-21"}
	if err := db.Create(&group).Error; err != nil {
		t.Fatal(err)
	}

	path := writeSheet(t, studentsHeader, [][]any{
		{"ivanov", "Иван", "Иванов", "Иванович", "89001234567", "01.09.06",
			"ivanov@example.com", 1042, "Приказ 17", "ул. Ленина 1", "", "спортсмен"},
		{"petrov", "Пётр", "Петров", "", "", "",
			"", "", "", "", "", ""},
	})
	msgs, err := ImportStudents(db, path, group.ID, "changeme")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("unexpected messages: %v", msgs)
	}

	var ivanov models.Student
	if err := db.First(&ivanov, "login = ?", "ivanov").Error; err != nil {
		t.Fatalf("student not created: %v", err)
	}
	if ivanov.GroupID == nil || *ivanov.GroupID != group.ID {
		t.Fatalf("group not set: %v", ivanov.GroupID)
	}
	if ivanov.Birthday == nil {
		t.Fatal("birthday not parsed")
	}
	if y, m, d := ivanov.Birthday.Date(); y != 2006 || m != time.September || d != 1 {
		t.Fatalf("birthday: got %v", ivanov.Birthday)
	}
	if ivanov.BookNumber == nil || *ivanov.BookNumber != 1042 {
		t.Fatalf("book number: got %v", ivanov.BookNumber)
	}

	var account models.Account
	if err := db.First(&account, "login = ?", "ivanov").Error; err != nil {
		t.Fatalf("account not provisioned: %v", err)
	}
	if account.StudentID == nil || *account.StudentID != ivanov.ID {
		t.Fatalf("account not linked: %v", account.StudentID)
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte("changeme")) != nil {
		t.Fatal("default password does not verify")
	}

	var n int64
	db.Model(&models.Student{}).Count(&n)
	if n != 2 {
		t.Fatalf("students: got %d, want 2", n)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("uploaded file should be removed after import")
	}
}

func TestImportStudentsAllOrNothing(t *testing.T) {
	db := setupDB(t)
	group := models.Group{Name: "П-22"}
	if err := db.Create(&group).Error; err != nil {
		t.Fatal(err)
	}

	path := writeSheet(t, studentsHeader, [][]any{
		{"ok", "Имя", "Фамилия", "", "", "", "", "", "", "", "", ""},
		{"", "Имя", "Фамилия", "", "", "вчера", "", "зачётка", "", "", "", ""},
	})
	msgs, err := ImportStudents(db, path, group.ID, "changeme")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	want := []string{
		"Пустая ячейка: столбец - 1; строка - 3",
		"Неверный формат даты, нужный формат - дд.мм.гг",
		"Неверный формат данных: столбец - 8; строка - 3",
	}
	if len(msgs) != len(want) {
		t.Fatalf("got messages %v", msgs)
	}
	for i := range want {
		if msgs[i] != want[i] {
			t.Fatalf("message %d: got %q, want %q", i, msgs[i], want[i])
		}
	}

	var n int64
	db.Model(&models.Student{}).Count(&n)
	if n != 0 {
		t.Fatalf("valid row committed despite errors elsewhere: %d", n)
	}
}

func TestImportStudentsDuplicateLogin(t *testing.T) {
	db := setupDB(t)
	group := models.Group{Name: "П-23"}
	if err := db.Create(&group).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&models.Account{Login: "taken", PasswordHash: "x"}).Error; err != nil {
		t.Fatal(err)
	}

	path := writeSheet(t, studentsHeader, [][]any{
		{"taken", "Имя", "Фамилия", "", "", "", "", "", "", "", "", ""},
	})
	msgs, err := ImportStudents(db, path, group.ID, "changeme")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(msgs) != 1 || msgs[0] != "Пользователь с таким логином уже существует: столбец - 1; строка - 2" {
		t.Fatalf("got messages %v", msgs)
	}
}

func TestCreateStudentWithAccount(t *testing.T) {
	db := setupDB(t)

	st := models.Student{Login: "new", FirstName: "Имя", LastName: "Фамилия"}
	ok, msg := CreateStudentWithAccount(db, &st, "changeme")
	if !ok || msg != "" {
		t.Fatalf("create failed: %q", msg)
	}

	dup := models.Student{Login: "new", FirstName: "Имя", LastName: "Фамилия"}
	ok, msg = CreateStudentWithAccount(db, &dup, "changeme")
	if ok || msg != "Пользователь с таким логином уже существует" {
		t.Fatalf("duplicate allowed: ok=%v msg=%q", ok, msg)
	}
}

func TestParseBirthday(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		got, ok := parseBirthday("01.09.06")
		if !ok || got == nil {
			t.Fatal("text date should parse")
		}
	})
	t.Run("serial", func(t *testing.T) {
		// 2006-09-01 as a spreadsheet serial number.
		got, ok := parseBirthday("38961")
		if !ok || got == nil {
			t.Fatal("serial date should parse")
		}
		if y, m, d := got.Date(); y != 2006 || m != time.September || d != 1 {
			t.Fatalf("serial date: got %v", got)
		}
	})
	t.Run("blank", func(t *testing.T) {
		got, ok := parseBirthday("")
		if !ok || got != nil {
			t.Fatal("blank should be fine and empty")
		}
	})
	t.Run("garbage", func(t *testing.T) {
		if _, ok := parseBirthday("вчера"); ok {
			t.Fatal("garbage should not parse")
		}
	})
}
