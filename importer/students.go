package importer

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/project-college/backend/models"
)

// Student sheet columns, in order: login, first name, last name, middle
// name, phone, birthday, email, book number, enrollment order, home
// address, contingent movement, additional info.
const studentColumns = 12

// ImportStudents reads the sheet at path and enrolls one student per
// data row into groupID, provisioning a login account with the default
// password for each. Commit is all-or-nothing over the validation pass;
// a duplicate login discovered at creation time (lost race) is appended
// to the returned messages instead of failing the batch.
func ImportStudents(db *gorm.DB, path string, groupID uint, defaultPassword string) ([]string, error) {
	defer removeFile(path)

	rows, err := openRows(path)
	if err != nil {
		return nil, err
	}

	var errs []string
	var students []models.Student

	for i, row := range rows {
		rowNum := i + 2

		login := cell(row, 0)
		if login == "" {
			errs = append(errs, emptyCell(1, rowNum))
		} else if LoginTaken(db, login) {
			errs = append(errs, fmt.Sprintf(
				"Пользователь с таким логином уже существует: столбец - 1; строка - %d", rowNum))
		}
		firstName := cell(row, 1)
		if firstName == "" {
			errs = append(errs, emptyCell(2, rowNum))
		}
		lastName := cell(row, 2)
		if lastName == "" {
			errs = append(errs, emptyCell(3, rowNum))
		}

		birthday, ok := parseBirthday(cell(row, 5))
		if !ok {
			errs = append(errs, "Неверный формат даты, нужный формат - дд.мм.гг")
		}

		var bookNumber *uint
		if v := cell(row, 7); v != "" {
			if n, ok := parseCellUint(v); ok {
				bookNumber = &n
			} else {
				errs = append(errs, badFormat(8, rowNum))
			}
		}

		gid := groupID
		students = append(students, models.Student{
			Login:           login,
			FirstName:       firstName,
			LastName:        lastName,
			MiddleName:      optCell(row, 3),
			Phone:           optCell(row, 4),
			Birthday:        birthday,
			Email:           optCell(row, 6),
			BookNumber:      bookNumber,
			EnrollmentOrder: optCell(row, 8),
			HomeAddress:     optCell(row, 9),
			Courses:         optCell(row, 10),
			AdditionalInfo:  optCell(row, 11),
			GroupID:         &gid,
		})
	}

	if len(errs) > 0 {
		return errs, nil
	}

	for i := range students {
		if ok, msg := CreateStudentWithAccount(db, &students[i], defaultPassword); !ok {
			errs = append(errs, msg)
		}
	}
	slog.Info("students imported", "group_id", groupID, "count", len(students)-len(errs))
	return errs, nil
}

// CreateStudentWithAccount persists a student and its paired login
// account hashed from the default password. Returns false with a
// user-facing message when the login is already taken.
func CreateStudentWithAccount(db *gorm.DB, st *models.Student, defaultPassword string) (bool, string) {
	if LoginTaken(db, st.Login) {
		return false, "Пользователь с таким логином уже существует"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(defaultPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err.Error()
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(st).Error; err != nil {
			return err
		}
		return tx.Create(&models.Account{
			Login:        st.Login,
			PasswordHash: string(hash),
			FirstName:    st.FirstName,
			LastName:     st.LastName,
			MiddleName:   st.MiddleName,
			StudentID:    &st.ID,
		}).Error
	})
	if err != nil {
		// lost race on the login's unique index, most likely
		return false, "Пользователь с таким логином уже существует"
	}
	return true, ""
}

func optCell(row []string, i int) *string {
	v := cell(row, i)
	if v == "" {
		return nil
	}
	return &v
}

// parseBirthday accepts a textual дд.мм.гг value or a native
// spreadsheet date (a raw serial number). Blank is fine; anything else
// unparseable is not.
func parseBirthday(raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(birthdayLayout, raw); err == nil {
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d, true
	}
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, true
		}
	}
	return nil, false
}
