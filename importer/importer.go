// Package importer ingests .xlsx sheets of topics and students. Every
// row is validated exhaustively; records are committed only when the
// whole sheet is clean.
package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/project-college/backend/models"
)

const birthdayLayout = "02.01.06"

// UploadPath is the per-uploader buffer location for an incoming sheet.
// Keyed by uploader id, so a second concurrent upload from the same
// account would race on it; inherited limitation.
func UploadPath(excelDir string, uploaderID uint) string {
	return filepath.Join(excelDir, fmt.Sprintf("%d.xlsx", uploaderID))
}

func emptyCell(col, row int) string {
	return fmt.Sprintf("Пустая ячейка: столбец - %d; строка - %d", col, row)
}

func badFormat(col, row int) string {
	return fmt.Sprintf("Неверный формат данных: столбец - %d; строка - %d", col, row)
}

// openRows opens the sheet at path and returns its data rows (the
// header row stripped) with raw cell values. The file is removed by the
// caller's defer regardless of the outcome.
func openRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// LoginTaken reports whether a login exists in either the account or
// the student namespace; logins must be unique across both.
func LoginTaken(db *gorm.DB, login string) bool {
	var n int64
	db.Model(&models.Account{}).Where("login = ?", login).Count(&n)
	if n > 0 {
		return true
	}
	db.Model(&models.Student{}).Where("login = ?", login).Count(&n)
	return n > 0
}

func parseCellUint(s string) (uint, bool) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

func removeFile(path string) {
	_ = os.Remove(path)
}
