package importer

import (
	"log/slog"

	"gorm.io/gorm"

	"github.com/project-college/backend/models"
)

// ImportTopics reads the sheet at path and creates one Topic per data
// row under moduleID. Columns: hours (whole number), name, home task.
// If any row fails validation nothing is created and the collected
// row-tagged messages are returned. The file is removed either way.
func ImportTopics(db *gorm.DB, path string, moduleID uint) ([]string, error) {
	defer removeFile(path)

	rows, err := openRows(path)
	if err != nil {
		return nil, err
	}

	var errs []string
	var topics []models.Topic

	for i, row := range rows {
		rowNum := i + 2

		hours, ok := parseCellUint(cell(row, 0))
		if !ok {
			errs = append(errs, badFormat(1, rowNum))
		}
		name := cell(row, 1)
		if name == "" {
			errs = append(errs, emptyCell(2, rowNum))
		}
		homeTask := cell(row, 2)
		if homeTask == "" {
			errs = append(errs, emptyCell(3, rowNum))
		}

		topics = append(topics, models.Topic{
			Name:     name,
			Hours:    hours,
			HomeTask: &homeTask,
			ModuleID: moduleID,
		})
	}

	if len(errs) > 0 {
		return errs, nil
	}
	if len(topics) == 0 {
		return nil, nil
	}
	if err := db.Create(&topics).Error; err != nil {
		return nil, err
	}
	slog.Info("topics imported", "module_id", moduleID, "count", len(topics))
	return nil, nil
}
