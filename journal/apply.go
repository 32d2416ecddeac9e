package journal

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/project-college/backend/models"
)

// ApplyEdits commits a batch of journal edits in one transaction. Every
// write stamps the acting teacher. Edits that target rows which no
// longer exist are no-ops; a mark edit that would store the value
// already present is skipped.
func ApplyEdits(db *gorm.DB, moduleID *uint, teacherID uint, edits []Edit) error {
	now := time.Now()
	return db.Transaction(func(tx *gorm.DB) error {
		for _, e := range edits {
			var err error
			switch e.Kind {
			case SetMark:
				err = applyMark(tx, moduleID, teacherID, e)
			case ClearMark:
				err = tx.Delete(&models.Mark{}, e.MarkID).Error
			case SetCompletionDate:
				err = applyCompletion(tx, moduleID, teacherID, e, now)
			case ClearCompletion:
				err = tx.Delete(&models.CompletedTopic{}, e.CompletedTopicID).Error
			}
			if err != nil {
				slog.Error("journal edit failed", "kind", e.Kind, "err", err)
				return err
			}
		}
		return nil
	})
}

func applyMark(tx *gorm.DB, moduleID *uint, teacherID uint, e Edit) error {
	if e.MarkID == 0 {
		return tx.Create(&models.Mark{
			StudentID: e.StudentID,
			TopicID:   e.TopicID,
			ModuleID:  moduleID,
			TeacherID: &teacherID,
			Value:     e.Value,
		}).Error
	}

	var mark models.Mark
	if err := tx.First(&mark, e.MarkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	if sameValue(mark.Value, e.Value) {
		return nil
	}
	mark.Value = e.Value
	mark.TeacherID = &teacherID
	return tx.Save(&mark).Error
}

func applyCompletion(tx *gorm.DB, moduleID *uint, teacherID uint, e Edit, now time.Time) error {
	// The grid submits only a calendar date; the current time-of-day is
	// kept so same-day entries stay ordered.
	date := time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(),
		now.Hour(), now.Minute(), now.Second(), 0, e.Date.Location())

	if e.CompletedTopicID == 0 {
		return tx.Create(&models.CompletedTopic{
			Date:      date,
			TopicID:   e.TopicID,
			ModuleID:  moduleID,
			TeacherID: &teacherID,
		}).Error
	}

	var ct models.CompletedTopic
	if err := tx.First(&ct, e.CompletedTopicID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	ct.Date = date
	ct.TeacherID = &teacherID
	return tx.Save(&ct).Error
}

func sameValue(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
