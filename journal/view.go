package journal

import (
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/project-college/backend/models"
)

// Cell is one (topic, student) position in the grid: the mark's id and
// value when one exists, blanks otherwise.
type Cell struct {
	MarkID *uint `json:"mark_id"`
	Value  *uint `json:"value"`
}

// Row is one topic line: the most recent completion (or none) and one
// cell per student in roster order.
type Row struct {
	Topic     models.Topic           `json:"topic"`
	Completed *models.CompletedTopic `json:"completed"`
	Cells     []Cell                 `json:"cells"`
}

// View is the journal grid for one scheduled session. Rows follow the
// module's topic ordering; columns follow the group roster ordering.
type View struct {
	ScheduleID uint             `json:"schedule_id"`
	Group      models.Group     `json:"group"`
	Module     models.Module    `json:"module"`
	Students   []models.Student `json:"students"`
	Rows       []Row            `json:"rows"`
	TotalHours uint             `json:"total_hours"`
	Averages   []float64        `json:"averages"` // one per student, roster order
}

// Build computes the grid fresh from storage; nothing is cached.
func Build(db *gorm.DB, sch *models.Schedule) (*View, error) {
	if sch.ModuleID == nil {
		return nil, errors.New("schedule has no module")
	}

	var group models.Group
	if err := db.First(&group, sch.GroupID).Error; err != nil {
		return nil, err
	}
	var module models.Module
	if err := db.First(&module, *sch.ModuleID).Error; err != nil {
		return nil, err
	}

	var students []models.Student
	if err := db.Where("group_id = ?", sch.GroupID).
		Order("last_name, first_name, middle_name").
		Find(&students).Error; err != nil {
		return nil, err
	}

	var topics []models.Topic
	if err := db.Where("module_id = ?", module.ID).
		Order("name").
		Find(&topics).Error; err != nil {
		return nil, err
	}

	view := &View{
		ScheduleID: sch.ID,
		Group:      group,
		Module:     module,
		Students:   students,
		Rows:       make([]Row, 0, len(topics)),
	}

	sums := make([]uint, len(students))
	counts := make([]uint, len(students))

	for _, topic := range topics {
		row := Row{Topic: topic, Cells: make([]Cell, 0, len(students))}

		var ct models.CompletedTopic
		err := db.Where("topic_id = ? AND module_id = ?", topic.ID, module.ID).
			Order("date DESC").
			First(&ct).Error
		if err == nil {
			completed := ct
			row.Completed = &completed
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		view.TotalHours += topic.Hours

		for i, student := range students {
			var mark models.Mark
			err := db.Where("module_id = ? AND student_id = ? AND topic_id = ?",
				module.ID, student.ID, topic.ID).
				First(&mark).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				row.Cells = append(row.Cells, Cell{})
				continue
			}
			if err != nil {
				return nil, err
			}
			id := mark.ID
			row.Cells = append(row.Cells, Cell{MarkID: &id, Value: mark.Value})
			if mark.Value != nil {
				sums[i] += *mark.Value
				counts[i]++
			}
		}
		view.Rows = append(view.Rows, row)
	}

	// Absent marks count in neither numerator nor denominator; no marks
	// at all yields 0.
	view.Averages = make([]float64, len(students))
	for i := range students {
		if counts[i] > 0 {
			avg := float64(sums[i]) / float64(counts[i])
			view.Averages[i] = math.Round(avg*10) / 10
		}
	}
	return view, nil
}
