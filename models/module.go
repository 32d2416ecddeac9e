package models

import "time"

// Exam types for a module's final assessment.
const (
	ExamTypeExam = "e" // экзамен
	ExamTypePass = "z" // зачет
)

// Module is a taught subject. Hour counts are kept per semester, eight
// slots, matching the curriculum plan.
type Module struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	Index    *string `json:"index,omitempty" gorm:"size:20;column:module_index"`
	Name     string  `json:"name" gorm:"size:100;index;not null"`
	Hours1   uint    `json:"hours_1" gorm:"not null;default:0"`
	Hours2   uint    `json:"hours_2" gorm:"not null;default:0"`
	Hours3   uint    `json:"hours_3" gorm:"not null;default:0"`
	Hours4   uint    `json:"hours_4" gorm:"not null;default:0"`
	Hours5   uint    `json:"hours_5" gorm:"not null;default:0"`
	Hours6   uint    `json:"hours_6" gorm:"not null;default:0"`
	Hours7   uint    `json:"hours_7" gorm:"not null;default:0"`
	Hours8   uint    `json:"hours_8" gorm:"not null;default:0"`
	ExamType string  `json:"exam_type" gorm:"size:1;not null"`

	Qualifications  []Qualification  `json:"qualifications,omitempty" gorm:"many2many:module_qualifications"`
	Specializations []Specialization `json:"specializations,omitempty" gorm:"many2many:module_specializations"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalHours sums the eight semester slots.
func (m *Module) TotalHours() uint {
	return m.Hours1 + m.Hours2 + m.Hours3 + m.Hours4 + m.Hours5 + m.Hours6 + m.Hours7 + m.Hours8
}

func (m *Module) DisplayName() string {
	if m.Index != nil && *m.Index != "" {
		return *m.Index + " " + m.Name
	}
	return m.Name
}
