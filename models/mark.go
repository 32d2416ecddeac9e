package models

import "time"

// Mark is one student's grade on one topic. A nil Value means the
// student was absent. Uniqueness per (student, topic) is intended usage,
// not enforced by the schema.
type Mark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	StudentID uint      `json:"student_id" gorm:"not null;index"`
	Student   *Student  `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	TopicID   uint      `json:"topic_id" gorm:"not null;index"`
	Topic     *Topic    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ModuleID  *uint     `json:"module_id,omitempty" gorm:"index"`
	Module    *Module   `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	TeacherID *uint     `json:"teacher_id,omitempty"`
	Teacher   *Account  `json:"-" gorm:"foreignKey:TeacherID;constraint:OnDelete:SET NULL"`
	Value     *uint     `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
