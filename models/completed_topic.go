package models

import "time"

// CompletedTopic records that a topic was covered in class on a date.
// One per (topic, module) is the intended usage.
type CompletedTopic struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Date      time.Time `json:"date" gorm:"not null"`
	TopicID   uint      `json:"topic_id" gorm:"not null;index"`
	Topic     *Topic    `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ModuleID  *uint     `json:"module_id,omitempty" gorm:"index"`
	Module    *Module   `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	TeacherID *uint     `json:"teacher_id,omitempty"`
	Teacher   *Account  `json:"-" gorm:"foreignKey:TeacherID;constraint:OnDelete:SET NULL"`
	CreatedAt time.Time `json:"created_at"`
}
