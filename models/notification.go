package models

import "time"

// Notification is a broadcast message shown on the student and/or
// teacher boards.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	ForStudents bool      `json:"for_students" gorm:"not null;default:false"`
	ForTeachers bool      `json:"for_teachers" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
}
