package models

import "time"

// Schedule is one session of a module for a group on a weekday (0-5,
// Monday through Saturday). A session may be taught by several teachers.
type Schedule struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	GroupID   uint      `json:"group_id" gorm:"not null"`
	Group     *Group    `json:"group,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	ModuleID  *uint     `json:"module_id,omitempty"`
	Module    *Module   `json:"module,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Weekday   uint      `json:"weekday" gorm:"not null"`
	TimeStart *string   `json:"time_start,omitempty" gorm:"size:5"` // "HH:MM"
	TimeEnd   *string   `json:"time_end,omitempty" gorm:"size:5"`
	Teachers  []Account `json:"teachers,omitempty" gorm:"many2many:schedule_teachers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
