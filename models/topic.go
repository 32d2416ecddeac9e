package models

import "time"

type Topic struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:150;index;not null"`
	Hours     uint      `json:"hours" gorm:"not null;default:0"`
	HomeTask  *string   `json:"home_task,omitempty" gorm:"type:text"`
	ModuleID  uint      `json:"module_id" gorm:"not null"`
	Module    *Module   `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
