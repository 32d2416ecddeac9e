package models

import "time"

type Qualification struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"size:100;index;not null"`
	Name      string    `json:"name" gorm:"size:200;index;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
