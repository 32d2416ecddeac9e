package models

import "time"

// DismissedStudent is a detached snapshot of a removed Student. It is
// created only by dismissal and deleted only by recovery.
type DismissedStudent struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	Login          string     `json:"login" gorm:"uniqueIndex;size:150;not null"`
	FirstName      string     `json:"first_name" gorm:"size:150;index;not null"`
	LastName       string     `json:"last_name" gorm:"size:150;index;not null"`
	MiddleName     *string    `json:"middle_name,omitempty" gorm:"size:150"`
	Phone          *string    `json:"phone,omitempty" gorm:"size:12"`
	Birthday       *time.Time `json:"birthday,omitempty"`
	Email          *string    `json:"email,omitempty" gorm:"size:254"`
	HomeAddress    *string    `json:"home_address,omitempty" gorm:"size:200"`
	AdditionalInfo *string    `json:"additional_info,omitempty" gorm:"type:text"`
	DismissDate    time.Time  `json:"dismiss_date" gorm:"autoCreateTime"`
}
