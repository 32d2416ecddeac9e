package models

import "time"

type Student struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Login           string     `json:"login" gorm:"uniqueIndex;size:150;not null"`
	FirstName       string     `json:"first_name" gorm:"size:150;index;not null"`
	LastName        string     `json:"last_name" gorm:"size:150;index;not null"`
	MiddleName      *string    `json:"middle_name,omitempty" gorm:"size:150"`
	Phone           *string    `json:"phone,omitempty" gorm:"size:12;index"`
	Birthday        *time.Time `json:"birthday,omitempty"`
	Email           *string    `json:"email,omitempty" gorm:"size:254"`
	BookNumber      *uint      `json:"book_number,omitempty" gorm:"index"` // номер по поименной книге
	EnrollmentOrder *string    `json:"enrollment_order,omitempty" gorm:"size:300"`
	HomeAddress     *string    `json:"home_address,omitempty" gorm:"size:200"`
	Courses         *string    `json:"courses,omitempty" gorm:"size:100"` // движение контингента
	AdditionalInfo  *string    `json:"additional_info,omitempty" gorm:"type:text"`
	GroupID         *uint      `json:"group_id,omitempty"`
	Group           *Group     `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (s *Student) FullName() string {
	out := s.LastName + " " + s.FirstName
	if s.MiddleName != nil && *s.MiddleName != "" {
		out += " " + *s.MiddleName
	}
	return out
}
