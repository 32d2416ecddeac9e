package models

import "time"

// Account is a login for staff. Teachers and junior admins are flagged,
// the superuser is created by the bootstrap CLI. An account created for
// a student carries a link to its Student row and no staff flags.
type Account struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	Login         string     `json:"login" gorm:"uniqueIndex;size:150;not null"`
	PasswordHash  string     `json:"-" gorm:"not null"`
	FirstName     string     `json:"first_name" gorm:"size:150"`
	LastName      string     `json:"last_name" gorm:"size:150;index"`
	MiddleName    *string    `json:"middle_name,omitempty" gorm:"size:150"`
	Email         *string    `json:"email,omitempty" gorm:"size:254"`
	Phone         *string    `json:"phone,omitempty" gorm:"size:12"`
	IsTeacher     bool       `json:"is_teacher" gorm:"not null;default:false"`
	IsJuniorAdmin bool       `json:"is_junioradmin" gorm:"not null;default:false"`
	IsSuperuser   bool       `json:"is_superuser" gorm:"not null;default:false"`
	StudentID     *uint      `json:"student_id,omitempty"`
	Student       *Student   `json:"-" gorm:"constraint:OnDelete:SET NULL"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// IsAdmin reports whether the account may use the admin surface.
func (a *Account) IsAdmin() bool {
	return a.IsJuniorAdmin || a.IsSuperuser
}

// IsStaff reports whether the account belongs to any staff role.
func (a *Account) IsStaff() bool {
	return a.IsSuperuser || a.IsJuniorAdmin || a.IsTeacher
}

// Role derives the display role from the capability flags.
func (a *Account) Role() string {
	switch {
	case a.IsSuperuser:
		return "superadmin"
	case a.IsJuniorAdmin:
		return "junioradmin"
	case a.IsTeacher:
		return "teacher"
	case a.StudentID != nil:
		return "student"
	}
	return ""
}

func (a *Account) FullName() string {
	out := a.LastName + " " + a.FirstName
	if a.MiddleName != nil && *a.MiddleName != "" {
		out += " " + *a.MiddleName
	}
	return out
}
