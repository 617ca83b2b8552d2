package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student is a registered learner. StudentID is assigned once at
// registration and never changes.
type Student struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID        string    `gorm:"size:50;uniqueIndex;not null" json:"studentId"`
	PasswordHash     string    `gorm:"column:password;size:255;not null" json:"-"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Email            string    `gorm:"size:100;not null" json:"email"`
	Class            string    `gorm:"size:20;not null;uniqueIndex:idx_students_class_roll" json:"class"`
	RollNumber       int       `gorm:"not null;uniqueIndex:idx_students_class_roll" json:"rollNumber"`
	Address          string    `gorm:"type:text;not null" json:"address"`
	PhoneNumber      string    `gorm:"size:30;not null" json:"phoneNumber"`
	DOB              time.Time `gorm:"type:date;not null" json:"dob"`
	RegistrationDate time.Time `gorm:"autoCreateTime" json:"registrationDate"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID, err = uuid.NewV7()
	}
	return
}
