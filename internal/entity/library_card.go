package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardStatus string

const (
	CardActive    CardStatus = "active"
	CardExpired   CardStatus = "expired"
	CardSuspended CardStatus = "suspended"
)

type LibraryCard struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	CardNumber  string     `gorm:"size:50;uniqueIndex;not null" json:"cardNumber"`
	StudentID   string     `gorm:"size:50;uniqueIndex;not null" json:"studentId"`
	StudentName string     `gorm:"size:100;not null" json:"studentName"`
	Class       string     `gorm:"size:20;not null" json:"class"`
	IssueDate   time.Time  `gorm:"not null" json:"issueDate"`
	ExpiryDate  time.Time  `gorm:"not null;index" json:"expiryDate"`
	Status      CardStatus `gorm:"size:20;not null;default:active;check:status IN ('active','expired','suspended')" json:"status"`
}

func (c *LibraryCard) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	if c.Status == "" {
		c.Status = CardActive
	}
	return
}
