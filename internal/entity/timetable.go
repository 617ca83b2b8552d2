package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimetableEntry is one period of a class's week. Several entries may share
// the same class, day and period.
type TimetableEntry struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Class   string    `gorm:"size:20;not null;index" json:"class"`
	Day     string    `gorm:"size:20;not null" json:"day"`
	Period  int       `gorm:"not null" json:"period"`
	Subject string    `gorm:"size:100;not null" json:"subject"`
	Teacher string    `gorm:"size:100;not null" json:"teacher"`
	Time    string    `gorm:"size:50;not null" json:"time"`
}

func (TimetableEntry) TableName() string {
	return "timetable_entries"
}

func (e *TimetableEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return
}
