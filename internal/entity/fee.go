package entity

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeeStructure struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Class      string    `gorm:"size:20;uniqueIndex;not null" json:"class"`
	TuitionFee float64   `gorm:"type:numeric;not null" json:"tuitionFee"`
	LibraryFee float64   `gorm:"type:numeric;not null" json:"libraryFee"`
	SportsFee  float64   `gorm:"type:numeric;not null" json:"sportsFee"`
	LabFee     float64   `gorm:"type:numeric;not null" json:"labFee"`
	ExamFee    float64   `gorm:"type:numeric;not null" json:"examFee"`
	TotalFee   float64   `gorm:"type:numeric;not null" json:"totalFee"`
}

// ComputeTotal sets TotalFee to the sum of the five components.
func (f *FeeStructure) ComputeTotal() {
	f.TotalFee = f.TuitionFee + f.LibraryFee + f.SportsFee + f.LabFee + f.ExamFee
}

func (f *FeeStructure) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}
