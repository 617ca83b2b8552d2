package dto

import "anoa.com/schoolmanagement/internal/entity"

// UpsertFeeInput uses pointers so an explicit 0 passes the required check.
type UpsertFeeInput struct {
	Class      string   `json:"class" binding:"required,max=20"`
	TuitionFee *float64 `json:"tuitionFee" binding:"required,gte=0"`
	LibraryFee *float64 `json:"libraryFee" binding:"required,gte=0"`
	SportsFee  *float64 `json:"sportsFee" binding:"required,gte=0"`
	LabFee     *float64 `json:"labFee" binding:"required,gte=0"`
	ExamFee    *float64 `json:"examFee" binding:"required,gte=0"`
}

type UpsertFeeResponse struct {
	Message      string               `json:"message"`
	FeeStructure *entity.FeeStructure `json:"feeStructure"`
}
