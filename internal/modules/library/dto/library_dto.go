package dto

import "anoa.com/schoolmanagement/internal/entity"

type IssueCardInput struct {
	StudentID string `json:"studentId" binding:"required"`
}

type IssueCardResponse struct {
	Message     string              `json:"message"`
	LibraryCard *entity.LibraryCard `json:"libraryCard"`
}
