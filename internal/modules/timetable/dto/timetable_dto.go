package dto

import "anoa.com/schoolmanagement/internal/entity"

type CreateEntryInput struct {
	Class   string `json:"class" binding:"required,max=20"`
	Day     string `json:"day" binding:"required,max=20"`
	Period  int    `json:"period" binding:"required,min=1"`
	Subject string `json:"subject" binding:"required,max=100"`
	Teacher string `json:"teacher" binding:"required,max=100"`
	Time    string `json:"time" binding:"required,max=50"`
}

type EntryURI struct {
	ID string `uri:"id" binding:"required,uuid"`
}

type CreateEntryResponse struct {
	Message   string                 `json:"message"`
	Timetable *entity.TimetableEntry `json:"timetable"`
}
