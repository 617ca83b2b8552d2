package dto

type RegisterStudentInput struct {
	Name        string `json:"name" binding:"required,max=100"`
	Email       string `json:"email" binding:"required,email"`
	Class       string `json:"class" binding:"required,max=20"`
	RollNumber  int    `json:"rollNumber" binding:"required,min=1,max=999"`
	Address     string `json:"address" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required,max=30"`
	DOB         string `json:"dob" binding:"required"`
}

type StudentSummary struct {
	StudentID  string `json:"studentId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Class      string `json:"class"`
	RollNumber int    `json:"rollNumber"`
}

type RegisterStudentResponse struct {
	Message   string         `json:"message"`
	Student   StudentSummary `json:"student"`
	EmailSent bool           `json:"emailSent"`
}

type SearchStudentsQuery struct {
	Query string `form:"q" binding:"required"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=50"`
}
