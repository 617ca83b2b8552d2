package handler

import (
	"net/http"

	"anoa.com/schoolmanagement/internal/modules/student/dto"
	student "anoa.com/schoolmanagement/internal/modules/student/service"
	"anoa.com/schoolmanagement/pkg/apperror"
	"anoa.com/schoolmanagement/pkg/response"
	"anoa.com/schoolmanagement/pkg/validator"
	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studentService student.StudentService
}

func NewStudentHandler(studentService student.StudentService) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
	}
}

func (h *StudentHandler) RegisterStudent(c *gin.Context) {
	var input dto.RegisterStudentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Message(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	res, err := h.studentService.Register(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *StudentHandler) GetAllStudents(c *gin.Context) {
	students, err := h.studentService.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

func (h *StudentHandler) SearchStudents(c *gin.Context) {
	var query dto.SearchStudentsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Message(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	students, err := h.studentService.Search(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, students)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	claims, err := response.GetClaims(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	studentID := c.Param("id")
	if !claims.CanViewStudent(studentID) {
		response.ResponseError(c, apperror.ErrForbidden)
		return
	}

	st, err := h.studentService.GetByStudentID(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, st)
}
