package handler

import (
	"net/http"

	"anoa.com/schoolmanagement/internal/modules/library/dto"
	library "anoa.com/schoolmanagement/internal/modules/library/service"
	"anoa.com/schoolmanagement/pkg/apperror"
	"anoa.com/schoolmanagement/pkg/response"
	"anoa.com/schoolmanagement/pkg/validator"
	"github.com/gin-gonic/gin"
)

type LibraryHandler struct {
	libraryService library.LibraryService
}

func NewLibraryHandler(libraryService library.LibraryService) *LibraryHandler {
	return &LibraryHandler{
		libraryService: libraryService,
	}
}

func (h *LibraryHandler) IssueCard(c *gin.Context) {
	var input dto.IssueCardInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Message(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	res, err := h.libraryService.IssueCard(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *LibraryHandler) GetAllCards(c *gin.Context) {
	cards, err := h.libraryService.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, cards)
}

func (h *LibraryHandler) GetStudentCard(c *gin.Context) {
	claims, err := response.GetClaims(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	studentID := c.Param("studentId")
	if !claims.CanViewStudent(studentID) {
		response.ResponseError(c, apperror.ErrForbidden)
		return
	}

	card, err := h.libraryService.GetByStudentID(c.Request.Context(), studentID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, card)
}
