package handler

import (
	"net/http"

	"anoa.com/schoolmanagement/internal/modules/timetable/dto"
	timetable "anoa.com/schoolmanagement/internal/modules/timetable/service"
	"anoa.com/schoolmanagement/pkg/apperror"
	"anoa.com/schoolmanagement/pkg/response"
	"anoa.com/schoolmanagement/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TimetableHandler struct {
	timetableService timetable.TimetableService
}

func NewTimetableHandler(timetableService timetable.TimetableService) *TimetableHandler {
	return &TimetableHandler{
		timetableService: timetableService,
	}
}

func (h *TimetableHandler) CreateEntry(c *gin.Context) {
	var input dto.CreateEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Message(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	res, err := h.timetableService.Create(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *TimetableHandler) GetClassTimetable(c *gin.Context) {
	claims, err := response.GetClaims(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	class := c.Param("class")
	if !claims.CanViewClass(class) {
		response.ResponseError(c, apperror.ErrForbidden)
		return
	}

	entries, err := h.timetableService.GetByClass(c.Request.Context(), class)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *TimetableHandler) DeleteEntry(c *gin.Context) {
	var uri dto.EntryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid timetable entry id")
		return
	}

	id, err := uuid.Parse(uri.ID)
	if err != nil {
		response.Message(c, http.StatusBadRequest, "Invalid timetable entry id")
		return
	}

	if err := h.timetableService.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	response.Message(c, http.StatusOK, "Timetable entry deleted successfully")
}
