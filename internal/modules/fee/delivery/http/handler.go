package handler

import (
	"net/http"

	"anoa.com/schoolmanagement/internal/modules/fee/dto"
	fee "anoa.com/schoolmanagement/internal/modules/fee/service"
	"anoa.com/schoolmanagement/pkg/apperror"
	"anoa.com/schoolmanagement/pkg/response"
	"anoa.com/schoolmanagement/pkg/validator"
	"github.com/gin-gonic/gin"
)

type FeeHandler struct {
	feeService fee.FeeService
}

func NewFeeHandler(feeService fee.FeeService) *FeeHandler {
	return &FeeHandler{
		feeService: feeService,
	}
}

func (h *FeeHandler) UpsertFee(c *gin.Context) {
	var input dto.UpsertFeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Message(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	res, created, err := h.feeService.Upsert(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, res)
}

func (h *FeeHandler) GetAllFees(c *gin.Context) {
	fees, err := h.feeService.GetAll(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, fees)
}

func (h *FeeHandler) GetClassFee(c *gin.Context) {
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

	structure, err := h.feeService.GetByClass(c.Request.Context(), class)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, structure)
}
