package handler

import (
	"net/http"

	"anoa.com/schoolmanagement/internal/modules/auth/dto"
	auth "anoa.com/schoolmanagement/internal/modules/auth/service"
	"anoa.com/schoolmanagement/pkg/response"
	"anoa.com/schoolmanagement/pkg/validator"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) AdminSignUp(c *gin.Context) {
	var input dto.AdminSignUpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Message(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	res, err := h.authService.AdminSignUp(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AuthHandler) AdminSignIn(c *gin.Context) {
	var input dto.AdminSignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Message(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	res, err := h.authService.AdminSignIn(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *AuthHandler) StudentSignIn(c *gin.Context) {
	var input dto.StudentSignInInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Message(c, http.StatusBadRequest, validator.FormatValidationError(err))
		return
	}

	res, err := h.authService.StudentSignIn(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
