package response

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"

	"anoa.com/schoolmanagement/pkg/apperror"
	"anoa.com/schoolmanagement/pkg/token"
	"github.com/gin-gonic/gin"
)

// ClaimsKey is the gin context key the auth middleware stores verified claims under.
const ClaimsKey = "claims"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// GetClaims retrieves the authenticated caller's claims from the context
func GetClaims(c *gin.Context) (*token.Claims, error) {
	value, exists := c.Get(ClaimsKey)
	if !exists {
		return nil, apperror.ErrUnauthorized
	}

	claims, ok := value.(*token.Claims)
	if !ok || claims == nil {
		return nil, apperror.ErrUnauthorized
	}

	return claims, nil
}

// Message writes a {"message": ...} body with the given status.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	body := ErrorBody{Message: messageFor(err, code)}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.RetryAfter > 0 {
		c.Header("Retry-After", strconv.Itoa(int(math.Ceil(appErr.RetryAfter.Seconds()))))
	}

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error] %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		body.Message = "Server error"
		body.Error = err.Error()
	}

	c.AbortWithStatusJSON(code, body)
}

func messageFor(err error, code int) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	switch {
	case errors.Is(err, apperror.ErrInvalidCredentials):
		return "Invalid credentials"
	case errors.Is(err, apperror.ErrUnauthorized):
		return "Access token required"
	case errors.Is(err, apperror.ErrForbidden):
		return "Access denied"
	case errors.Is(err, apperror.ErrNotFound):
		return "Not found"
	case errors.Is(err, apperror.ErrDuplicate):
		return "Record already exists"
	case errors.Is(err, apperror.ErrRateLimitExceeded):
		return "Too many attempts, try again later"
	}

	if code == http.StatusBadRequest {
		return err.Error()
	}
	return http.StatusText(code)
}
