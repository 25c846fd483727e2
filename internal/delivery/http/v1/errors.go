package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	msgInternalServerError = "Internal server error"
	msgInvalidRequestBody  = "Invalid request body"
	msgNoToken             = "Access denied, no token provided"
	msgInvalidToken        = "Invalid token"
	msgUserAlreadyExists   = "User already exists"
	msgInvalidCredentials  = "Invalid email or password"
	msgTaskNotFound        = "List item not found"
	msgTaskTitleTaken      = "List item with this title already exists"
)

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func newAPIError(code int, message string) apiError {
	return apiError{
		Code:    code,
		Message: message,
	}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

// fieldError is a single entry of an itemized validation response.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func abortWithFieldErrors(c *gin.Context, errs []fieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"errors": errs})
}

func newInternalServerError() apiError {
	return newAPIError(http.StatusInternalServerError, msgInternalServerError)
}

func newBadRequestError(message string) apiError {
	return newAPIError(http.StatusBadRequest, message)
}

func newUnauthorizedError(message string) apiError {
	return newAPIError(http.StatusUnauthorized, message)
}

func newNotFoundError(message string) apiError {
	return newAPIError(http.StatusNotFound, message)
}
