package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stable machine-usable error categories. Clients branch on Code, never on
// the human-readable Error text.
const (
	CodeAuthInvalid      = "AUTH_INVALID"
	CodeNotFound         = "NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeStoreFailure     = "STORE_FAILURE"
	CodeUploadFailed     = "UPLOAD_FAILED"
)

type Response struct {
	Status  int         `json:"-"`                 // HTTP status code
	Message string      `json:"message,omitempty"` // Optional message
	Error   string      `json:"error,omitempty"`   // Error message
	Code    string      `json:"code,omitempty"`    // Machine-usable error category
	Data    interface{} `json:"data,omitempty"`    // Response data
}

// Success responses
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &Response{
		Status: http.StatusOK,
		Data:   data,
	})
}

func SuccessMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, &Response{
		Status:  http.StatusOK,
		Message: message,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, &Response{
		Status: http.StatusCreated,
		Data:   data,
	})
}

// Error responses
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, &Response{
		Status: http.StatusUnauthorized,
		Error:  message,
		Code:   CodeAuthInvalid,
	})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, &Response{
		Status: http.StatusNotFound,
		Error:  message,
		Code:   CodeNotFound,
	})
}

func BadRequest(c *gin.Context, code string, message string) {
	c.JSON(http.StatusBadRequest, &Response{
		Status: http.StatusBadRequest,
		Error:  message,
		Code:   code,
	})
}

func InternalError(c *gin.Context, code string, message string) {
	c.JSON(http.StatusInternalServerError, &Response{
		Status: http.StatusInternalServerError,
		Error:  message,
		Code:   code,
	})
}
