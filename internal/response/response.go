package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Status values of the envelope.
const (
	StatusSuccess = "SUCCESS"
	StatusError   = "ERROR"
)

// DisplayMessage is the end-user text attached to every error envelope.
const DisplayMessage = "Oops!! Something went wrong. Please try again."

// Response is the envelope every endpoint returns.
type Response struct {
	Status         string      `json:"status"`
	Code           int         `json:"code"`
	Message        string      `json:"message"`
	Data           interface{} `json:"data"`
	DisplayMessage string      `json:"displayMessage,omitempty"`
}

// ────────────────────────────────────────────────────────────────────────────
// Helper builders
// ────────────────────────────────────────────────────────────────────────────

// NewSuccess builds a success envelope.
func NewSuccess(code SuccessCode, data interface{}) Response {
	return Response{
		Status:  StatusSuccess,
		Code:    int(code),
		Message: code.Message(),
		Data:    data,
	}
}

// NewError builds an error envelope. data is nil unless an upstream body is echoed.
func NewError(code ErrCode, data interface{}) Response {
	return Response{
		Status:         StatusError,
		Code:           int(code),
		Message:        code.Message(),
		Data:           data,
		DisplayMessage: DisplayMessage,
	}
}

// Success sends a 200 success envelope.
func Success(c *gin.Context, code SuccessCode, data interface{}) {
	c.JSON(http.StatusOK, NewSuccess(code, data))
}

// Fail sends an error envelope with the given transport status.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, NewError(code, nil))
}

// AbortFail aborts the middleware chain and sends an error envelope.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, NewError(code, nil))
}
