package response

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ignite/tuition-service/internal/service"
)

// Classification is the outcome of mapping a service failure to the wire.
type Classification struct {
	HTTPStatus int
	Code       ErrCode
	Data       interface{}
}

// Classify maps any error returned by the tuition service to its envelope
// code and transport status. Errors that are not *service.Error are internal.
func Classify(err error) Classification {
	e := service.AsError(err)

	switch e.Kind {
	case service.KindValidation:
		return Classification{HTTPStatus: http.StatusBadRequest, Code: ErrMissingRequiredFields}
	case service.KindNotFound:
		return Classification{HTTPStatus: http.StatusBadRequest, Code: ErrTuitionNotFound}
	case service.KindAlreadyExists:
		return Classification{HTTPStatus: http.StatusBadRequest, Code: ErrTuitionAlreadyExists}
	case service.KindConflict:
		code := ErrStudentNotEnrolledInTuition
		if e.Reason == service.ReasonAlreadyEnrolled {
			code = ErrStudentAlreadyEnrolledTuition
		}
		return Classification{HTTPStatus: http.StatusBadRequest, Code: code}
	case service.KindUpstream:
		code := ErrStudentInternal
		if e.Service == service.UpstreamPayment {
			code = ErrPaymentInternal
		}
		return Classification{HTTPStatus: http.StatusInternalServerError, Code: code, Data: upstreamBody(e.Body)}
	default:
		return Classification{HTTPStatus: http.StatusInternalServerError, Code: ErrInternal}
	}
}

// upstreamBody echoes an upstream response: JSON bodies are embedded as JSON
// with the same values, anything else as a string holding the exact bytes.
// Insignificant whitespace inside a JSON body is not preserved.
func upstreamBody(body []byte) interface{} {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}
	return string(body)
}

// Error classifies err and sends the matching error envelope. HTML characters
// are not escaped so an echoed upstream body keeps its text.
func Error(c *gin.Context, err error) Classification {
	cl := Classify(err)
	c.PureJSON(cl.HTTPStatus, NewError(cl.Code, cl.Data))
	return cl
}
