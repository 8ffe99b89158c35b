// Package response renders the API envelope. Every request answers
// HTTP 200 with {code, message, data}; on failure the body code
// carries the status the error maps to (400 invalid, 404 missing, 502
// collaborator, 500 persistence or unknown), so browser clients parse
// one shape everywhere.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

type statusError struct {
	status uint32
	msg    string
}

func (e *statusError) Error() string { return e.msg }

func (e *statusError) Code() uint32 { return e.status }

func Success(c *gin.Context, data interface{}) {
	proxyutil.SuccessJson(c, data)
}

func Error(c *gin.Context, status int, message string) {
	proxyutil.FailJson(c, http.StatusOK, &statusError{status: uint32(status), msg: message})
}
