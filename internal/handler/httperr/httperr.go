package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the body of every error reply:
// {"error":{"message":...},"detail":...,"requestId":...}.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail    any    `json:"detail,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func NewResponse(c *gin.Context, status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail, RequestID: c.GetString("request_id")}
	resp.Error.Message = msg
	return resp
}

// AbortWithError keeps err on the gin context for logging and replies with msg.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := NewResponse(c, status, msg, detail)

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
