package response

import "github.com/gin-gonic/gin"

// Err is the body of every failed request.
type Err struct {
	Error string `json:"error"`
}

// Message is the body of a failed login.
type Message struct {
	Message string `json:"message"`
}

func Error(status int, customMsg string) Err {
	if customMsg == "" {
		customMsg = Msg(status)
	}
	return Err{Error: customMsg}
}

// Abort stops the chain and writes an {error} body.
func Abort(c *gin.Context, status int, customMsg string) {
	c.AbortWithStatusJSON(status, Error(status, customMsg))
}
