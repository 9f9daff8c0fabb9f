package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "rp-market/internal/transport/http/response"
)

// MaxBodyBytes caps request bodies. Binding a larger body fails with a
// *http.MaxBytesError, which the action layer reports as a 400.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > n {
			resp.Abort(c, http.StatusRequestEntityTooLarge, "")
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
	}
}
