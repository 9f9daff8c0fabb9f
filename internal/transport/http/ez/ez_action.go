// Package ez registers typed handlers: bind I, run, render O or map the error.
package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"rp-market/internal/domain"
	resp "rp-market/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

type Binder string

const (
	BindJSON  Binder = "json"
	BindQuery Binder = "query"
	BindNone  Binder = "none" // handler reads c.Param itself
)

// AErr carries an HTTP status. AsMessage renders {message} instead of {error}.
type AErr struct {
	Code      int
	Msg       string
	Err       error
	AsMessage bool
}

func (e *AErr) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "action error"
}

func (e *AErr) Unwrap() error { return e.Err }

func BadRequest(msg string) error   { return &AErr{Code: http.StatusBadRequest, Msg: msg} }
func Unauthorized(msg string) error { return &AErr{Code: http.StatusUnauthorized, Msg: msg} }
func NotFound(msg string) error     { return &AErr{Code: http.StatusNotFound, Msg: msg} }

// Internal forces a 500 whatever err wraps. The message stays hidden when msg is empty.
func Internal(msg string, err error) error {
	return &AErr{Code: http.StatusInternalServerError, Msg: msg, Err: err}
}

// LoginFailed is a 400 rendered as {message}.
func LoginFailed(msg string) error {
	return &AErr{Code: http.StatusBadRequest, Msg: msg, AsMessage: true}
}

// Status maps domain errors; anything unknown is a 500.
func Status(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInactive):
		return http.StatusUnauthorized
	}
	return http.StatusInternalServerError
}

// Action is one endpoint: I is bound from the request, O is rendered as JSON.
type Action[I any, O any] struct {
	Method  string // GET, POST, PUT, PATCH, DELETE
	Path    string
	Binder  Binder
	Handler func(c *gin.Context, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		}
		if bindErr != nil {
			_ = c.Error(bindErr)
			c.JSON(http.StatusBadRequest, resp.Error(http.StatusBadRequest, bindErr.Error()))
			return
		}

		out, err := a.Handler(c, &in)
		if err != nil {
			Fail(c, err)
			return
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(http.StatusOK, out)
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodPatch:
		e.g.PATCH(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default:
		e.g.POST(a.Path, h)
	}
}

// Fail renders err. Internal causes are attached to the context for the access
// log and never reach the client.
func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	var ae *AErr
	if errors.As(err, &ae) {
		if ae.AsMessage {
			c.JSON(ae.Code, resp.Message{Message: ae.Error()})
			return
		}
		if ae.Code >= http.StatusInternalServerError {
			c.JSON(ae.Code, resp.Error(ae.Code, ae.Msg))
			return
		}
		c.JSON(ae.Code, resp.Error(ae.Code, ae.Error()))
		return
	}
	status := Status(err)
	msg := ""
	if status < http.StatusInternalServerError {
		msg = err.Error()
	}
	c.JSON(status, resp.Error(status, msg))
}
