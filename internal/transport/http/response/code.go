package response

import "net/http"

// Default messages per status, used when a handler supplies none.
var statusMsg = map[int]string{
	http.StatusBadRequest:            "bad request",
	http.StatusUnauthorized:          "authentication required",
	http.StatusForbidden:             "admin rights required",
	http.StatusNotFound:              "not found",
	http.StatusRequestEntityTooLarge: "request body too large",
	http.StatusTooManyRequests:       "too many requests",
	http.StatusInternalServerError:   "internal error",
	http.StatusServiceUnavailable:    "server busy",
	http.StatusGatewayTimeout:        "timeout",
}

func Msg(status int) string {
	if m, ok := statusMsg[status]; ok {
		return m
	}
	return http.StatusText(status)
}
