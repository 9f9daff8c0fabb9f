package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieConfig describes the token cookies. They are readable by the client
// (not HttpOnly) since the storefront inspects them.
type CookieConfig struct {
	Name         string
	BackdoorName string
	Secure       bool
	SameSite     http.SameSite
	Domain       string
}

func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	}
	return http.SameSiteDefaultMode
}

func (cc CookieConfig) set(c *gin.Context, name, value string, until time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cc.Domain,
		Expires:  until,
		MaxAge:   int(time.Until(until).Seconds()),
		Secure:   cc.Secure,
		HttpOnly: false,
		SameSite: cc.SameSite,
	})
}

func (cc CookieConfig) clear(c *gin.Context, name string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   cc.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Secure:   cc.Secure,
		SameSite: cc.SameSite,
	})
}
