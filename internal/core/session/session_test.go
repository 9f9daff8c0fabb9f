package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *Manager {
	return New(Options{Name: "rp_session", Key: []byte("0123456789abcdef0123456789abcdef"), MaxAge: 3600})
}

func TestBeginEnd(t *testing.T) {
	m := newManager()

	rec := httptest.NewRecorder()
	require.NoError(t, m.Begin(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "u1"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/profile", nil)
	req.AddCookie(cookies[0])
	assert.Equal(t, "u1", m.UserID(req))

	rec = httptest.NewRecorder()
	require.NoError(t, m.End(rec, req))
	out := rec.Result().Cookies()
	require.Len(t, out, 1)
	assert.Equal(t, "rp_session", out[0].Name)
	assert.True(t, out[0].MaxAge < 0)
}

func TestUserID_NoCookie(t *testing.T) {
	assert.Empty(t, newManager().UserID(httptest.NewRequest(http.MethodGet, "/", nil)))
}
