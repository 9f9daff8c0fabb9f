// Package session keeps a server-side marker of who logged in. Authorization
// never reads it; it exists so logout can invalidate it alongside the token.
package session

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const keyUserID = "uid"

type Manager struct {
	store sessions.Store
	name  string
}

type Options struct {
	Name     string
	Key      []byte
	MaxAge   int // seconds
	Secure   bool
	SameSite http.SameSite
	Domain   string
}

func New(o Options) *Manager {
	cs := sessions.NewCookieStore(o.Key)
	cs.Options = &sessions.Options{
		Path:     "/",
		Domain:   o.Domain,
		MaxAge:   o.MaxAge,
		Secure:   o.Secure,
		HttpOnly: true,
		SameSite: o.SameSite,
	}
	return &Manager{store: cs, name: o.Name}
}

// Begin records uid in a fresh session cookie.
func (m *Manager) Begin(w http.ResponseWriter, r *http.Request, uid string) error {
	s, err := m.store.Get(r, m.name)
	if err != nil && s == nil {
		return err
	}
	s.Values[keyUserID] = uid
	return s.Save(r, w)
}

// End expires the session cookie. Undecodable cookies are expired too.
func (m *Manager) End(w http.ResponseWriter, r *http.Request) error {
	s, _ := m.store.Get(r, m.name)
	if s == nil {
		s = sessions.NewSession(m.store, m.name)
	}
	s.Values = map[any]any{}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}

// UserID returns the uid stored by Begin, empty if none.
func (m *Manager) UserID(r *http.Request) string {
	s, err := m.store.Get(r, m.name)
	if err != nil {
		return ""
	}
	uid, _ := s.Values[keyUserID].(string)
	return uid
}
