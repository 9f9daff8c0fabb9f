package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rp-market/internal/core/session"
	"rp-market/internal/domain"
	"rp-market/internal/service"
	"rp-market/internal/transport/http/ez"
	mdw "rp-market/internal/transport/http/middleware"
)

const loginFailedMsg = "invalid username or password"

type AuthHandler struct {
	svc      *service.AuthService
	cookies  CookieConfig
	sessions *session.Manager
	log      *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, cookies CookieConfig, sessions *session.Manager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, cookies: cookies, sessions: sessions, log: log}
}

func (h *AuthHandler) Priority() int { return 10 }

type credentialsIn struct {
	Username string `json:"username" binding:"required,min=4,max=64"`
	Password string `json:"password" binding:"required,max=72"`
}

// loginIn is checked in the handler so that missing fields fail like bad ones.
type loginIn struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (in *loginIn) blank() bool {
	return strings.TrimSpace(in.Username) == "" || in.Password == ""
}

type messageOut struct {
	Message string `json:"message"`
}

func (h *AuthHandler) Mount(r Routes) {
	throttled := ez.New(r.Throttled)

	ez.RegisterAction(throttled, ez.Action[credentialsIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/register",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *credentialsIn) (*domain.User, error) {
			u, err := h.svc.Register(c.Request.Context(), in.Username, in.Password)
			if errors.Is(err, domain.ErrDuplicate) {
				return nil, ez.BadRequest("username already taken")
			}
			return u, err
		},
	})

	ez.RegisterAction(throttled, ez.Action[loginIn, domain.Identity]{
		Method: http.MethodPost,
		Path:   "/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (domain.Identity, error) {
			if in.blank() {
				return domain.Identity{}, ez.LoginFailed(loginFailedMsg)
			}
			tok, id, exp, err := h.svc.Login(c.Request.Context(), in.Username, in.Password)
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
				return domain.Identity{}, ez.LoginFailed(loginFailedMsg)
			}
			if err != nil {
				return domain.Identity{}, ez.Internal("", err)
			}
			h.cookies.set(c, h.cookies.Name, tok, exp)
			if err := h.sessions.Begin(c.Writer, c.Request, id.ID); err != nil {
				h.log.Warn("session save failed", zap.Error(err))
			}
			return id, nil
		},
	})

	ez.RegisterAction(ez.New(r.Public), ez.Action[struct{}, messageOut]{
		Method: http.MethodPost,
		Path:   "/logout",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (messageOut, error) {
			if uid := h.sessions.UserID(c.Request); uid != "" {
				h.log.Info("session ended", zap.String("user_id", uid))
			}
			h.cookies.clear(c, h.cookies.Name)
			if err := h.sessions.End(c.Writer, c.Request); err != nil {
				h.log.Warn("session end failed", zap.Error(err))
			}
			return messageOut{Message: "logged out"}, nil
		},
	})

	ez.RegisterAction(ez.New(r.Authed), ez.Action[struct{}, domain.Identity]{
		Method: http.MethodGet,
		Path:   "/profile",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (domain.Identity, error) {
			u, err := h.svc.Profile(c.Request.Context(), c.GetString(mdw.KeyUserID))
			if errors.Is(err, domain.ErrNotFound) {
				return domain.Identity{}, ez.NotFound("user not found")
			}
			if err != nil {
				return domain.Identity{}, err
			}
			return u.Identity(), nil
		},
	})
}
