package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"rp-market/internal/domain"
	"rp-market/internal/service"
	"rp-market/internal/transport/http/ez"
)

type BackDoorHandler struct {
	svc     *service.BackDoorService
	cookies CookieConfig
	ttl     time.Duration
}

func NewBackDoorHandler(svc *service.BackDoorService, cookies CookieConfig, ttl time.Duration) *BackDoorHandler {
	return &BackDoorHandler{svc: svc, cookies: cookies, ttl: ttl}
}

type backdoorCreateIn struct {
	Username string `json:"username" binding:"required,max=64"`
	Note     string `json:"note"`
}

type revealedAccount struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"`
	Note      string    `json:"note,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type backdoorCreateOut struct {
	Account revealedAccount `json:"account"`
}

type newPasswordOut struct {
	NewPassword string `json:"newPassword"`
}

type backdoorLoginOut struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func accountNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ez.NotFound("account not found")
	}
	return err
}

func (h *BackDoorHandler) Mount(r Routes) {
	admin := ez.New(r.Admin)

	ez.RegisterAction(admin, ez.Action[backdoorCreateIn, backdoorCreateOut]{
		Method: http.MethodPost,
		Path:   "/backdoor",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *backdoorCreateIn) (backdoorCreateOut, error) {
			a, pw, err := h.svc.Create(c.Request.Context(), in.Username, in.Note)
			if errors.Is(err, domain.ErrDuplicate) {
				return backdoorCreateOut{}, ez.BadRequest("username already taken")
			}
			if err != nil {
				return backdoorCreateOut{}, err
			}
			return backdoorCreateOut{Account: revealedAccount{
				ID: a.ID, Username: a.Username, Password: pw, Note: a.Note,
				IsActive: a.IsActive, CreatedAt: a.CreatedAt,
			}}, nil
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, []domain.BackDoorAccount]{
		Method: http.MethodGet,
		Path:   "/backdoor/accounts",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.BackDoorAccount, error) {
			return h.svc.List(c.Request.Context())
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, *domain.BackDoorAccount]{
		Method: http.MethodPatch,
		Path:   "/backdoor/:id/toggle-status",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.BackDoorAccount, error) {
			a, err := h.svc.ToggleActive(c.Request.Context(), c.Param("id"))
			return a, accountNotFound(err)
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, idOut]{
		Method: http.MethodDelete,
		Path:   "/backdoor/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			id := c.Param("id")
			return idOut{ID: id}, accountNotFound(h.svc.Delete(c.Request.Context(), id))
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, newPasswordOut]{
		Method: http.MethodPost,
		Path:   "/backdoor/:id/reset-password",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (newPasswordOut, error) {
			pw, err := h.svc.ResetPassword(c.Request.Context(), c.Param("id"))
			return newPasswordOut{NewPassword: pw}, accountNotFound(err)
		},
	})

	ez.RegisterAction(ez.New(r.Throttled), ez.Action[loginIn, backdoorLoginOut]{
		Method: http.MethodPost,
		Path:   "/backdoor/login",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *loginIn) (backdoorLoginOut, error) {
			if in.blank() {
				return backdoorLoginOut{}, ez.Unauthorized("invalid credentials")
			}
			tok, a, err := h.svc.Login(c.Request.Context(), in.Username, in.Password)
			if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrInactive) {
				return backdoorLoginOut{}, ez.Unauthorized("invalid credentials")
			}
			if err != nil {
				return backdoorLoginOut{}, ez.Internal("", err)
			}
			h.cookies.set(c, h.cookies.BackdoorName, tok, time.Now().Add(h.ttl))
			return backdoorLoginOut{ID: a.ID, Username: a.Username, LastLogin: a.LastLogin}, nil
		},
	})
}
