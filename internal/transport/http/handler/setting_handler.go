package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rp-market/internal/domain"
	"rp-market/internal/service"
	"rp-market/internal/transport/http/ez"
)

type SettingHandler struct {
	svc *service.SettingService
}

func NewSettingHandler(svc *service.SettingService) *SettingHandler { return &SettingHandler{svc: svc} }

func (h *SettingHandler) Mount(r Routes) {
	ez.RegisterAction(ez.New(r.Public), ez.Action[struct{}, *domain.Setting]{
		Method: http.MethodGet,
		Path:   "/settings",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Setting, error) {
			return h.svc.Get(c.Request.Context())
		},
	})

	ez.RegisterAction(ez.New(r.Admin), ez.Action[struct{}, *domain.Setting]{
		Method: http.MethodPatch,
		Path:   "/settings/toggle-order-button",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Setting, error) {
			return h.svc.ToggleOrderButton(c.Request.Context())
		},
	})
}
