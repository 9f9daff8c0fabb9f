package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rp-market/internal/domain"
	"rp-market/internal/service"
	"rp-market/internal/transport/http/ez"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler { return &OrderHandler{svc: svc} }

type orderIn struct {
	ProductID   string `json:"productId"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Note        string `json:"note"`
}

type countOut struct {
	Count int64 `json:"count"`
}

func orderNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ez.NotFound("order not found")
	}
	return err
}

func (h *OrderHandler) Mount(r Routes) {
	ez.RegisterAction(ez.New(r.Public), ez.Action[orderIn, *domain.Order]{
		Method: http.MethodPost,
		Path:   "/orders",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *orderIn) (*domain.Order, error) {
			o, err := h.svc.Create(c.Request.Context(), service.OrderInput{
				ProductID:   in.ProductID,
				FullName:    in.FullName,
				PhoneNumber: in.PhoneNumber,
				Note:        in.Note,
			})
			if errors.Is(err, domain.ErrNotFound) {
				return nil, ez.NotFound("product not found")
			}
			return o, err
		},
	})

	admin := ez.New(r.Admin)

	ez.RegisterAction(admin, ez.Action[struct{}, []domain.Order]{
		Method: http.MethodGet,
		Path:   "/orders",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Order, error) {
			return h.svc.List(c.Request.Context())
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, countOut]{
		Method: http.MethodGet,
		Path:   "/orders/unread-count",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (countOut, error) {
			n, err := h.svc.UnreadCount(c.Request.Context())
			return countOut{Count: n}, err
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, *domain.Order]{
		Method: http.MethodPatch,
		Path:   "/orders/:id/mark-as-read",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Order, error) {
			o, err := h.svc.MarkRead(c.Request.Context(), c.Param("id"))
			return o, orderNotFound(err)
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, idOut]{
		Method: http.MethodDelete,
		Path:   "/orders/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (idOut, error) {
			id := c.Param("id")
			return idOut{ID: id}, orderNotFound(h.svc.Delete(c.Request.Context(), id))
		},
	})
}
