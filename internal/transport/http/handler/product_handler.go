package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rp-market/internal/domain"
	"rp-market/internal/service"
	"rp-market/internal/transport/http/ez"
	mdw "rp-market/internal/transport/http/middleware"
)

type ProductHandler struct {
	svc *service.CatalogService
}

func NewProductHandler(svc *service.CatalogService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type listQ struct {
	ShowAll string `form:"showAll"`
}

type searchQ struct {
	Q    string `form:"q"`
	Full string `form:"full"`
}

func productNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ez.NotFound("product not found")
	}
	return err
}

func (h *ProductHandler) Mount(r Routes) {
	pub := ez.New(r.Public)

	ez.RegisterAction(pub, ez.Action[listQ, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/products",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *listQ) ([]domain.Product, error) {
			// hidden and sold-out products are only listed for admins
			cl := mdw.ClaimsFrom(c)
			showAll := truthy(in.ShowAll) && cl != nil && cl.IsAdmin
			return h.svc.List(c.Request.Context(), showAll)
		},
	})

	ez.RegisterAction(pub, ez.Action[struct{}, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/products/popular",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Product, error) {
			return h.svc.Popular(c.Request.Context())
		},
	})

	ez.RegisterAction(pub, ez.Action[searchQ, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/products/search",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *searchQ) ([]domain.Product, error) {
			return h.svc.Search(c.Request.Context(), in.Q, truthy(in.Full))
		},
	})

	ez.RegisterAction(pub, ez.Action[struct{}, *domain.Product]{
		Method: http.MethodGet,
		Path:   "/products/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Product, error) {
			p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
			return p, productNotFound(err)
		},
	})

	ez.RegisterAction(pub, ez.Action[struct{}, *domain.Product]{
		Method: http.MethodPost,
		Path:   "/products/:id/view",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Product, error) {
			p, err := h.svc.RecordView(c.Request.Context(), c.Param("id"))
			return p, productNotFound(err)
		},
	})

	admin := ez.New(r.Admin)

	ez.RegisterAction(admin, ez.Action[productDTO, *domain.Product]{
		Method: http.MethodPost,
		Path:   "/products",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *productDTO) (*domain.Product, error) {
			pi, err := in.input()
			if err != nil {
				return nil, err
			}
			return h.svc.Create(c.Request.Context(), pi)
		},
	})

	ez.RegisterAction(admin, ez.Action[productDTO, *domain.Product]{
		Method: http.MethodPut,
		Path:   "/products/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *productDTO) (*domain.Product, error) {
			pi, err := in.input()
			if err != nil {
				return nil, err
			}
			p, err := h.svc.Update(c.Request.Context(), c.Param("id"), pi)
			return p, productNotFound(err)
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, *domain.Product]{
		Method: http.MethodPatch,
		Path:   "/products/:id/toggle-visibility",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Product, error) {
			p, err := h.svc.ToggleHidden(c.Request.Context(), c.Param("id"))
			return p, productNotFound(err)
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, *domain.Product]{
		Method: http.MethodPatch,
		Path:   "/products/:id/toggle-order-button",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Product, error) {
			p, err := h.svc.ToggleOrderButton(c.Request.Context(), c.Param("id"))
			return p, productNotFound(err)
		},
	})
}
