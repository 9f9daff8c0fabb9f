package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rp-market/internal/domain"
	"rp-market/internal/service"
	"rp-market/internal/transport/http/ez"
)

// Calculator defaults used when a sale omits its rates.
const (
	DefaultProfitRate = 25
	DefaultTaxRate    = 15
)

type SaleHandler struct {
	svc *service.SaleService
}

func NewSaleHandler(svc *service.SaleService) *SaleHandler { return &SaleHandler{svc: svc} }

// Derived totals sent by the client are ignored and recomputed.
type saleIn struct {
	Name        string      `json:"name" binding:"required"`
	Description string      `json:"description"`
	Values      []FlexFloat `json:"values" binding:"required,min=1"`
	ProfitRate  *FlexFloat  `json:"profitRate"`
	TaxRate     *FlexFloat  `json:"taxRate"`
}

func rateOr(f *FlexFloat, def float64) float64 {
	if f == nil {
		return def
	}
	return float64(*f)
}

func (h *SaleHandler) Mount(r Routes) {
	admin := ez.New(r.Admin)

	ez.RegisterAction(admin, ez.Action[saleIn, *domain.Sale]{
		Method: http.MethodPost,
		Path:   "/sales",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *saleIn) (*domain.Sale, error) {
			values := make([]float64, len(in.Values))
			for i, v := range in.Values {
				values[i] = float64(v)
			}
			return h.svc.Create(c.Request.Context(), service.SaleInput{
				Name:        in.Name,
				Description: in.Description,
				Values:      values,
				ProfitRate:  rateOr(in.ProfitRate, DefaultProfitRate),
				TaxRate:     rateOr(in.TaxRate, DefaultTaxRate),
			})
		},
	})

	ez.RegisterAction(admin, ez.Action[struct{}, []domain.Sale]{
		Method: http.MethodGet,
		Path:   "/sales",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Sale, error) {
			return h.svc.List(c.Request.Context())
		},
	})
}
