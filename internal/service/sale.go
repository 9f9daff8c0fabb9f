package service

import (
	"context"
	"fmt"
	"strings"

	"rp-market/internal/domain"
	"rp-market/pkg/utils"
)

type SaleInput struct {
	Name        string
	Description string
	Values      []float64
	ProfitRate  float64
	TaxRate     float64
}

type SaleService struct {
	sales domain.SaleRepository
}

func NewSaleService(sales domain.SaleRepository) *SaleService { return &SaleService{sales: sales} }

// Create runs the calculator over the inputs and stores the result.
func (s *SaleService) Create(ctx context.Context, in SaleInput) (*domain.Sale, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, invalid("name is required")
	}
	if len(in.Values) == 0 {
		return nil, invalid("values must not be empty")
	}
	m := Calculate(in.Values, in.ProfitRate, in.TaxRate)
	sale := &domain.Sale{
		ID:          utils.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Values:      in.Values,
		ProfitRate:  in.ProfitRate,
		TaxRate:     in.TaxRate,
		TotalCost:   m.TotalCost,
		ProfitPrice: m.ProfitPrice,
		Tax:         m.Tax,
		FinalPrice:  m.FinalPrice,
	}
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	return sale, nil
}

func (s *SaleService) List(ctx context.Context) ([]domain.Sale, error) {
	return s.sales.List(ctx)
}
