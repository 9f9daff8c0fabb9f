package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"rp-market/internal/domain"
	"rp-market/pkg/utils"
)

const (
	SearchPreviewLimit = 5
	PopularLimit       = 5
)

// ProductInput carries the writable product fields. A nil field was not sent.
type ProductInput struct {
	Name               *string
	Price              *float64
	DiscountPercentage *float64
	Stock              *int
	Description        *string
	ImageURL           *string
	Type               *domain.ProductType
	Images             *[]domain.ProductImage
}

type CatalogService struct {
	products domain.ProductRepository
	log      *zap.Logger
}

func NewCatalogService(products domain.ProductRepository, log *zap.Logger) *CatalogService {
	return &CatalogService{products: products, log: log}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrValidation}, args...)...)
}

func blank(s *string) bool { return s == nil || strings.TrimSpace(*s) == "" }

func (s *CatalogService) Create(ctx context.Context, in ProductInput) (*domain.Product, error) {
	switch {
	case blank(in.Name):
		return nil, invalid("name is required")
	case in.Price == nil:
		return nil, invalid("price is required")
	case in.Stock == nil:
		return nil, invalid("stock is required")
	case blank(in.Description):
		return nil, invalid("description is required")
	case blank(in.ImageURL):
		return nil, invalid("imageUrl is required")
	}
	if *in.Stock < 0 {
		return nil, invalid("stock must not be negative")
	}
	var discount float64
	if in.DiscountPercentage != nil {
		discount = *in.DiscountPercentage
	}
	price, original, err := ApplyDiscount(*in.Price, discount)
	if err != nil {
		return nil, err
	}
	typ := domain.ProductNormal
	if in.Type != nil && *in.Type != "" {
		typ = *in.Type
	}
	if !typ.Valid() {
		return nil, invalid("unknown product type %q", typ)
	}
	var images []domain.ProductImage
	if in.Images != nil {
		images = *in.Images
	}

	p := &domain.Product{
		ID:                 utils.NewID(),
		Name:               strings.TrimSpace(*in.Name),
		Price:              price,
		OriginalPrice:      original,
		DiscountPercentage: discount,
		Stock:              *in.Stock,
		Description:        *in.Description,
		ImageURL:           *in.ImageURL,
		Type:               typ,
		Images:             galleryFor(typ, images),
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	s.log.Info("product created", zap.String("product_id", p.ID), zap.Float64("price", p.Price))
	return p, nil
}

// galleryFor keeps images only for cars, sorted by their order field.
func galleryFor(t domain.ProductType, images []domain.ProductImage) []domain.ProductImage {
	if t != domain.ProductCar || len(images) == 0 {
		return []domain.ProductImage{}
	}
	out := make([]domain.ProductImage, 0, len(images))
	for _, im := range images {
		if strings.TrimSpace(im.URL) != "" {
			out = append(out, im)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Update applies the sent fields. A positive discount re-derives the price
// from the sent price, which therefore becomes mandatory.
func (s *CatalogService) Update(ctx context.Context, id string, in ProductInput) (*domain.Product, error) {
	cur, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Name != nil {
		if blank(in.Name) {
			return nil, invalid("name must not be empty")
		}
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.ImageURL != nil {
		fields["image_url"] = *in.ImageURL
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, invalid("stock must not be negative")
		}
		fields["stock"] = *in.Stock
	}

	switch {
	case in.DiscountPercentage != nil && *in.DiscountPercentage > 0:
		if in.Price == nil {
			return nil, invalid("price is required when a discount is set")
		}
		price, original, err := ApplyDiscount(*in.Price, *in.DiscountPercentage)
		if err != nil {
			return nil, err
		}
		fields["price"] = price
		fields["original_price"] = *original
		fields["discount_percentage"] = *in.DiscountPercentage
	default:
		if in.DiscountPercentage != nil {
			if _, _, err := ApplyDiscount(0, *in.DiscountPercentage); err != nil {
				return nil, err
			}
			fields["discount_percentage"] = *in.DiscountPercentage
		}
		if in.Price != nil {
			if *in.Price < 0 {
				return nil, invalid("price must not be negative")
			}
			fields["price"] = *in.Price
		}
	}

	typ := cur.Type
	if in.Type != nil && *in.Type != "" {
		if !in.Type.Valid() {
			return nil, invalid("unknown product type %q", *in.Type)
		}
		typ = *in.Type
		fields["type"] = typ
	}
	if in.Images != nil || typ != cur.Type {
		images := []domain.ProductImage(cur.Images)
		if in.Images != nil {
			images = *in.Images
		}
		fields["images"] = datatypes.JSONSlice[domain.ProductImage](galleryFor(typ, images))
	}

	p, err := s.products.Update(ctx, id, fields)
	if err != nil {
		return nil, fmt.Errorf("update product %s: %w", id, err)
	}
	return p, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// List returns visible products, or all of them when showAll is set.
func (s *CatalogService) List(ctx context.Context, showAll bool) ([]domain.Product, error) {
	return s.products.List(ctx, showAll)
}

// Search matches visible products by name. An empty query matches nothing.
func (s *CatalogService) Search(ctx context.Context, q string, full bool) ([]domain.Product, error) {
	if strings.TrimSpace(q) == "" {
		return []domain.Product{}, nil
	}
	limit := SearchPreviewLimit
	if full {
		limit = 0
	}
	return s.products.SearchVisible(ctx, q, limit)
}

func (s *CatalogService) Popular(ctx context.Context) ([]domain.Product, error) {
	return s.products.Popular(ctx, PopularLimit)
}

func (s *CatalogService) RecordView(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.IncrementViews(ctx, id)
}

func (s *CatalogService) ToggleHidden(ctx context.Context, id string) (*domain.Product, error) {
	p, err := s.products.ToggleHidden(ctx, id)
	if err != nil {
		return nil, err
	}
	s.log.Info("product visibility toggled", zap.String("product_id", id), zap.Bool("hidden", p.IsHidden))
	return p, nil
}

func (s *CatalogService) ToggleOrderButton(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.ToggleOrderButtonHidden(ctx, id)
}
