package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"rp-market/internal/domain"
	"rp-market/pkg/utils"
)

// OrderNotifier is told about every order whose product resolved. It must not block.
type OrderNotifier interface {
	NotifyOrder(o domain.Order, p domain.Product)
}

type OrderInput struct {
	ProductID   string
	FullName    string
	PhoneNumber string
	Note        string
}

type OrderService struct {
	orders   domain.OrderRepository
	products domain.ProductRepository
	notifier OrderNotifier
	log      *zap.Logger
}

func NewOrderService(orders domain.OrderRepository, products domain.ProductRepository, n OrderNotifier, log *zap.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, notifier: n, log: log}
}

// Create persists the order before resolving its product. When the product is
// gone the stored order is returned together with an ErrNotFound.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*domain.Order, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.FullName = strings.TrimSpace(in.FullName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	switch {
	case in.ProductID == "":
		return nil, invalid("productId is required")
	case in.FullName == "":
		return nil, invalid("fullName is required")
	case in.PhoneNumber == "":
		return nil, invalid("phoneNumber is required")
	}

	o := &domain.Order{
		ID:          utils.NewID(),
		ProductID:   in.ProductID,
		FullName:    in.FullName,
		PhoneNumber: in.PhoneNumber,
		Note:        strings.TrimSpace(in.Note),
	}
	if err := s.orders.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	p, err := s.products.FindByID(ctx, o.ProductID)
	if err != nil {
		s.log.Warn("order product lookup failed", zap.String("order_id", o.ID), zap.Error(err))
		return o, nil
	}
	if p == nil {
		s.log.Warn("order for unknown product", zap.String("order_id", o.ID), zap.String("product_id", o.ProductID))
		return o, fmt.Errorf("product %s: %w", o.ProductID, domain.ErrNotFound)
	}
	if s.notifier != nil {
		s.notifier.NotifyOrder(*o, *p)
	}
	return o, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.ListWithProducts(ctx)
}

func (s *OrderService) UnreadCount(ctx context.Context) (int64, error) {
	return s.orders.CountUnread(ctx)
}

func (s *OrderService) MarkRead(ctx context.Context, id string) (*domain.Order, error) {
	return s.orders.MarkRead(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}
