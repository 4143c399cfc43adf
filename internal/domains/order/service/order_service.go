package service

import (
	"context"
	"fmt"
	"time"

	cart "storefront-backend/internal/domains/cart/model"
	identity "storefront-backend/internal/domains/identity/model"
	"storefront-backend/internal/domains/order/model"
	"storefront-backend/internal/domains/order/repository"
	pricing "storefront-backend/internal/domains/pricing/model"
	"storefront-backend/pkg/logger"
)

type orderService struct {
	repo     repository.Repository
	enqueuer ConfirmationEnqueuer
	location *time.Location
	now      func() time.Time
}

// NewOrderService creates the service. A nil enqueuer skips confirmations;
// a nil location means UTC.
func NewOrderService(repo repository.Repository, enqueuer ConfirmationEnqueuer, location *time.Location) OrderService {
	if location == nil {
		location = time.UTC
	}
	return &orderService{
		repo:     repo,
		enqueuer: enqueuer,
		location: location,
		now:      time.Now,
	}
}

func (s *orderService) Checkout(ctx context.Context, in CheckoutInput, cartStore CartClearer) (*model.Order, error) {
	if in.Customer == nil {
		return nil, identity.ErrUnauthenticated
	}
	if len(in.Lines) == 0 {
		return nil, model.ErrCartEmpty
	}

	req := in.Request
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	placedAt := s.now().In(s.location)
	order := &model.Order{
		ID:             placedAt.UnixMilli(),
		Date:           placedAt.Format(model.DateLayout),
		PlacedAt:       placedAt,
		Customer:       *in.Customer,
		Items:          cart.CloneLines(in.Lines),
		SubTotal:       in.Pricing.SubTotal,
		DiscountAmount: in.Pricing.DiscountAmount,
		Total:          in.Pricing.FinalTotal,
		Shipping:       req.Shipping(),
		PaymentMethod:  req.PaymentMethod,
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	cartStore.Clear(ctx)

	logger.Info("order placed", map[string]interface{}{
		"order_id": order.ID,
		"user_id":  order.Customer.ID,
		"units":    order.Units(),
		"total":    order.Total.String(),
	})

	s.enqueueConfirmation(ctx, order)
	return order, nil
}

// enqueueConfirmation never fails the checkout
func (s *orderService) enqueueConfirmation(ctx context.Context, order *model.Order) {
	if s.enqueuer == nil {
		return
	}

	payload := model.OrderConfirmationPayload{
		OrderID:       order.ID,
		Email:         order.Customer.Email,
		CustomerName:  order.Customer.FullName(),
		Date:          order.Date,
		Units:         order.Units(),
		Total:         pricing.FormatCLP(order.Total),
		PaymentMethod: string(order.PaymentMethod),
		Address:       fmt.Sprintf("%s, %s, %s", order.Shipping.Address, order.Shipping.Commune, order.Shipping.Region),
	}
	if err := s.enqueuer.EnqueueOrderConfirmation(ctx, payload); err != nil {
		logger.Warn("order confirmation not enqueued", map[string]interface{}{
			"order_id": order.ID,
			"error":    err.Error(),
		})
	}
}

func (s *orderService) ListForCustomer(ctx context.Context, customer *identity.Identity) ([]model.Order, error) {
	if customer == nil {
		return nil, identity.ErrUnauthenticated
	}

	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	mine := make([]model.Order, 0)
	for _, o := range orders {
		if o.Customer.ID == customer.ID {
			mine = append(mine, o)
		}
	}
	return mine, nil
}

func (s *orderService) ListAll(ctx context.Context, viewer *identity.Identity) ([]model.Order, error) {
	if viewer == nil {
		return nil, identity.ErrUnauthenticated
	}
	if !viewer.CanSeeAllOrders() {
		return nil, identity.ErrForbidden
	}

	orders, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
