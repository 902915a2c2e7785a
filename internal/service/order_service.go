package service

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	notifier    Notifier
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. A nil notifier disables
// confirmation messages.
func NewOrderService(
	orderRepo repository.OrderRepository,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	notifier Notifier,
	logger zerolog.Logger,
) OrderService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &orderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder converts the principal's cart into a pending order.
func (s *orderService) PlaceOrder(ctx context.Context, principalID string, req model.PlaceOrderRequest) (*model.OrderConfirmation, error) {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return nil, failAs(err, model.ErrPlaceOrderFailed)
	}

	address := strings.TrimSpace(req.Address)
	contact := strings.TrimSpace(req.ContactNo)
	if address == "" {
		return nil, model.ErrAddressRequired
	}
	if contact == "" {
		return nil, model.ErrContactRequired
	}

	cart, err := s.cartRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to load cart")
		return nil, model.ErrPlaceOrderFailed
	}
	if cart == nil || len(cart.Items) == 0 {
		return nil, model.ErrEmptyCart
	}

	for _, item := range cart.Items {
		if item.Quantity > item.Product.Stock {
			s.logger.Warn().
				Str("product_id", item.ProductID.String()).
				Int("available", item.Product.Stock).
				Int("requested", item.Quantity).
				Msg("insufficient stock")
			return nil, &model.InsufficientStockError{
				ProductID:   item.ProductID.String(),
				ProductName: item.Product.Name,
				Available:   item.Product.Stock,
				Requested:   item.Quantity,
			}
		}
	}

	totals := CalculateTotals(cart.Items)
	order := &model.Order{
		UserID:     user.ID,
		TotalPrice: totals.Total,
		Location:   address,
		ContactNo:  contact,
		Status:     model.OrderStatusPending,
	}

	err = repository.WithTx(ctx, s.orderRepo, s.logger, func(tx pgx.Tx) error {
		if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
			return err
		}

		items := make([]model.OrderItem, len(cart.Items))
		for i, line := range cart.Items {
			items[i] = model.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Size:      line.SizeOrEmpty(),
			}
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
			return err
		}

		for _, line := range cart.Items {
			ok, err := s.productRepo.DecrementStock(ctx, tx, line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				available, err := s.productRepo.GetStock(ctx, tx, line.ProductID)
				if err != nil {
					return err
				}
				return &model.InsufficientStockError{
					ProductID:   line.ProductID.String(),
					ProductName: line.Product.Name,
					Available:   available,
					Requested:   line.Quantity,
				}
			}
		}

		return s.cartRepo.ClearItems(ctx, tx, cart.ID)
	})
	if err != nil {
		var stockErr *model.InsufficientStockError
		if errors.As(err, &stockErr) {
			s.logger.Warn().
				Str("product_id", stockErr.ProductID).
				Int("available", stockErr.Available).
				Int("requested", stockErr.Requested).
				Msg("stock changed during checkout")
			return nil, stockErr
		}
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to place order")
		return nil, model.ErrPlaceOrderFailed
	}

	if err := s.userRepo.UpdateDefaults(ctx, user.ID, address, contact); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID.String()).Msg("failed to save default address")
	}

	if user.Email != "" {
		s.notifier.NotifyOrderPlaced(ctx, model.OrderNotification{
			OrderID:      order.ID,
			Email:        user.Email,
			CustomerName: user.FullName,
			Total:        order.TotalPrice,
			Address:      address,
			ContactNo:    contact,
		})
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("item_count", len(cart.Items)).
		Str("total", order.TotalPrice.StringFixed(2)).
		Msg("order placed successfully")

	return &model.OrderConfirmation{OrderID: order.ID, OrderTotal: order.TotalPrice}, nil
}

// CancelOrder cancels a pending order and returns its quantities to stock.
func (s *orderService) CancelOrder(ctx context.Context, principalID string, orderID uuid.UUID) error {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return failAs(err, model.ErrCancelOrderFailed)
	}

	err = repository.WithTx(ctx, s.orderRepo, s.logger, func(tx pgx.Tx) error {
		order, items, err := s.orderRepo.LockForUpdate(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order == nil || order.UserID != user.ID || order.Status != model.OrderStatusPending {
			return model.ErrNotCancelable
		}

		for _, item := range items {
			if err := s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return s.orderRepo.UpdateStatus(ctx, tx, orderID, model.OrderStatusCanceled)
	})
	if err != nil {
		if errors.Is(err, model.ErrNotCancelable) {
			s.logger.Debug().Str("order_id", orderID.String()).Msg("order not cancelable")
			return err
		}
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to cancel order")
		return model.ErrCancelOrderFailed
	}

	s.logger.Info().Str("order_id", orderID.String()).Msg("order canceled")
	return nil
}

// MarkOrderDelivered completes a pending order.
func (s *orderService) MarkOrderDelivered(ctx context.Context, orderID uuid.UUID) error {
	ok, err := s.orderRepo.CompleteIfPending(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to complete order")
		return model.ErrUpdateOrderFailed
	}
	if ok {
		s.logger.Info().Str("order_id", orderID.String()).Msg("order delivered")
		return nil
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order")
		return model.ErrUpdateOrderFailed
	}

	switch {
	case order == nil:
		return model.ErrOrderNotFound
	case order.Status == model.OrderStatusCanceled:
		return model.ErrAlreadyCanceled
	default:
		return model.ErrAlreadyCompleted
	}
}

// GetOrder retrieves one of the principal's orders with its lines.
func (s *orderService) GetOrder(ctx context.Context, principalID string, orderID uuid.UUID) (*model.OrderDetails, error) {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return nil, err
	}

	details, err := s.orderRepo.GetForUser(ctx, orderID, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to get order")
		return nil, err
	}
	if details == nil {
		return nil, model.ErrOrderNotFound
	}
	return details, nil
}

// ListOrders retrieves the principal's orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, principalID string) ([]model.OrderDetails, error) {
	user, err := resolveUser(ctx, s.userRepo, s.logger, principalID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.ListByUser(ctx, user.ID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID.String()).Msg("failed to list orders")
		return nil, err
	}
	return orders, nil
}

// ListAllOrders retrieves every order that is not canceled.
func (s *orderService) ListAllOrders(ctx context.Context) ([]model.OrderDetails, error) {
	orders, err := s.orderRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, err
	}
	return orders, nil
}
