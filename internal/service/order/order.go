package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/davidmr019/cafeteria_backend/internal/models"
)

var (
	ErrValidation  = errors.New("validation")       // 400
	ErrNotFound    = errors.New("not found")        // 404
	ErrUnavailable = errors.New("item unavailable") // 400
)

type LineRequest struct {
	MenuItemID uint `json:"menu_item_id"`
	Quantity   uint `json:"quantity"`
}

type CreateRequest struct {
	Items           []LineRequest `json:"items"`
	DeliveryAddress string        `json:"delivery_address"`
	Notes           string        `json:"notes"`
}

type Service struct {
	DB *gorm.DB
}

// CreateOrder resolves every requested line against the current menu,
// snapshots the unit prices and writes the order together with its lines
// in one transaction. A half-created order is never visible.
func (s *Service) CreateOrder(ctx context.Context, customerID uint, req CreateRequest) (*models.Order, error) {
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: items required", ErrValidation)
	}
	for _, line := range req.Items {
		if line.MenuItemID == 0 {
			return nil, fmt.Errorf("%w: menu_item_id required", ErrValidation)
		}
		if line.Quantity == 0 {
			return nil, fmt.Errorf("%w: quantity must be > 0", ErrValidation)
		}
	}

	var order models.Order

	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total float64
		items := make([]models.OrderItem, 0, len(req.Items))

		for _, line := range req.Items {
			var item models.MenuItem
			if err := tx.First(&item, line.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: menu item %d", ErrUnavailable, line.MenuItemID)
				}
				return err
			}
			if !item.IsAvailable {
				return fmt.Errorf("%w: menu item %d", ErrUnavailable, line.MenuItemID)
			}

			total += item.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				MenuItemID:   line.MenuItemID,
				Quantity:     line.Quantity,
				PriceAtOrder: item.Price,
			})
		}

		order = models.Order{
			CustomerID:      customerID,
			OrderDate:       time.Now().UTC(),
			TotalAmount:     total,
			Status:          models.OrderStatusPending,
			DeliveryAddress: req.DeliveryAddress,
			Notes:           req.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return &order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	if err := s.loadItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *Service) ListOrdersForCustomer(ctx context.Context, customerID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	q := s.DB.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("id ASC").
		Offset(offset).Limit(limit)
	if err := q.Find(&orders).Error; err != nil {
		return nil, err
	}
	for i := range orders {
		if err := s.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// ListOrders returns all orders newest first, optionally filtered by status.
func (s *Service) ListOrders(ctx context.Context, status *models.OrderStatus, offset, limit int) ([]models.Order, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, *status)
	}

	q := s.DB.WithContext(ctx).Model(&models.Order{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var orders []models.Order
	if err := q.Order("order_date DESC").Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	for i := range orders {
		if err := s.loadItems(ctx, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateOrderStatus overwrites the status unconditionally; there is no
// transition graph, matching the store's last-writer-wins semantics.
func (s *Service) UpdateOrderStatus(ctx context.Context, orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrValidation, newStatus)
	}

	var order models.Order
	if err := s.DB.WithContext(ctx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}

	order.Status = newStatus
	if err := s.DB.WithContext(ctx).Save(&order).Error; err != nil {
		return nil, err
	}
	if err := s.loadItems(ctx, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes the order and its lines atomically. Returns false,
// not an error, when the order does not exist.
func (s *Service) DeleteOrder(ctx context.Context, orderID uint) (bool, error) {
	deleted := false
	txErr := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&order).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	if txErr != nil {
		return false, txErr
	}
	return deleted, nil
}

func (s *Service) loadItems(ctx context.Context, order *models.Order) error {
	var items []models.OrderItem
	if err := s.DB.WithContext(ctx).Where("order_id = ?", order.ID).Order("id ASC").Find(&items).Error; err != nil {
		return err
	}
	order.Items = items
	return nil
}
