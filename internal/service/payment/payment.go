package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/davidmr019/cafeteria_backend/internal/models"
)

var (
	ErrValidation    = errors.New("validation")     // 400
	ErrNotFound      = errors.New("not found")      // 404
	ErrInvalidMethod = errors.New("invalid method") // 400
)

type CreateRequest struct {
	OrderID       uint                  `json:"order_id"`
	Amount        float64               `json:"amount"`
	PaymentMethod models.PaymentMethod  `json:"payment_method"`
	TransactionID *string               `json:"transaction_id"`
	Status        *models.PaymentStatus `json:"status"`
}

type Service struct {
	DB *gorm.DB
}

// InitiatePayment records a payment intent against an order. The ledger
// does not check that the order exists or that the amount matches its
// total; retried attempts simply add rows.
func (s *Service) InitiatePayment(ctx context.Context, req CreateRequest) (*models.Payment, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	status := models.PaymentStatusPending
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, *req.Status)
		}
		status = *req.Status
	}

	p := models.Payment{
		OrderID:       req.OrderID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		TransactionID: req.TransactionID,
		Status:        status,
		PaymentDate:   time.Now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// RecordCashPayment is the counter fast-path: cash is settled the moment
// it is recorded, so the status is forced to COMPLETED no matter what the
// caller supplied.
func (s *Service) RecordCashPayment(ctx context.Context, req CreateRequest) (*models.Payment, error) {
	if req.PaymentMethod != models.PaymentMethodCash {
		return nil, fmt.Errorf("%w: %q is not valid on the cash path", ErrInvalidMethod, req.PaymentMethod)
	}
	completed := models.PaymentStatusCompleted
	req.Status = &completed
	return s.InitiatePayment(ctx, req)
}

func (s *Service) GetPayment(ctx context.Context, paymentID uint) (*models.Payment, error) {
	var p models.Payment
	if err := s.DB.WithContext(ctx).First(&p, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
		}
		return nil, err
	}
	return &p, nil
}

func (s *Service) ListPaymentsByOrder(ctx context.Context, orderID uint, offset, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	q := s.DB.WithContext(ctx).Where("order_id = ?", orderID).Order("id ASC").Offset(offset).Limit(limit)
	if err := q.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// UpdatePaymentStatus overwrites the status unconditionally, same
// last-writer-wins semantics as order status.
func (s *Service) UpdatePaymentStatus(ctx context.Context, paymentID uint, newStatus models.PaymentStatus) (*models.Payment, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, newStatus)
	}

	var p models.Payment
	if err := s.DB.WithContext(ctx).First(&p, paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: payment %d", ErrNotFound, paymentID)
		}
		return nil, err
	}

	p.Status = newStatus
	if err := s.DB.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPayments returns all payments newest first, optionally filtered by
// status and method.
func (s *Service) ListPayments(ctx context.Context, status *models.PaymentStatus, method *models.PaymentMethod, offset, limit int) ([]models.Payment, error) {
	if status != nil && !status.Valid() {
		return nil, fmt.Errorf("%w: unknown payment status %q", ErrValidation, *status)
	}
	if method != nil && !method.Valid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrValidation, *method)
	}

	q := s.DB.WithContext(ctx).Model(&models.Payment{})
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	if method != nil {
		q = q.Where("payment_method = ?", *method)
	}

	var payments []models.Payment
	if err := q.Order("payment_date DESC").Offset(offset).Limit(limit).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

func validateCreate(req CreateRequest) error {
	if req.OrderID == 0 {
		return fmt.Errorf("%w: order_id required", ErrValidation)
	}
	if req.Amount <= 0 {
		return fmt.Errorf("%w: amount must be > 0", ErrValidation)
	}
	if !req.PaymentMethod.Valid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrValidation, req.PaymentMethod)
	}
	return nil
}
