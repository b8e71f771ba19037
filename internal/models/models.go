package models

import (
	"time"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
)

type OrderStatus string

const (
	OrderStatusPending          OrderStatus = "PENDING"
	OrderStatusInPreparation    OrderStatus = "IN_PREPARATION"
	OrderStatusReadyForDelivery OrderStatus = "READY_FOR_DELIVERY"
	OrderStatusDelivered        OrderStatus = "DELIVERED"
	OrderStatusCancelled        OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInPreparation, OrderStatusReadyForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "CASH"
	PaymentMethodNequiQR    PaymentMethod = "NEQUI_QR"
	PaymentMethodNequiPhone PaymentMethod = "NEQUI_PHONE"
	PaymentMethodCard       PaymentMethod = "CARD"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodNequiQR, PaymentMethodNequiPhone, PaymentMethodCard:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	}
	return false
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	Username     string `gorm:"unique;not null"           json:"username"`
	Email        string `gorm:"unique;not null"           json:"email"`
	PasswordHash string `gorm:"not null"                  json:"-"`
	FullName     string `json:"full_name"`
	Role         Role   `gorm:"not null;default:CUSTOMER" json:"role"`
	IsActive     bool   `gorm:"default:true"              json:"is_active"`
}

type MenuItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"unique;not null"          json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"not null"                 json:"price"`
	Category    string  `gorm:"not null"                 json:"category"`
	ImageURL    string  `json:"image_url"`
	IsAvailable bool    `gorm:"default:true"             json:"is_available"`
}

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID      uint        `gorm:"index;not null"           json:"customer_id"`
	OrderDate       time.Time   `gorm:"not null"                 json:"order_date"`
	TotalAmount     float64     `gorm:"not null"                 json:"total_amount"`
	Status          OrderStatus `gorm:"not null"                 json:"status"`
	DeliveryAddress string      `json:"delivery_address,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	Items           []OrderItem `gorm:"-"                        json:"items"`
}

// OrderItem keeps the menu item's price as it was when the order was
// placed. Later menu price changes must never touch existing orders.
type OrderItem struct {
	ID           uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID      uint    `gorm:"index;not null"            json:"order_id"`
	MenuItemID   uint    `gorm:"not null"                  json:"menu_item_id"`
	Quantity     uint    `gorm:"not null;check:quantity>0" json:"quantity"`
	PriceAtOrder float64 `gorm:"not null"                  json:"price_at_time_of_order"`
}

type Payment struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID       uint          `gorm:"index;not null"           json:"order_id"`
	Amount        float64       `gorm:"not null"                 json:"amount"`
	PaymentMethod PaymentMethod `gorm:"not null"                 json:"payment_method"`
	TransactionID *string       `gorm:"uniqueIndex"              json:"transaction_id,omitempty"`
	Status        PaymentStatus `gorm:"not null"                 json:"status"`
	PaymentDate   time.Time     `gorm:"not null"                 json:"payment_date"`
}

type Offer struct {
	ID                 uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name               string    `gorm:"not null"                 json:"name"`
	Description        string    `json:"description"`
	DiscountPercentage float64   `gorm:"not null"                 json:"discount_percentage"`
	StartDate          time.Time `gorm:"not null"                 json:"start_date"`
	EndDate            time.Time `gorm:"not null"                 json:"end_date"`
	MenuItemID         *uint     `json:"menu_item_id,omitempty"`
}

// Active reports whether the offer's time window contains now.
func (o Offer) Active(now time.Time) bool {
	return !o.StartDate.After(now) && !o.EndDate.Before(now)
}

type DailyUpdate struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title             string    `gorm:"not null"                 json:"title"`
	Content           string    `gorm:"not null"                 json:"content"`
	Date              time.Time `gorm:"not null"                 json:"date"`
	RelatedMenuItemID *uint     `json:"related_menu_item_id,omitempty"`
}
