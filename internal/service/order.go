package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/vpetrenko/ecom_backend/internal/models"
)

var (
	ErrEmptyOrder  = errors.New("order has no items") // 400
	ErrOrderInsert = errors.New("order creation failed")
	ErrItemInsert  = errors.New("item insertion failed")
)

type OrderLine struct {
	ProductID uint    `json:"productId"`
	Quantity  uint    `json:"quantity"`
	Price     float64 `json:"price"`
}

const defaultCommitTimeout = 5 * time.Second

type OrderService struct {
	DB *gorm.DB

	// CommitTimeout bounds the whole transaction; hitting it rolls the
	// order back like any other failure.
	CommitTimeout time.Duration
}

// PlaceOrder records one order header plus one row per line as a single
// unit of work. On any failure nothing persists: either all rows commit
// or the transaction rolls back, including the header.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, totalAmount float64, lines []OrderLine) (uint, error) {
	if len(lines) == 0 {
		return 0, ErrEmptyOrder
	}

	timeout := s.CommitTimeout
	if timeout <= 0 {
		timeout = defaultCommitTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var orderID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order := models.Order{
			UserID:      userID,
			TotalAmount: totalAmount,
			Status:      "pending",
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrOrderInsert, err)
		}
		orderID = order.ID

		// Every line's outcome is collected before the commit/rollback
		// branch; a partial batch must never commit.
		itemErrs := make([]error, 0, len(lines))
		for _, line := range lines {
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price,
			}
			itemErrs = append(itemErrs, tx.Create(&item).Error)
		}
		if err := errors.Join(itemErrs...); err != nil {
			return fmt.Errorf("%w: %v", ErrItemInsert, err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return orderID, nil
}
