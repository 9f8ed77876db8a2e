package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Sandeep-S-M/FarmConn/domain"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{
		DB: db,
	}
}

// CreateWithMessage commits the order, the seller notification message
// and the stock decrement as one transaction. The decrement is guarded
// by the remaining quantity, so two buyers racing for the last units
// cannot both succeed: whoever loses the conditional update gets
// ErrInsufficientStock and nothing is written.
func (r *OrderRepository) CreateWithMessage(ctx context.Context, order *domain.Order, message *domain.Message) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&domain.Product{}).
			Where("id = ? AND quantity >= ?", order.ProductID, order.Quantity).
			UpdateColumn("quantity", gorm.Expr("quantity - ?", order.Quantity))
		if result.Error != nil {
			return fmt.Errorf("failed to reserve stock: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			// either the product vanished or the stock ran out under us
			var exists int64
			if err := tx.Model(&domain.Product{}).Where("id = ?", order.ProductID).Count(&exists).Error; err != nil {
				return fmt.Errorf("failed to check product: %w", err)
			}
			if exists == 0 {
				return domain.ErrProductNotFound
			}
			return domain.ErrInsufficientStock
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if err := tx.Create(message).Error; err != nil {
			return fmt.Errorf("failed to create order message: %w", err)
		}

		return nil
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order
	err := r.DB.WithContext(ctx).First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("failed to find order: %w", err)
	}

	return order, nil
}

func (r *OrderRepository) FindByBuyer(ctx context.Context, buyerID uint) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Order
	err := r.DB.WithContext(ctx).Where("buyer_id = ?", buyerID).Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find buyer orders: %w", err)
	}

	return orders, nil
}

func (r *OrderRepository) FindBySeller(ctx context.Context, sellerID uint) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var orders []domain.Order
	err := r.DB.WithContext(ctx).
		Where("product_id IN (?)", r.DB.Model(&domain.Product{}).Select("id").Where("seller_id = ?", sellerID)).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find seller orders: %w", err)
	}

	return orders, nil
}

// Decide moves a pending order to accepted or rejected. The status
// update is guarded on the current status, so only one decision ever
// takes effect. Rejecting returns the reserved quantity to stock in the
// same transaction.
func (r *OrderRepository) Decide(ctx context.Context, orderID uint, status string) (domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return domain.Order{}, fmt.Errorf("context error: %w", err)
	}

	var order domain.Order

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return fmt.Errorf("failed to find order: %w", err)
		}

		result := tx.Model(&domain.Order{}).
			Where("id = ? AND status = ?", orderID, domain.OrderStatusPending).
			Update("status", status)
		if result.Error != nil {
			return fmt.Errorf("failed to update order status: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrOrderAlreadyDecided
		}

		if status == domain.OrderStatusRejected {
			restock := tx.Model(&domain.Product{}).
				Where("id = ?", order.ProductID).
				UpdateColumn("quantity", gorm.Expr("quantity + ?", order.Quantity))
			if restock.Error != nil {
				return fmt.Errorf("failed to restock product: %w", restock.Error)
			}
		}

		order.Status = status
		return nil
	})
	if err != nil {
		return domain.Order{}, err
	}

	return order, nil
}
