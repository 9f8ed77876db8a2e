package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sandeep-S-M/FarmConn/domain"
	"github.com/Sandeep-S-M/FarmConn/pkg/logger"
	"github.com/Sandeep-S-M/FarmConn/pkg/metrics"

	"github.com/google/uuid"
)

// OrderRepository contract interface
type OrderRepository interface {
	CreateWithMessage(ctx context.Context, order *domain.Order, message *domain.Message) error
	FindByID(ctx context.Context, id uint) (domain.Order, error)
	FindByBuyer(ctx context.Context, buyerID uint) ([]domain.Order, error)
	FindBySeller(ctx context.Context, sellerID uint) ([]domain.Order, error)
	Decide(ctx context.Context, orderID uint, status string) (domain.Order, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Product, error)
}

// UserRepository contract interface
type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, textBody, htmlBody string) (err error)
}

type orderService struct {
	orderRepo   OrderRepository
	productRepo ProductRepository
	userRepo    UserRepository
	notifRepo   NotificationRepository
}

func NewOrderService(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	userRepo UserRepository,
	notifRepo NotificationRepository,
) *orderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
	}
}

// PlaceOrder checks stock, commits the order together with the in-band
// seller message and the stock decrement, then emails both parties.
// The emails are best effort: a failed send downgrades the receipt to
// NotificationSent=false but never touches the committed order.
func (s *orderService) PlaceOrder(ctx context.Context, buyerID, productID uint, quantity int, deliveryAddress string) (domain.OrderReceipt, error) {
	start := time.Now()
	defer func() {
		metrics.OrderPlacementLatency.Observe(time.Since(start).Seconds())
	}()

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		metrics.OrdersRejectedTotal.WithLabelValues("product_not_found").Inc()
		logger.Error("Failed to find product for order", err)
		return domain.OrderReceipt{}, err
	}

	if quantity <= 0 {
		metrics.OrdersRejectedTotal.WithLabelValues("invalid_quantity").Inc()
		return domain.OrderReceipt{}, errors.New("quantity must be positive")
	}

	// Fast path. The transactional decrement below is the real guard;
	// this only saves a round trip when the shortage is already visible.
	if product.Quantity < quantity {
		metrics.OrdersRejectedTotal.WithLabelValues("insufficient_stock").Inc()
		return domain.OrderReceipt{}, domain.ErrInsufficientStock
	}

	buyer, err := s.userRepo.FindByID(ctx, buyerID)
	if err != nil {
		logger.Error("Failed to find buyer for order", err)
		return domain.OrderReceipt{}, err
	}

	seller, err := s.userRepo.FindByID(ctx, product.SellerID)
	if err != nil {
		logger.Error("Failed to find seller for order", err)
		return domain.OrderReceipt{}, err
	}

	totalPrice := product.Price * float64(quantity)

	newOrder := domain.Order{
		Reference:       uuid.NewString(),
		BuyerID:         buyer.ID,
		ProductID:       product.ID,
		Quantity:        quantity,
		TotalPrice:      totalPrice,
		Status:          domain.OrderStatusPending,
		DeliveryAddress: deliveryAddress,
	}

	message := domain.Message{
		SenderID:   buyer.ID,
		ReceiverID: seller.ID,
		Content: fmt.Sprintf(
			"New Order: %s wants to buy %d x %s. Delivery Address: %s",
			buyer.Username, quantity, product.Name, deliveryAddress,
		),
	}

	if err := s.orderRepo.CreateWithMessage(ctx, &newOrder, &message); err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			metrics.OrdersRejectedTotal.WithLabelValues("insufficient_stock").Inc()
		}
		logger.Error("Failed to commit order", err)
		return domain.OrderReceipt{}, err
	}

	metrics.OrdersPlacedTotal.Inc()
	logger.Info("Order placed",
		"reference", newOrder.Reference,
		"buyer_id", buyer.ID,
		"product_id", product.ID,
		"quantity", quantity,
		"total_price", totalPrice,
	)

	notified := s.notifyOrderPlaced(buyer, seller, product, newOrder)

	return domain.OrderReceipt{
		Order:            newOrder,
		MessageID:        message.ID,
		TotalPrice:       totalPrice,
		NotificationSent: notified,
	}, nil
}

// DecideOrder is the seller's accept/reject on a pending order. A
// rejected order returns its quantity to stock. Decisions are terminal.
func (s *orderService) DecideOrder(ctx context.Context, sellerID, orderID uint, decision string) (domain.Order, error) {
	if decision != domain.OrderStatusAccepted && decision != domain.OrderStatusRejected {
		return domain.Order{}, domain.ErrInvalidOrderStatus
	}

	existing, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		logger.Error("Failed to find order for decision", err)
		return domain.Order{}, err
	}

	product, err := s.productRepo.FindByID(ctx, existing.ProductID)
	if err != nil {
		logger.Error("Failed to find product for order decision", err)
		return domain.Order{}, err
	}

	if product.SellerID != sellerID {
		return domain.Order{}, domain.ErrNotProductSeller
	}

	decided, err := s.orderRepo.Decide(ctx, orderID, decision)
	if err != nil {
		logger.Error("Failed to decide order", err)
		return domain.Order{}, err
	}

	logger.Info("Order decided", "reference", decided.Reference, "status", decided.Status)

	buyer, err := s.userRepo.FindByID(ctx, decided.BuyerID)
	if err != nil {
		logger.Warn("Failed to find buyer for decision notification", err)
		return decided, nil
	}

	subject := fmt.Sprintf("[FarmConn] Order %s: %s", decided.Reference, decided.Status)
	body := fmt.Sprintf(
		"Your order for %s has been %s by %s.",
		product.Name, decided.Status, sellerDisplayName(ctx, s.userRepo, product.SellerID),
	)
	if err := s.notifRepo.SendEmail(buyer.Username, buyer.Email, subject, body, ""); err != nil {
		metrics.OrderNotificationFailures.Inc()
		logger.Warn("Failed to send order decision email", err)
	}

	return decided, nil
}

func (s *orderService) GetOrder(ctx context.Context, orderID uint) (domain.Order, error) {
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *orderService) ListForBuyer(ctx context.Context, buyerID uint) ([]domain.Order, error) {
	return s.orderRepo.FindByBuyer(ctx, buyerID)
}

func (s *orderService) ListForSeller(ctx context.Context, sellerID uint) ([]domain.Order, error) {
	return s.orderRepo.FindBySeller(ctx, sellerID)
}

func (s *orderService) notifyOrderPlaced(buyer, seller domain.User, product domain.Product, o domain.Order) bool {
	ok := true

	sellerName := seller.NurseryName
	if sellerName == "" {
		sellerName = seller.Username
	}

	sellerText := fmt.Sprintf(`You have a new order!

Product: %s
Quantity: %d
Buyer: %s
Delivery Address: %s
Total Price: ₹%.2f

Login to your dashboard to view more details.`,
		product.Name, o.Quantity, buyer.Username, o.DeliveryAddress, o.TotalPrice)

	sellerHTML := fmt.Sprintf(`<h3>You have a new order!</h3>
<p><strong>Product:</strong> %s</p>
<p><strong>Quantity:</strong> %d</p>
<p><strong>Buyer:</strong> %s</p>
<p><strong>Delivery Address:</strong> %s</p>
<p><strong>Total Price:</strong> ₹%.2f</p>`,
		product.Name, o.Quantity, buyer.Username, o.DeliveryAddress, o.TotalPrice)

	err := s.notifRepo.SendEmail(
		sellerName, seller.Email,
		fmt.Sprintf("[FarmConn] New Order for %s", product.Name),
		sellerText, sellerHTML,
	)
	if err != nil {
		metrics.OrderNotificationFailures.Inc()
		logger.Warn("Failed to send seller order email", err)
		ok = false
	}

	buyerText := fmt.Sprintf(`Your order has been placed successfully!

Product: %s
Quantity: %d
Total Price: ₹%.2f
Seller: %s

The seller will contact you shortly.`,
		product.Name, o.Quantity, o.TotalPrice, sellerName)

	buyerHTML := fmt.Sprintf(`<h3>Order Confirmation</h3>
<p>Your order for <strong>%s</strong> has been placed.</p>
<p><strong>Quantity:</strong> %d</p>
<p><strong>Total Price:</strong> ₹%.2f</p>
<p><strong>Seller:</strong> %s</p>
<p>The seller will contact you shortly.</p>`,
		product.Name, o.Quantity, o.TotalPrice, sellerName)

	err = s.notifRepo.SendEmail(
		buyer.Username, buyer.Email,
		fmt.Sprintf("[FarmConn] Order Confirmation: %s", product.Name),
		buyerText, buyerHTML,
	)
	if err != nil {
		metrics.OrderNotificationFailures.Inc()
		logger.Warn("Failed to send buyer order email", err)
		ok = false
	}

	return ok
}

func sellerDisplayName(ctx context.Context, repo UserRepository, sellerID uint) string {
	seller, err := repo.FindByID(ctx, sellerID)
	if err != nil {
		return "the seller"
	}
	if seller.NurseryName != "" {
		return seller.NurseryName
	}
	return seller.Username
}
