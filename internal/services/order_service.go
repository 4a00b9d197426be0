package services

import (
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/pizzeria/internal/geo"
	"github.com/example/pizzeria/internal/models"
	"github.com/example/pizzeria/internal/realtime"
)

// FallbackDistanceKm is charged when delivery is selected but the address
// cannot be resolved (or is blank). 8 km lands in the low delivery tier.
const FallbackDistanceKm = 8.0

// Actor identifies who is performing an operation.
type Actor struct {
	UserID  uuid.UUID
	IsAdmin bool
}

// OrderItemInput is one line of a checkout request. Name, price and image
// are the client-side snapshot of the product at order time.
type OrderItemInput struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// CreateOrderInput is the validated command for placing an order. Subtotal
// is the item total before the delivery charge.
type CreateOrderInput struct {
	Items         []OrderItemInput
	Subtotal      float64
	CustomerName  string
	CustomerEmail string
	PaymentMethod string
	DeliveryType  string
	Address       string
	UserID        uuid.UUID
}

// DeliveryQuote is the distance/charge pair for an address.
type DeliveryQuote struct {
	Distance       float64 `json:"distance"`
	DeliveryCharge float64 `json:"deliveryCharge"`
}

// OrderService owns order creation and status transitions. The publish
// handle and geocoder are injected; there are no package-level singletons.
type OrderService struct {
	db        *gorm.DB
	geocoder  geo.Geocoder
	publisher realtime.Publisher
	notifier  *Notifier
	base      geo.Coordinate
}

// NewOrderService constructs an OrderService anchored at the restaurant
// coordinate.
func NewOrderService(db *gorm.DB, geocoder geo.Geocoder, publisher realtime.Publisher, notifier *Notifier, base geo.Coordinate) *OrderService {
	return &OrderService{
		db:        db,
		geocoder:  geocoder,
		publisher: publisher,
		notifier:  notifier,
		base:      base,
	}
}

// CreateOrder validates the checkout, computes the delivery charge, persists
// the order and broadcasts a newOrder event. The final total is
// subtotal + delivery charge; payment is marked completed at creation since
// no gateway round trip exists in this design.
func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if len(in.Items) == 0 || in.Subtotal <= 0 || in.CustomerName == "" || in.CustomerEmail == "" {
		return nil, &ValidationError{Msg: "please provide all required fields"}
	}

	deliveryType := in.DeliveryType
	if deliveryType == "" {
		deliveryType = models.DeliveryTypePickup
	}

	address := strings.TrimSpace(in.Address)

	var distance, charge float64
	if deliveryType == models.DeliveryTypeDelivery {
		distance, charge = s.quoteDelivery(address)
	}

	paymentMethod := in.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "card"
	}

	order := models.Order{
		UserID:         in.UserID,
		TotalAmount:    in.Subtotal + charge,
		PaymentStatus:  models.PaymentCompleted,
		OrderStatus:    models.StatusPending,
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		PaymentMethod:  paymentMethod,
		DeliveryType:   deliveryType,
		Address:        address,
		Distance:       distance,
		DeliveryCharge: charge,
	}

	for _, item := range in.Items {
		orderItem := models.OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
			Image:    item.Image,
		}
		if item.ProductID != "" {
			if id, err := uuid.Parse(item.ProductID); err == nil {
				orderItem.ProductID = &id
			}
		}
		order.Items = append(order.Items, orderItem)
	}

	if err := s.db.Create(&order).Error; err != nil {
		return nil, err
	}

	s.publisher.Broadcast("newOrder", &order)

	return &order, nil
}

// quoteDelivery resolves the address and prices the trip. Resolver failures
// and blank addresses (including whitespace-only) fall back to
// FallbackDistanceKm; they never surface.
func (s *OrderService) quoteDelivery(address string) (distance, charge float64) {
	if strings.TrimSpace(address) == "" {
		log.Printf("[Order] Delivery selected without address, using fallback distance")
		return FallbackDistanceKm, geo.DeliveryCharge(FallbackDistanceKm)
	}

	loc, err := s.geocoder.Geocode(address)
	if err != nil {
		log.Printf("[Order] Geocoding failed for %q: %v, using fallback distance", address, err)
		return FallbackDistanceKm, geo.DeliveryCharge(FallbackDistanceKm)
	}

	distance = geo.Distance(s.base.Lat, s.base.Lng, loc.Lat, loc.Lng)
	return distance, geo.DeliveryCharge(distance)
}

// CalculateDelivery quotes distance and charge for an address without
// creating an order.
func (s *OrderService) CalculateDelivery(address string) (DeliveryQuote, error) {
	if strings.TrimSpace(address) == "" {
		return DeliveryQuote{}, &ValidationError{Msg: "address is required"}
	}

	distance, charge := s.quoteDelivery(address)
	return DeliveryQuote{Distance: distance, DeliveryCharge: charge}, nil
}

// UpdateStatus moves an order to a new status. Only admins may transition;
// the new status must be one of the enumerated values, but any such value is
// accepted from any current state. The write is committed before any event
// is published, and both publishes happen before the conditional pickup
// notification; notification failures never fail the update.
func (s *OrderService) UpdateStatus(orderID uuid.UUID, newStatus string, actor Actor) (*models.Order, error) {
	if !actor.IsAdmin {
		return nil, &AuthorizationError{Msg: "admin access required"}
	}

	if !models.IsValidOrderStatus(newStatus) {
		return nil, &ValidationError{Msg: "invalid order status"}
	}

	var order models.Order
	if err := s.db.Preload("Items").Preload("User").First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Msg: "order not found"}
		}
		return nil, err
	}

	previousStatus := order.OrderStatus
	order.OrderStatus = newStatus
	if err := s.db.Save(&order).Error; err != nil {
		return nil, err
	}

	orderIDStr := order.ID.String()

	s.publisher.Broadcast("orderStatusUpdate", map[string]any{
		"orderId": orderIDStr,
		"status":  newStatus,
	})
	s.publisher.ToRoom(realtime.OrderRoom(orderIDStr), "orderStatusUpdate", map[string]any{
		"orderId": orderIDStr,
		"status":  newStatus,
		"order":   &order,
	})

	if newStatus == models.StatusReadyForPickup && previousStatus != models.StatusReadyForPickup {
		s.notifier.NotifyPickupReady(&order)
	}

	return &order, nil
}

// GetOrder fetches a single order with its user joined. Public by design:
// anonymous order tracking reads by ID.
func (s *OrderService) GetOrder(orderID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").Preload("User").First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Msg: "order not found"}
		}
		return nil, err
	}
	return &order, nil
}

// ListOrders returns every order for admins, or the actor's own orders
// otherwise, newest first.
func (s *OrderService) ListOrders(actor Actor) ([]models.Order, error) {
	query := s.db.Preload("Items").Order("created_at desc")
	if actor.IsAdmin {
		query = query.Preload("User")
	} else {
		query = query.Where("user_id = ?", actor.UserID)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
