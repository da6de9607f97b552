package handler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"syntra-pos/internal/database/models"
	"syntra-pos/internal/store"
)

// PricingPolicy decides which unit price an order line is charged at.
type PricingPolicy string

const (
	// PricingClient charges the price submitted with the cart.
	PricingClient PricingPolicy = "client"
	// PricingCatalog charges the catalog price at order time.
	PricingCatalog PricingPolicy = "catalog"
)

func ParsePricingPolicy(s string) (PricingPolicy, error) {
	switch p := PricingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PricingClient, PricingCatalog:
		return p, nil
	case "":
		return PricingClient, nil
	default:
		return "", fmt.Errorf("unknown pricing policy %q", s)
	}
}

type CreateOrderRequest struct {
	Cart          []models.CartLine `json:"cart"`
	CustomerName  string            `json:"customer_name"`
	CustomerPhone string            `json:"customer_phone"`
}

type POSHandler struct {
	store     *store.Store
	products  store.Collection[models.Product]
	orders    store.Collection[models.Order]
	customers store.Collection[models.Customer]
	pricing   PricingPolicy
	now       func() time.Time
}

func NewPOSHandler(s *store.Store, pricing PricingPolicy) *POSHandler {
	return &POSHandler{
		store:     s,
		products:  store.NewCollection[models.Product](s, store.Products),
		orders:    store.NewCollection[models.Order](s, store.Orders),
		customers: store.NewCollection[models.Customer](s, store.Customers),
		pricing:   pricing,
		now:       time.Now,
	}
}

func (s *POSHandler) PricingPolicy() PricingPolicy {
	return s.pricing
}

// CreateOrder checks every cart line against stock before anything is written, then
// decrements stock, records the order and remembers the customer.
func (s *POSHandler) CreateOrder(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	if len(req.Cart) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	for _, line := range req.Cart {
		if line.Qty <= 0 {
			return models.Order{}, fmt.Errorf("%w (product %d)", ErrInvalidQuantity, line.ID)
		}
		if line.Price.IsNegative() {
			return models.Order{}, fmt.Errorf("%w (product %d)", ErrNegativePrice, line.ID)
		}
	}

	customerName := strings.TrimSpace(req.CustomerName)
	customerPhone := strings.TrimSpace(req.CustomerPhone)

	unlock := s.store.Lock(store.Products, store.Orders, store.Customers)
	defer unlock()

	products, err := s.products.All(ctx)
	if err != nil {
		return models.Order{}, err
	}

	index := make(map[int]int, len(products))
	for i, p := range products {
		index[p.ID] = i
	}

	lines := make([]models.CartLine, len(req.Cart))
	copy(lines, req.Cart)

	remaining := make(map[int]int)
	for i, line := range lines {
		idx, ok := index[line.ID]
		if !ok {
			return models.Order{}, fmt.Errorf("%w: id %d", ErrProductNotFound, line.ID)
		}
		product := products[idx]

		left, seen := remaining[line.ID]
		if !seen {
			left = product.Stock
		}
		if left < line.Qty {
			return models.Order{}, &OutOfStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Available:   left,
				Requested:   line.Qty,
			}
		}
		remaining[line.ID] = left - line.Qty

		if s.pricing == PricingCatalog {
			lines[i].Price = product.Price
		}
		if lines[i].Name == "" {
			lines[i].Name = product.Name
		}
	}

	for id, left := range remaining {
		products[index[id]].Stock = left
	}
	if err := s.products.Put(ctx, products); err != nil {
		return models.Order{}, err
	}

	orders, err := s.orders.All(ctx)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		ID:            models.NextOrderID(orders),
		Timestamp:     models.FormatTimestamp(s.now()),
		Items:         lines,
		Total:         models.OrderTotal(lines),
		CustomerName:  customerName,
		CustomerPhone: customerPhone,
	}
	if err := s.orders.Put(ctx, append(orders, order)); err != nil {
		return models.Order{}, err
	}

	if customerName != "" || customerPhone != "" {
		if err := s.rememberCustomer(ctx, models.Customer{Name: customerName, Phone: customerPhone}); err != nil {
			return models.Order{}, err
		}
	}

	log.Printf("Order %d created: %d line(s), total %s", order.ID, len(order.Items), order.Total.String())
	return order, nil
}

// rememberCustomer appends c unless a customer with the same phone already exists.
func (s *POSHandler) rememberCustomer(ctx context.Context, c models.Customer) error {
	customers, err := s.customers.All(ctx)
	if err != nil {
		return err
	}
	for _, existing := range customers {
		if existing.Phone == c.Phone {
			return nil
		}
	}
	return s.customers.Put(ctx, append(customers, c))
}

func (s *POSHandler) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.orders.All(ctx)
}

func (s *POSHandler) GetOrder(ctx context.Context, id int) (models.Order, error) {
	orders, err := s.orders.All(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, fmt.Errorf("%w: id %d", ErrOrderNotFound, id)
}

func (s *POSHandler) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customers.All(ctx)
}
