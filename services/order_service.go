package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

type OrderService struct {
	store *repository.Store
}

func NewOrderService(store *repository.Store) *OrderService {
	return &OrderService{store: store}
}

type OrderItemInput struct {
	DishID uint `json:"dishId"`
	Qty    int  `json:"qty"`
}

type CreateOrderInput struct {
	Items []OrderItemInput `json:"items"`
	// UserID is only honoured for administrators ordering on behalf of a client.
	UserID  *uint   `json:"userId"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
	Notes   *string `json:"notes"`
}

type orderCreatedEvent struct {
	UserID *uint  `json:"userId"`
	Status string `json:"status"`
	Total  string `json:"total"`
	Items  int    `json:"items"`
}

// Create prices the items from the current catalog and stores the order with
// its items in one transaction.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput, actor *models.Identity) (*models.Order, error) {
	if actor == nil {
		return nil, newError(KindUnauthorized, "authentication required to place an order")
	}
	if actor.Role == models.RoleCourier {
		return nil, newError(KindForbidden, "couriers cannot place orders")
	}
	if err := validateOrderItems(in.Items); err != nil {
		return nil, err
	}

	var owner *uint
	switch actor.Role {
	case models.RoleClient:
		id := actor.UserID
		owner = &id
	case models.RoleAdmin:
		owner = in.UserID
	}

	var orderID uint
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		if owner != nil && actor.Role == models.RoleAdmin {
			if _, err := tx.FindUser(ctx, *owner); err != nil {
				return storeError(err, "user")
			}
		}

		ids := make([]uint, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.DishID)
		}
		dishes, err := tx.FindDishesByIDs(ctx, ids)
		if err != nil {
			return err
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			dish, ok := dishes[it.DishID]
			if !ok {
				return newError(KindInvalidItem, "dish %d does not exist", it.DishID).with("dishId", it.DishID)
			}
			if !dish.Available {
				return newError(KindInvalidItem, "dish %q is not available", dish.Name).with("dishId", it.DishID)
			}
			total = total.Add(dish.Price.Mul(decimal.NewFromInt(int64(it.Qty))))
			items = append(items, models.OrderItem{DishID: dish.ID, Qty: it.Qty, UnitPrice: dish.Price})
		}

		order := &models.Order{
			UserID:  owner,
			Status:  models.OrderPending,
			Total:   models.NewMoney(utils.RoundPrice(total)),
			Address: in.Address,
			Phone:   in.Phone,
			Notes:   in.Notes,
			Items:   items,
		}
		if err := tx.CreateOrder(ctx, order); err != nil {
			return err
		}
		orderID = order.ID

		return recordEvent(ctx, tx, events.AggregateOrder, order.ID, events.OrderCreated, orderCreatedEvent{
			UserID: order.UserID,
			Status: string(order.Status),
			Total:  order.Total.StringFixed(2),
			Items:  len(items),
		})
	})
	if err != nil {
		return nil, err
	}

	order, err := s.store.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.Printf("Order #%d created by %s #%d, total %s", order.ID, actor.Role, actor.UserID, utils.FormatEuro(order.Total.Decimal))
	return order, nil
}

func validateOrderItems(items []OrderItemInput) error {
	if len(items) == 0 {
		return newError(KindValidation, "order must contain at least one item").with("field", "items")
	}
	for i, it := range items {
		if it.DishID == 0 {
			return newError(KindValidation, "item %d has no dish", i).with("index", i)
		}
		if it.Qty <= 0 {
			return newError(KindValidation, "item %d quantity must be positive", i).with("index", i)
		}
	}
	return nil
}

// UpdateStatus is the single path that changes an order status.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, rawStatus string, actor *models.Identity) (*models.Order, error) {
	to, ok := models.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, newError(KindInvalidStatus, "invalid order status %q", rawStatus).with("allowed", models.OrderStatuses)
	}

	var from models.OrderStatus
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		order, err := tx.FindOrder(ctx, id)
		if err != nil {
			return storeError(err, "order")
		}
		if err := authorizeOrderTransition(actor, order, to); err != nil {
			return err
		}

		from = order.Status
		changed, err := tx.UpdateOrderStatus(ctx, id, from, to)
		if err != nil {
			return err
		}
		if !changed {
			return newError(KindConflict, "order #%d was modified concurrently, retry", id)
		}

		return recordEvent(ctx, tx, events.AggregateOrder, id, events.OrderStatusChanged, events.StatusChange{
			From:      string(from),
			To:        string(to),
			ActorID:   actorID(actor),
			ActorRole: actorRole(actor),
		})
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": id,
		"from":     from,
		"to":       to,
		"role":     actorRole(actor),
	}).Info("Order status changed")

	return s.store.FindOrder(ctx, id)
}

// List returns the orders visible to actor, optionally narrowed by status.
func (s *OrderService) List(ctx context.Context, rawStatus string, actor *models.Identity) ([]models.Order, error) {
	if actor == nil {
		return nil, newError(KindUnauthorized, "authentication required")
	}

	var filter repository.OrderFilter
	if rawStatus != "" {
		st, ok := models.ParseOrderStatus(rawStatus)
		if !ok {
			return nil, newError(KindInvalidStatus, "invalid order status %q", rawStatus).with("allowed", models.OrderStatuses)
		}
		filter.Statuses = []models.OrderStatus{st}
	}

	switch actor.Role {
	case models.RoleClient:
		id := actor.UserID
		filter.UserID = &id
	case models.RoleCourier:
		filter.Statuses = intersectStatuses(filter.Statuses, courierVisibleOrders)
		if len(filter.Statuses) == 0 {
			return []models.Order{}, nil
		}
	}

	return s.store.ListOrders(ctx, filter)
}

func intersectStatuses(requested, visible []models.OrderStatus) []models.OrderStatus {
	if len(requested) == 0 {
		return visible
	}
	var out []models.OrderStatus
	for _, r := range requested {
		for _, v := range visible {
			if r == v {
				out = append(out, r)
			}
		}
	}
	return out
}

func (s *OrderService) Get(ctx context.Context, id uint, actor *models.Identity) (*models.Order, error) {
	if actor == nil {
		return nil, newError(KindUnauthorized, "authentication required")
	}
	order, err := s.store.FindOrder(ctx, id)
	if err != nil {
		return nil, storeError(err, "order")
	}
	if err := canViewOrder(actor, order); err != nil {
		return nil, err
	}
	return order, nil
}
