package services

import (
	"github.com/yeremiapane/restaurant-booking/models"
)

// orderTransitions lists, per role and current status, the statuses that role
// may move an order to. Anything absent is forbidden.
var orderTransitions = map[models.Role]map[models.OrderStatus][]models.OrderStatus{
	// Admins follow the automaton too: an order already EN_COURS can only be
	// delivered, not cancelled.
	models.RoleAdmin: {
		models.OrderPending:  {models.OrderAccepted, models.OrderCancelled},
		models.OrderAccepted: {models.OrderEnCours, models.OrderCancelled},
		models.OrderEnCours:  {models.OrderLivree},
	},
	models.RoleCourier: {
		models.OrderAccepted: {models.OrderEnCours},
		models.OrderEnCours:  {models.OrderLivree},
	},
	models.RoleClient: {
		models.OrderPending: {models.OrderCancelled},
	},
}

// courierVisibleOrders are the only orders a courier can list or open.
var courierVisibleOrders = []models.OrderStatus{models.OrderAccepted, models.OrderEnCours}

func orderTransitionAllowed(role models.Role, from, to models.OrderStatus) bool {
	for _, s := range orderTransitions[role][from] {
		if s == to {
			return true
		}
	}
	return false
}

func authorizeOrderTransition(actor *models.Identity, order *models.Order, to models.OrderStatus) error {
	if actor == nil {
		return newError(KindForbidden, "authentication is required to change an order status")
	}

	switch actor.Role {
	case models.RoleClient:
		if !actor.Owns(order.UserID) {
			return newError(KindForbidden, "you can only update your own orders")
		}
		if !orderTransitionAllowed(actor.Role, order.Status, to) {
			return newError(KindForbidden, "clients can only cancel a pending order")
		}
		return nil
	case models.RoleCourier:
		if order.Status == models.OrderPending {
			return newError(KindForbidden, "order has not been accepted by an administrator yet")
		}
	}

	if !orderTransitionAllowed(actor.Role, order.Status, to) {
		return newError(KindForbidden, "%s cannot move an order from %s to %s", actor.Role, order.Status, to).
			with("from", order.Status).
			with("to", to)
	}
	return nil
}

func canViewOrder(actor *models.Identity, order *models.Order) error {
	switch {
	case actor == nil:
		return newError(KindUnauthorized, "authentication required")
	case actor.Role == models.RoleAdmin:
		return nil
	case actor.Role == models.RoleClient:
		if actor.Owns(order.UserID) {
			return nil
		}
		return newError(KindForbidden, "you can only view your own orders")
	case actor.Role == models.RoleCourier:
		for _, s := range courierVisibleOrders {
			if order.Status == s {
				return nil
			}
		}
		return newError(KindForbidden, "couriers can only view accepted or in-progress orders")
	}
	return newError(KindForbidden, "you do not have permission")
}

// reservationTransitions applies to administrators, the only role allowed to
// change a reservation status.
var reservationTransitions = map[models.ReservationStatus][]models.ReservationStatus{
	models.ReservationPending:   {models.ReservationConfirmed, models.ReservationCancelled},
	models.ReservationConfirmed: {models.ReservationCancelled},
}

func reservationTransitionAllowed(from, to models.ReservationStatus) bool {
	for _, s := range reservationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
