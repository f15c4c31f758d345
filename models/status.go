package models

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderAccepted  OrderStatus = "ACCEPTED"
	OrderEnCours   OrderStatus = "EN_COURS"
	OrderLivree    OrderStatus = "LIVREE"
	OrderCancelled OrderStatus = "CANCELLED"
)

var OrderStatuses = []OrderStatus{OrderPending, OrderAccepted, OrderEnCours, OrderLivree, OrderCancelled}

// ParseOrderStatus only accepts the exact status literals.
func ParseOrderStatus(s string) (OrderStatus, bool) {
	for _, st := range OrderStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s OrderStatus) Terminal() bool {
	return s == OrderLivree || s == OrderCancelled
}

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "PENDING"
	ReservationConfirmed ReservationStatus = "CONFIRMED"
	ReservationCancelled ReservationStatus = "CANCELLED"
)

var ReservationStatuses = []ReservationStatus{ReservationPending, ReservationConfirmed, ReservationCancelled}

// ActiveReservationStatuses hold a table for their day.
var ActiveReservationStatuses = []ReservationStatus{ReservationPending, ReservationConfirmed}

func ParseReservationStatus(s string) (ReservationStatus, bool) {
	for _, st := range ReservationStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

func (s ReservationStatus) Active() bool {
	return s == ReservationPending || s == ReservationConfirmed
}

type ReservationType string

const (
	ReservationDineIn   ReservationType = "SUR_PLACE"
	ReservationDelivery ReservationType = "LIVRAISON"
)

func ParseReservationType(s string) (ReservationType, bool) {
	switch ReservationType(s) {
	case ReservationDineIn, ReservationDelivery:
		return ReservationType(s), true
	}
	return "", false
}
