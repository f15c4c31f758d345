package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/restaurant-booking/events"
	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/repository"
	"github.com/yeremiapane/restaurant-booking/utils"
)

const defaultReservationName = "Client"

// SlotLocker guards one table/day while a booking is being written.
type SlotLocker interface {
	Lock(ctx context.Context, slot, owner string) (bool, error)
	Unlock(ctx context.Context, slot, owner string) error
}

type ReservationService struct {
	store  *repository.Store
	locker SlotLocker
	now    func() time.Time
}

func NewReservationService(store *repository.Store, locker SlotLocker) *ReservationService {
	return &ReservationService{store: store, locker: locker, now: time.Now}
}

// SetClock replaces the clock used to reject past dates.
func (s *ReservationService) SetClock(now func() time.Time) {
	s.now = now
}

type CreateReservationInput struct {
	Name    string `json:"name"`
	Date    string `json:"date"`
	Type    string `json:"type"`
	TableID *uint  `json:"tableId"`
	Guests  *int   `json:"guests"`
}

type ReservationListInput struct {
	Status string
	Type   string
	Date   string
}

type reservationCreatedEvent struct {
	Day     string `json:"day"`
	Type    string `json:"type"`
	TableID *uint  `json:"tableId"`
	UserID  *uint  `json:"userId"`
	Guests  *int   `json:"guests"`
}

// Create books a reservation in PENDING. Dine-in bookings with a table are
// checked for availability, capacity and a same-day booking of that table.
func (s *ReservationService) Create(ctx context.Context, in CreateReservationInput, actor *models.Identity) (*models.Reservation, error) {
	var missing []string
	if strings.TrimSpace(in.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(in.Type) == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return nil, newError(KindValidation, "missing required fields: %s", strings.Join(missing, ", ")).with("missing", missing)
	}

	typ, ok := models.ParseReservationType(in.Type)
	if !ok {
		return nil, newError(KindValidation, "type must be %s or %s", models.ReservationDineIn, models.ReservationDelivery).with("field", "type")
	}
	date, err := parseReservationDate(in.Date)
	if err != nil {
		return nil, newError(KindValidation, "invalid date %q", in.Date).with("field", "date")
	}
	day := models.DayOf(date)
	if day.Before(models.DayOf(s.now())) {
		return nil, newError(KindValidation, "reservation date cannot be in the past").with("field", "date")
	}
	if in.Guests != nil && *in.Guests < 1 {
		return nil, newError(KindValidation, "guests must be at least 1").with("field", "guests")
	}

	r := &models.Reservation{
		Name:   reservationName(in.Name, actor),
		Date:   date.UTC(),
		Day:    day.String(),
		Type:   typ,
		Guests: in.Guests,
		Status: models.ReservationPending,
	}
	if actor != nil {
		id := actor.UserID
		r.UserID = &id
	}
	if typ == models.ReservationDineIn {
		r.TableID = in.TableID
	}

	if r.TableID != nil {
		slot := models.SlotKey(*r.TableID, day)
		release, err := s.lockSlot(ctx, slot)
		if err != nil {
			return nil, err
		}
		defer release()
	}

	err = s.store.Transaction(ctx, func(tx *repository.Store) error {
		if r.TableID != nil {
			if err := checkTableForBooking(ctx, tx, *r.TableID, day, r.Guests); err != nil {
				return err
			}
			slot := models.SlotKey(*r.TableID, day)
			r.ActiveSlot = &slot
		}

		if err := tx.CreateReservation(ctx, r); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return tableBookedError(*r.TableID, day)
			}
			return err
		}

		return recordEvent(ctx, tx, events.AggregateReservation, r.ID, events.ReservationCreated, reservationCreatedEvent{
			Day:     r.Day,
			Type:    string(r.Type),
			TableID: r.TableID,
			UserID:  r.UserID,
			Guests:  r.Guests,
		})
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": r.ID,
		"day":            r.Day,
		"type":           r.Type,
	}).Info("Reservation created")

	return s.store.FindReservation(ctx, r.ID)
}

// lockSlot takes the short booking lock. A failing lock backend is logged and
// skipped: the unique slot key still rejects a double booking.
func (s *ReservationService) lockSlot(ctx context.Context, slot string) (func(), error) {
	noop := func() {}
	if s.locker == nil {
		return noop, nil
	}

	owner := uuid.NewString()
	acquired, err := s.locker.Lock(ctx, slot, owner)
	if err != nil {
		utils.ErrorLogger.Printf("Slot lock unavailable for %s: %v", slot, err)
		return noop, nil
	}
	if !acquired {
		return nil, newError(KindConflict, "this table is being booked for the same day, retry shortly").with("slot", slot)
	}

	return func() {
		if err := s.locker.Unlock(context.Background(), slot, owner); err != nil {
			utils.ErrorLogger.Printf("Error releasing slot lock %s: %v", slot, err)
		}
	}, nil
}

func checkTableForBooking(ctx context.Context, tx *repository.Store, tableID uint, day models.Day, guests *int) error {
	table, err := tx.FindTable(ctx, tableID)
	if err != nil {
		return storeError(err, "table")
	}
	if !table.Available {
		return newError(KindUnavailable, "table %s is not available", table.Name).with("tableId", table.ID)
	}
	if guests != nil && *guests > table.Seats {
		return newError(KindCapacityExceeded, "table %s seats %d guests, %d requested", table.Name, table.Seats, *guests).
			with("seats", table.Seats).
			with("guests", *guests)
	}

	busy, err := tx.HasActiveReservation(ctx, tableID, day, 0)
	if err != nil {
		return err
	}
	if busy {
		return tableBookedError(tableID, day)
	}
	return nil
}

func tableBookedError(tableID uint, day models.Day) *Error {
	return newError(KindConflict, "table already booked on %s", day).
		with("tableId", tableID).
		with("day", day.String())
}

func parseReservationDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func reservationName(name string, actor *models.Identity) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	if actor != nil {
		if actor.Name != "" {
			return actor.Name
		}
		if actor.Email != "" {
			return actor.Email
		}
	}
	return defaultReservationName
}

// UpdateStatus is the single path that changes a reservation status.
func (s *ReservationService) UpdateStatus(ctx context.Context, id uint, rawStatus string, actor *models.Identity) (*models.Reservation, error) {
	if !actor.Is(models.RoleAdmin) {
		return nil, newError(KindForbidden, "only administrators can change a reservation status")
	}
	to, ok := models.ParseReservationStatus(rawStatus)
	if !ok {
		return nil, newError(KindInvalidStatus, "invalid reservation status %q", rawStatus).with("allowed", models.ReservationStatuses)
	}

	var from models.ReservationStatus
	err := s.store.Transaction(ctx, func(tx *repository.Store) error {
		r, err := tx.FindReservation(ctx, id)
		if err != nil {
			return storeError(err, "reservation")
		}
		from = r.Status
		if !reservationTransitionAllowed(from, to) {
			return newError(KindForbidden, "reservation cannot move from %s to %s", from, to).
				with("from", from).
				with("to", to)
		}

		slot := r.ActiveSlot
		if !to.Active() {
			slot = nil
		}
		if to == models.ReservationConfirmed && r.TableID != nil {
			day, err := models.ParseDay(r.Day)
			if err != nil {
				return err
			}
			busy, err := tx.HasActiveReservation(ctx, *r.TableID, day, r.ID)
			if err != nil {
				return err
			}
			if busy {
				return newError(KindConflict, "another reservation already holds this table on %s", day).
					with("tableId", *r.TableID).
					with("day", day.String())
			}
		}

		changed, err := tx.UpdateReservationStatus(ctx, id, from, to, slot)
		if err != nil {
			return err
		}
		if !changed {
			return newError(KindConflict, "reservation #%d was modified concurrently, retry", id)
		}

		return recordEvent(ctx, tx, events.AggregateReservation, id, events.ReservationStatusChanged, events.StatusChange{
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
		"reservation_id": id,
		"from":           from,
		"to":             to,
	}).Info("Reservation status changed")

	return s.store.FindReservation(ctx, id)
}

// Delete removes a reservation. Administrators may delete any, clients only their own.
func (s *ReservationService) Delete(ctx context.Context, id uint, actor *models.Identity) error {
	if actor == nil {
		return newError(KindUnauthorized, "authentication required")
	}

	return s.store.Transaction(ctx, func(tx *repository.Store) error {
		r, err := tx.FindReservation(ctx, id)
		if err != nil {
			return storeError(err, "reservation")
		}

		owner := actor.Is(models.RoleClient) && actor.Owns(r.UserID)
		if !actor.Is(models.RoleAdmin) && !owner {
			return newError(KindForbidden, "you can only delete your own reservations")
		}

		if err := tx.DeleteReservation(ctx, id); err != nil {
			return storeError(err, "reservation")
		}
		return recordEvent(ctx, tx, events.AggregateReservation, id, events.ReservationDeleted, events.StatusChange{
			From:      string(r.Status),
			ActorID:   actorID(actor),
			ActorRole: actorRole(actor),
		})
	})
}

func (s *ReservationService) List(ctx context.Context, in ReservationListInput, actor *models.Identity) ([]models.Reservation, error) {
	if actor == nil {
		return nil, newError(KindUnauthorized, "authentication required")
	}

	var filter repository.ReservationFilter
	if in.Status != "" {
		st, ok := models.ParseReservationStatus(in.Status)
		if !ok {
			return nil, newError(KindInvalidStatus, "invalid reservation status %q", in.Status).with("allowed", models.ReservationStatuses)
		}
		filter.Status = &st
	}
	if in.Type != "" {
		typ, ok := models.ParseReservationType(in.Type)
		if !ok {
			return nil, newError(KindValidation, "type must be %s or %s", models.ReservationDineIn, models.ReservationDelivery).with("field", "type")
		}
		filter.Type = &typ
	}
	if in.Date != "" {
		day, err := models.ParseDay(in.Date)
		if err != nil {
			return nil, newError(KindValidation, "%s", err.Error()).with("field", "date")
		}
		filter.Day = &day
	}

	switch actor.Role {
	case models.RoleClient:
		id := actor.UserID
		filter.UserID = &id
	case models.RoleCourier:
		if filter.Type != nil && *filter.Type != models.ReservationDelivery {
			return []models.Reservation{}, nil
		}
		delivery := models.ReservationDelivery
		filter.Type = &delivery
	}

	return s.store.ListReservations(ctx, filter)
}

func (s *ReservationService) Get(ctx context.Context, id uint, actor *models.Identity) (*models.Reservation, error) {
	if actor == nil {
		return nil, newError(KindUnauthorized, "authentication required")
	}
	r, err := s.store.FindReservation(ctx, id)
	if err != nil {
		return nil, storeError(err, "reservation")
	}

	switch actor.Role {
	case models.RoleClient:
		if !actor.Owns(r.UserID) {
			return nil, newError(KindForbidden, "you can only view your own reservations")
		}
	case models.RoleCourier:
		if r.Type != models.ReservationDelivery {
			return nil, newError(KindForbidden, "couriers can only view delivery reservations")
		}
	}
	return r, nil
}
