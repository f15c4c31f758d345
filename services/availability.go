package services

import (
	"sort"

	"github.com/yeremiapane/restaurant-booking/models"
)

// TableAvailability is a table annotated for one calendar day. It is derived
// on every read and never stored.
type TableAvailability struct {
	models.Table
	AvailableToday      bool                 `json:"availableToday"`
	HasReservationToday bool                 `json:"hasReservationToday"`
	Reservations        []models.Reservation `json:"reservations"`
}

// ProjectAvailability joins tables with the active reservations falling on day.
// A table is available when its admin flag is on and nothing holds it that day.
func ProjectAvailability(tables []models.Table, reservations []models.Reservation, day models.Day) []TableAvailability {
	held := make(map[uint][]models.Reservation)
	for _, r := range reservations {
		if r.TableID == nil || !r.Status.Active() || models.DayOf(r.Date) != day {
			continue
		}
		held[*r.TableID] = append(held[*r.TableID], r)
	}

	out := make([]TableAvailability, 0, len(tables))
	for _, t := range tables {
		booked := held[t.ID]
		if booked == nil {
			booked = []models.Reservation{}
		}
		out = append(out, TableAvailability{
			Table:               t,
			AvailableToday:      t.Available && len(booked) == 0,
			HasReservationToday: len(booked) > 0,
			Reservations:        booked,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
