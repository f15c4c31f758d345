package Controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reservationView struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Day     string `json:"day"`
	Type    string `json:"type"`
	TableID *uint  `json:"tableId"`
	UserID  *uint  `json:"userId"`
	Status  string `json:"status"`
}

func TestReservationSameDayConflict(t *testing.T) {
	s := newTestServer(t)
	_, client := s.user("client@example.com", "CLIENT")
	tableID := s.table("T1", 4)

	book := func(date string) (int, envelope) {
		return s.do(http.MethodPost, "/reservations", client, map[string]interface{}{
			"date": date, "type": "SUR_PLACE", "tableId": tableID, "guests": 2,
		})
	}

	code, env := book("2099-06-01T19:00:00Z")
	require.Equal(t, http.StatusCreated, code, env.Message)
	var r reservationView
	decode(t, env.Data, &r)
	assert.Equal(t, "PENDING", r.Status)
	assert.Equal(t, "2099-06-01", r.Day)
	assert.Equal(t, "client", r.Name)

	code, env = book("2099-06-01T12:00:00Z")
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Errors.Kind)

	code, _ = book("2099-06-02T12:00:00Z")
	assert.Equal(t, http.StatusCreated, code)

	code, _ = s.do(http.MethodPost, "/reservations", client, map[string]interface{}{
		"date": "2099-06-03", "type": "SUR_PLACE", "tableId": tableID, "guests": 5,
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(http.MethodPost, "/reservations", client, map[string]interface{}{
		"date": "2099-06-03", "type": "SUR_PLACE", "tableId": 999,
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", env.Errors.Kind)
}

func TestReservationValidationErrors(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/reservations", "", map[string]interface{}{"name": "Walk-in"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Errors.Kind)
	assert.ElementsMatch(t, []interface{}{"date", "type"}, env.Errors.Details["missing"])

	code, env = s.do(http.MethodPost, "/reservations", "", map[string]interface{}{"date": "2099-06-01", "type": "TAKEAWAY"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "type", env.Errors.Details["field"])

	code, env = s.do(http.MethodPost, "/reservations", "", map[string]interface{}{"date": "2001-01-01", "type": "LIVRAISON"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "date", env.Errors.Details["field"])

	code, _ = s.do(http.MethodPost, "/reservations", "not-a-token", map[string]interface{}{"date": "2099-06-01", "type": "LIVRAISON"})
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestReservationStatusAndDelete(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.user("alice@example.com", "CLIENT")
	_, bob := s.user("bob@example.com", "CLIENT")
	_, admin := s.user("admin@example.com", "ADMIN")
	tableID := s.table("T1", 4)

	code, env := s.do(http.MethodPost, "/reservations", alice, map[string]interface{}{
		"date": "2099-06-01T19:00:00Z", "type": "SUR_PLACE", "tableId": tableID,
	})
	require.Equal(t, http.StatusCreated, code)
	var r reservationView
	decode(t, env.Data, &r)
	statusPath := fmt.Sprintf("/reservations/%d/status", r.ID)

	code, _ = s.do(http.MethodPut, statusPath, alice, map[string]string{"status": "CONFIRMED"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.do(http.MethodPut, statusPath, admin, map[string]string{"status": "DONE"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_STATUS", env.Errors.Kind)

	code, env = s.do(http.MethodPut, statusPath, admin, map[string]string{"status": "CONFIRMED"})
	require.Equal(t, http.StatusOK, code)
	decode(t, env.Data, &r)
	assert.Equal(t, "CONFIRMED", r.Status)

	code, _ = s.do(http.MethodPut, statusPath, admin, map[string]string{"status": "PENDING"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPut, statusPath, admin, map[string]string{"status": "CANCELLED"})
	require.Equal(t, http.StatusOK, code)

	// the cancelled booking frees the table for that day
	code, env = s.do(http.MethodPost, "/reservations", bob, map[string]interface{}{
		"date": "2099-06-01T20:00:00Z", "type": "SUR_PLACE", "tableId": tableID,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var bobs reservationView
	decode(t, env.Data, &bobs)

	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/reservations/%d", bobs.ID), alice, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/reservations/%d", bobs.ID), bob, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/reservations/%d", r.ID), admin, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodDelete, fmt.Sprintf("/reservations/%d", r.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestReservationListScoping(t *testing.T) {
	s := newTestServer(t)
	_, alice := s.user("alice@example.com", "CLIENT")
	_, bob := s.user("bob@example.com", "CLIENT")
	_, admin := s.user("admin@example.com", "ADMIN")
	_, courier := s.user("courier@example.com", "LIVREUR")
	tableID := s.table("T1", 4)

	create := func(token string, body map[string]interface{}) reservationView {
		code, env := s.do(http.MethodPost, "/reservations", token, body)
		require.Equal(t, http.StatusCreated, code, env.Message)
		var r reservationView
		decode(t, env.Data, &r)
		return r
	}
	dineIn := create(alice, map[string]interface{}{"date": "2099-06-01", "type": "SUR_PLACE", "tableId": tableID})
	delivery := create(alice, map[string]interface{}{"date": "2099-06-02", "type": "LIVRAISON"})
	create(bob, map[string]interface{}{"date": "2099-06-02", "type": "LIVRAISON"})
	anonymous := create("", map[string]interface{}{"name": "Guest", "date": "2099-06-03", "type": "LIVRAISON"})
	assert.Nil(t, anonymous.UserID)
	assert.Equal(t, "Guest", anonymous.Name)

	count := func(token, query string) int {
		code, env := s.do(http.MethodGet, "/reservations"+query, token, nil)
		require.Equal(t, http.StatusOK, code, env.Message)
		var list []reservationView
		decode(t, env.Data, &list)
		return len(list)
	}
	assert.Equal(t, 2, count(alice, ""))
	assert.Equal(t, 1, count(bob, ""))
	assert.Equal(t, 4, count(admin, ""))
	assert.Equal(t, 2, count(admin, "?date=2099-06-02"))
	assert.Equal(t, 1, count(admin, "?type=SUR_PLACE"))
	assert.Equal(t, 3, count(courier, ""))
	assert.Equal(t, 0, count(courier, "?type=SUR_PLACE"))

	code, _ := s.do(http.MethodGet, "/reservations", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = s.do(http.MethodGet, "/reservations?date=tomorrow", admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodGet, fmt.Sprintf("/reservations/%d", dineIn.ID), bob, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodGet, fmt.Sprintf("/reservations/%d", dineIn.ID), courier, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodGet, fmt.Sprintf("/reservations/%d", delivery.ID), courier, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = s.do(http.MethodGet, fmt.Sprintf("/reservations/%d", delivery.ID), alice, nil)
	assert.Equal(t, http.StatusOK, code)
}
