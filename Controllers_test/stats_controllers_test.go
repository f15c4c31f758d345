package Controllers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, client := s.user("client@example.com", "CLIENT")
	_, admin := s.user("admin@example.com", "ADMIN")
	dishID := s.dish("Quiche", "9.50", true)
	s.dish("Cassoulet", "21.00", false)
	s.table("T1", 4)

	for i := 0; i < 2; i++ {
		code, env := s.do(http.MethodPost, "/orders", client, map[string]interface{}{
			"items": []map[string]interface{}{{"dishId": dishID, "qty": 2}},
		})
		require.Equal(t, http.StatusCreated, code, env.Message)
		if i == 0 {
			var o orderView
			decode(t, env.Data, &o)
			for _, st := range []string{"ACCEPTED", "EN_COURS", "LIVREE"} {
				code, _ := s.do(http.MethodPut, fmt.Sprintf("/orders/%d/status", o.ID), admin, map[string]string{"status": st})
				require.Equal(t, http.StatusOK, code)
			}
		}
	}

	code, _ := s.do(http.MethodGet, "/stats", client, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.do(http.MethodGet, "/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := s.do(http.MethodGet, "/stats", admin, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var stats struct {
		Overview struct {
			TotalDishes     int64       `json:"totalDishes"`
			TotalOrders     int64       `json:"totalOrders"`
			TotalTables     int64       `json:"totalTables"`
			AvailableTables int64       `json:"availableTables"`
			TotalRevenue    json.Number `json:"totalRevenue"`
		} `json:"overview"`
		OrdersByStatus map[string]int64 `json:"ordersByStatus"`
		RecentOrders   int64            `json:"recentOrders"`
	}
	decode(t, env.Data, &stats)
	assert.EqualValues(t, 2, stats.Overview.TotalDishes)
	assert.EqualValues(t, 2, stats.Overview.TotalOrders)
	assert.EqualValues(t, 1, stats.Overview.TotalTables)
	assert.EqualValues(t, 1, stats.Overview.AvailableTables)
	assert.Equal(t, json.Number("19.00"), stats.Overview.TotalRevenue)
	assert.EqualValues(t, 1, stats.OrdersByStatus["LIVREE"])
	assert.EqualValues(t, 1, stats.OrdersByStatus["PENDING"])
	assert.EqualValues(t, 2, stats.RecentOrders)

	code, env = s.do(http.MethodGet, "/stats?startDate=2099-01-01", admin, nil)
	require.Equal(t, http.StatusOK, code)
	decode(t, env.Data, &stats)
	assert.EqualValues(t, 0, stats.Overview.TotalOrders)

	code, _ = s.do(http.MethodGet, "/stats?startDate=2024-02-01&endDate=2024-01-01", admin, nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
