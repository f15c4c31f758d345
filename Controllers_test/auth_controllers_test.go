package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authData struct {
	Token string `json:"token"`
	User  struct {
		ID       uint   `json:"id"`
		Email    string `json:"email"`
		Role     string `json:"role"`
		Password string `json:"password"`
	} `json:"user"`
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"name": "Léa", "email": "lea@example.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var reg authData
	decode(t, env.Data, &reg)
	assert.Equal(t, "CLIENT", reg.User.Role)
	assert.Empty(t, reg.User.Password, "password hash never serialised")
	assert.NotEmpty(t, reg.Token)

	code, env = s.do(http.MethodPost, "/auth/register", "", map[string]string{
		"email": "lea@example.com", "password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "CONFLICT", env.Errors.Kind)

	code, env = s.do(http.MethodPost, "/auth/register", "", map[string]string{"email": "bad", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Errors.Kind)

	code, _ = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "lea@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.do(http.MethodPost, "/auth/login", "", map[string]string{"email": "lea@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, code)
	var login authData
	decode(t, env.Data, &login)
	assert.Equal(t, reg.User.ID, login.User.ID)

	code, env = s.do(http.MethodGet, "/auth/profile", login.Token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "lea@example.com")

	code, _ = s.do(http.MethodGet, "/auth/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/auth/logout", login.Token, nil)
	require.Equal(t, http.StatusOK, code)
	code, env = s.do(http.MethodGet, "/auth/profile", login.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "token has been revoked", env.Message)
}

func TestPingAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)
	assert.Equal(t, "pong", env.Message)

	code, env = s.do(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.False(t, env.Status)
}

func TestMalformedBodyAndIDs(t *testing.T) {
	s := newTestServer(t)
	_, admin := s.user("admin@example.com", "ADMIN")

	code, env := s.do(http.MethodPost, "/tables", admin, "not an object")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Errors.Kind)

	code, env = s.do(http.MethodGet, "/tables/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "id", env.Errors.Details["field"])

	code, _ = s.do(http.MethodGet, "/dishes?available=maybe", "", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}
