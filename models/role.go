package models

import (
	"fmt"
	"strings"
)

// Role is the closed set of actor roles carried by an access token.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleClient  Role = "CLIENT"
	RoleCourier Role = "LIVREUR"
)

var Roles = []Role{RoleAdmin, RoleClient, RoleCourier}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleClient, RoleCourier:
		return r, nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}
