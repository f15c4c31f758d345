package models

// Identity is the caller resolved from a verified bearer token.
// A nil *Identity is an anonymous caller.
type Identity struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   Role   `json:"role"`
}

func (i *Identity) Is(role Role) bool {
	return i != nil && i.Role == role
}

// Owns reports whether the identity is the owner recorded in userID.
func (i *Identity) Owns(userID *uint) bool {
	return i != nil && userID != nil && *userID == i.UserID
}
