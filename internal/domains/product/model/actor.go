package model

import "github.com/google/uuid"

// Role names carried in the access token
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// Actor - Caller identity đã xác thực (resolved từ JWT ở middleware)
type Actor struct {
	ID           uuid.UUID
	IsPrivileged bool
}

// NewActor - admin là privileged, các role khác thì không
func NewActor(id uuid.UUID, role string) Actor {
	return Actor{ID: id, IsPrivileged: role == RoleAdmin}
}

// CanModify - Ownership rule: privileged hoặc chính chủ
func (a Actor) CanModify(p *Product) bool {
	return a.IsPrivileged || p.SellerID == a.ID
}
