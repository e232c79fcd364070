package identity

import "github.com/BruksfildServices01/salon-scheduler/internal/models"

// Actor is the authenticated caller as reloaded from storage.
type Actor struct {
	UserID uint
	Role   string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Owns reports whether the actor is the owner of a record held by userID.
func (a Actor) Owns(userID uint) bool {
	return a.UserID != 0 && a.UserID == userID
}

// CanAccess is true for the owner or an admin.
func (a Actor) CanAccess(userID uint) bool {
	return a.IsAdmin() || a.Owns(userID)
}
