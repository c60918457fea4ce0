package services

import (
	"barbershop-backend/models"

	"github.com/google/uuid"
)

// Access policy for acting on an existing appointment. Role checks live
// here, in one place, rather than scattered across handlers.

// CanCancelAppointment permits the owning client, the assigned master,
// or an administrator.
func CanCancelAppointment(role string, callerID uuid.UUID, a *models.Appointment) bool {
	if role == models.RoleAdmin {
		return true
	}
	return callerID == a.ClientID || callerID == a.MasterID
}

// CanCompleteAppointment permits the assigned master or an administrator.
func CanCompleteAppointment(role string, callerID uuid.UUID, a *models.Appointment) bool {
	if role == models.RoleAdmin {
		return true
	}
	return role == models.RoleMaster && callerID == a.MasterID
}
