// controllers/appointment.go
package controllers

import (
	"context"
	"net/http"
	"time"

	"barbershop-backend/models"
	"barbershop-backend/services"
	"barbershop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BookingWorkflow is the slice of BookingService the appointment
// handlers need.
type BookingWorkflow interface {
	CreateAppointment(ctx context.Context, clientID uuid.UUID, in services.CreateAppointmentInput) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID) error
	CompleteAppointment(ctx context.Context, callerID uuid.UUID, callerRole string, id uuid.UUID, notes string) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, id uuid.UUID, in services.UpdateAppointmentInput) (*models.Appointment, error)
	DeleteAppointment(ctx context.Context, id uuid.UUID) error
}

type AppointmentController struct {
	booking BookingWorkflow
	db      *gorm.DB
}

func NewAppointmentController(booking BookingWorkflow, db *gorm.DB) *AppointmentController {
	return &AppointmentController{booking: booking, db: db}
}

// CreateAppointmentInput defines the expected JSON structure for booking
type CreateAppointmentInput struct {
	ServiceID       uuid.UUID `json:"serviceId" binding:"required"`
	MasterID        uuid.UUID `json:"masterId" binding:"required"`
	AppointmentDate string    `json:"appointmentDate" binding:"required"`
	StartTime       string    `json:"startTime" binding:"required"`
}

// AppointmentRow is a joined appointment view for listings
type AppointmentRow struct {
	ID              uuid.UUID `json:"id"`
	AppointmentDate time.Time `json:"appointmentDate"`
	StartTime       string    `json:"startTime"`
	EndTime         string    `json:"endTime"`
	TotalPrice      float64   `json:"totalPrice"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"createdAt"`
	ServiceName     string    `json:"serviceName"`
	MasterName      string    `json:"masterName,omitempty"`
	MasterPhone     string    `json:"masterPhone,omitempty"`
	ClientName      string    `json:"clientName,omitempty"`
	ClientPhone     string    `json:"clientPhone,omitempty"`
}

// CreateAppointment books a slot for the authenticated client
func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	clientID, ok := callerID(c)
	if !ok {
		return
	}

	var input CreateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Service, master, date and start time are required")
		return
	}

	date, err := utils.ParseDate(input.AppointmentDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return
	}

	appointment, err := ac.booking.CreateAppointment(c.Request.Context(), clientID, services.CreateAppointmentInput{
		MasterID:  input.MasterID,
		ServiceID: input.ServiceID,
		Date:      date,
		StartTime: input.StartTime,
	})
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment": appointment,
		"message":     "Appointment created successfully",
	})
}

// GetClientAppointments lists the authenticated client's appointments
func (ac *AppointmentController) GetClientAppointments(c *gin.Context) {
	clientID, ok := callerID(c)
	if !ok {
		return
	}

	var rows []AppointmentRow
	err := ac.db.
		Table("appointments a").
		Select(`a.id, a.appointment_date, a.start_time, a.end_time, a.total_price, a.status, a.notes, a.created_at,
			s.name as service_name,
			m.first_name || ' ' || m.last_name as master_name,
			m.phone as master_phone`).
		Joins("JOIN services s ON a.service_id = s.id").
		Joins("JOIN users m ON a.master_id = m.id").
		Where("a.client_id = ?", clientID).
		Order("a.appointment_date DESC, a.start_time DESC").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": rows})
}

// GetMasterAppointments lists the authenticated master's appointments,
// optionally filtered by ?date=YYYY-MM-DD
func (ac *AppointmentController) GetMasterAppointments(c *gin.Context) {
	masterID, ok := callerID(c)
	if !ok {
		return
	}

	query := ac.db.
		Table("appointments a").
		Select(`a.id, a.appointment_date, a.start_time, a.end_time, a.total_price, a.status, a.notes, a.created_at,
			s.name as service_name,
			cl.first_name || ' ' || cl.last_name as client_name,
			cl.phone as client_phone`).
		Joins("JOIN services s ON a.service_id = s.id").
		Joins("JOIN users cl ON a.client_id = cl.id").
		Where("a.master_id = ?", masterID)

	if dateParam := c.Query("date"); dateParam != "" {
		date, err := utils.ParseDate(dateParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		query = query.Where("a.appointment_date = ?", date)
	}

	var rows []AppointmentRow
	if err := query.Order("a.appointment_date DESC, a.start_time DESC").Scan(&rows).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": rows})
}

// GetAllAppointments lists every appointment (admin)
func (ac *AppointmentController) GetAllAppointments(c *gin.Context) {
	var rows []AppointmentRow
	err := ac.db.
		Table("appointments a").
		Select(`a.id, a.appointment_date, a.start_time, a.end_time, a.total_price, a.status, a.notes, a.created_at,
			s.name as service_name,
			cl.first_name || ' ' || cl.last_name as client_name,
			cl.phone as client_phone,
			m.first_name || ' ' || m.last_name as master_name`).
		Joins("JOIN services s ON a.service_id = s.id").
		Joins("JOIN users cl ON a.client_id = cl.id").
		Joins("JOIN users m ON a.master_id = m.id").
		Order("a.appointment_date DESC, a.start_time DESC").
		Scan(&rows).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load appointments")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": rows})
}

// CancelAppointment cancels an appointment and frees its slot
func (ac *AppointmentController) CancelAppointment(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	if err := ac.booking.CancelAppointment(c.Request.Context(), caller, c.GetString("role"), id); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled successfully"})
}

// CompleteAppointmentInput carries the optional completion notes
type CompleteAppointmentInput struct {
	Notes string `json:"notes"`
}

// CompleteAppointment marks an appointment as completed
func (ac *AppointmentController) CompleteAppointment(c *gin.Context) {
	caller, ok := callerID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input CompleteAppointmentInput
	// Body is optional
	_ = c.ShouldBindJSON(&input)

	appointment, err := ac.booking.CompleteAppointment(c.Request.Context(), caller, c.GetString("role"), id, input.Notes)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": appointment,
		"message":     "Appointment completed successfully",
	})
}

// UpdateAppointmentInput defines the admin edit payload
type UpdateAppointmentInput struct {
	ServiceID       *uuid.UUID `json:"serviceId"`
	MasterID        *uuid.UUID `json:"masterId"`
	AppointmentDate *string    `json:"appointmentDate"`
	StartTime       *string    `json:"startTime"`
	Status          *string    `json:"status"`
	Notes           *string    `json:"notes"`
}

// UpdateAppointment is the administrative edit endpoint
func (ac *AppointmentController) UpdateAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	var input UpdateAppointmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	patch := services.UpdateAppointmentInput{
		ServiceID: input.ServiceID,
		MasterID:  input.MasterID,
		StartTime: input.StartTime,
		Status:    input.Status,
		Notes:     input.Notes,
	}
	if input.AppointmentDate != nil {
		date, err := utils.ParseDate(*input.AppointmentDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		patch.Date = &date
	}

	appointment, err := ac.booking.UpdateAppointment(c.Request.Context(), id, patch)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": appointment,
		"message":     "Appointment updated successfully",
	})
}

// DeleteAppointment permanently removes an appointment (admin)
func (ac *AppointmentController) DeleteAppointment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid appointment ID format")
		return
	}

	if err := ac.booking.DeleteAppointment(c.Request.Context(), id); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully"})
}
