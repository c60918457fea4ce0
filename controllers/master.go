// controllers/master.go
package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"barbershop-backend/models"
	"barbershop-backend/services"
	"barbershop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ScheduleWorkflow is the slice of ScheduleService the master handlers need.
type ScheduleWorkflow interface {
	CreateSchedule(ctx context.Context, masterID uuid.UUID, date time.Time, slots []services.SlotInput) error
	GetSchedule(ctx context.Context, masterID uuid.UUID, date *time.Time) ([]models.ScheduleSlot, error)
}

type MasterController struct {
	schedule ScheduleWorkflow
	db       *gorm.DB
}

func NewMasterController(schedule ScheduleWorkflow, db *gorm.DB) *MasterController {
	return &MasterController{schedule: schedule, db: db}
}

// MasterRow is the public master listing shape
type MasterRow struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Phone     string    `json:"phone"`
	AvatarURL string    `json:"avatarUrl"`
}

type masterWithServices struct {
	MasterRow
	Services []string `json:"services"`
}

// GetMasters lists all masters with the names of the services they perform
func (mc *MasterController) GetMasters(c *gin.Context) {
	var masters []models.User
	if err := mc.db.Where("role = ?", models.RoleMaster).Order("first_name").Find(&masters).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve masters")
		return
	}

	result := make([]masterWithServices, 0, len(masters))
	for _, master := range masters {
		var names []string
		err := mc.db.
			Table("services s").
			Select("s.name").
			Joins("JOIN master_services ms ON s.id = ms.service_id").
			Where("ms.master_id = ?", master.ID).
			Order("s.name").
			Pluck("s.name", &names).Error
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve masters")
			return
		}
		result = append(result, masterWithServices{
			MasterRow: MasterRow{
				ID:        master.ID,
				FirstName: master.FirstName,
				LastName:  master.LastName,
				Phone:     master.Phone,
				AvatarURL: master.AvatarURL,
			},
			Services: names,
		})
	}

	c.JSON(http.StatusOK, gin.H{"masters": result})
}

// GetMaster retrieves a master by ID (admin)
func (mc *MasterController) GetMaster(c *gin.Context) {
	masterUUID, err := uuid.Parse(c.Param("masterId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid master ID format")
		return
	}

	var master models.User
	err = mc.db.Where("id = ? AND role = ?", masterUUID, models.RoleMaster).First(&master).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Master not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, master)
}

// CreateMasterInput defines the admin payload for creating a master
type CreateMasterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatarUrl"`
}

// CreateMaster creates a new master account (admin)
func (mc *MasterController) CreateMaster(c *gin.Context) {
	var input CreateMasterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var existing models.User
	result := mc.db.Where("email = ?", input.Email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	master := models.User{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		AvatarURL: input.AvatarURL,
		Role:      models.RoleMaster,
		IsActive:  true,
	}

	if err := mc.db.Create(&master).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create master")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"master":  master,
		"message": "Master created successfully",
	})
}

// UpdateMasterInput defines the admin payload for editing a master
type UpdateMasterInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatarUrl"`
	IsActive  *bool   `json:"isActive"`
}

// UpdateMaster edits a master account (admin)
func (mc *MasterController) UpdateMaster(c *gin.Context) {
	masterUUID, err := uuid.Parse(c.Param("masterId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid master ID format")
		return
	}

	var input UpdateMasterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var master models.User
	err = mc.db.Where("id = ? AND role = ?", masterUUID, models.RoleMaster).First(&master).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Master not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.FirstName != nil {
		master.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		master.LastName = *input.LastName
	}
	if input.Phone != nil {
		master.Phone = *input.Phone
	}
	if input.AvatarURL != nil {
		master.AvatarURL = *input.AvatarURL
	}
	if input.IsActive != nil {
		master.IsActive = *input.IsActive
	}

	if err := mc.db.Save(&master).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update master")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"master":  master,
		"message": "Master updated successfully",
	})
}

// DeleteMaster removes a master account (admin)
func (mc *MasterController) DeleteMaster(c *gin.Context) {
	masterUUID, err := uuid.Parse(c.Param("masterId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid master ID format")
		return
	}

	var count int64
	err = mc.db.Model(&models.Appointment{}).
		Where("master_id = ? AND status = ?", masterUUID, models.AppointmentScheduled).
		Count(&count).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete a master with scheduled appointments")
		return
	}

	result := mc.db.Where("id = ? AND role = ?", masterUUID, models.RoleMaster).Delete(&models.User{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete master")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Master not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Master deleted successfully"})
}

// GetMasterSchedule returns a master's slots, for one date or the next
// two weeks when no date is given
func (mc *MasterController) GetMasterSchedule(c *gin.Context) {
	masterUUID, err := uuid.Parse(c.Param("masterId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid master ID format")
		return
	}

	var date *time.Time
	if dateParam := c.Query("date"); dateParam != "" {
		parsed, err := utils.ParseDate(dateParam)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		date = &parsed
	}

	slots, err := mc.schedule.GetSchedule(c.Request.Context(), masterUUID, date)
	if err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"schedule": slots})
}

// TimeSlotInput is one (start, end) pair of a day's schedule
type TimeSlotInput struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}

// CreateScheduleInput defines the master self-service schedule payload
type CreateScheduleInput struct {
	Date      string          `json:"date" binding:"required"`
	TimeSlots []TimeSlotInput `json:"timeSlots" binding:"required,min=1"`
}

// CreateSchedule replaces the authenticated master's open slots for a date
func (mc *MasterController) CreateSchedule(c *gin.Context) {
	masterID, ok := callerID(c)
	if !ok {
		return
	}

	var input CreateScheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date and time slots are required")
		return
	}

	date, err := utils.ParseDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
		return
	}

	slots := make([]services.SlotInput, 0, len(input.TimeSlots))
	for _, slot := range input.TimeSlots {
		slots = append(slots, services.SlotInput{StartTime: slot.StartTime, EndTime: slot.EndTime})
	}

	if err := mc.schedule.CreateSchedule(c.Request.Context(), masterID, date, slots); err != nil {
		respondWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Schedule created successfully"})
}

type masterStats struct {
	TotalAppointments     int64   `json:"totalAppointments"`
	CompletedAppointments int64   `json:"completedAppointments"`
	CancelledAppointments int64   `json:"cancelledAppointments"`
	TotalEarnings         float64 `json:"totalEarnings"`
	AvgAppointmentPrice   float64 `json:"avgAppointmentPrice"`
}

// GetMasterStats reports the authenticated master's 30-day statistics
// and today's appointments
func (mc *MasterController) GetMasterStats(c *gin.Context) {
	masterID, ok := callerID(c)
	if !ok {
		return
	}

	since := utils.BeginningOfDay(time.Now()).AddDate(0, 0, -30)

	var stats masterStats
	err := mc.db.
		Table("appointments").
		Select(`COUNT(*) as total_appointments,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) as completed_appointments,
			COUNT(CASE WHEN status = 'cancelled' THEN 1 END) as cancelled_appointments,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN total_price ELSE 0 END), 0) as total_earnings,
			COALESCE(AVG(CASE WHEN status = 'completed' THEN total_price END), 0) as avg_appointment_price`).
		Where("master_id = ? AND appointment_date >= ?", masterID, since).
		Scan(&stats).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	today := utils.BeginningOfDay(time.Now())
	var todayAppointments []AppointmentRow
	err = mc.db.
		Table("appointments a").
		Select(`a.id, a.appointment_date, a.start_time, a.end_time, a.total_price, a.status, a.created_at,
			s.name as service_name,
			cl.first_name || ' ' || cl.last_name as client_name`).
		Joins("JOIN services s ON a.service_id = s.id").
		Joins("JOIN users cl ON a.client_id = cl.id").
		Where("a.master_id = ? AND a.appointment_date = ?", masterID, today).
		Order("a.start_time").
		Scan(&todayAppointments).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats":             stats,
		"todayAppointments": todayAppointments,
	})
}

// GetMasterServices lists the active services a master performs
func (mc *MasterController) GetMasterServices(c *gin.Context) {
	masterUUID, err := uuid.Parse(c.Param("masterId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid master ID format")
		return
	}

	var result []models.Service
	err = mc.db.
		Table("services s").
		Select("s.*").
		Joins("JOIN master_services ms ON s.id = ms.service_id").
		Where("ms.master_id = ? AND s.is_active = ?", masterUUID, true).
		Order("s.name").
		Scan(&result).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": result})
}

// UpdateMasterServicesInput replaces the set of services a master performs
type UpdateMasterServicesInput struct {
	ServiceIDs []uuid.UUID `json:"serviceIds" binding:"required"`
}

// UpdateMasterServices rewrites the master_services join rows (admin)
func (mc *MasterController) UpdateMasterServices(c *gin.Context) {
	masterUUID, err := uuid.Parse(c.Param("masterId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid master ID format")
		return
	}

	var input UpdateMasterServicesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "serviceIds must be an array")
		return
	}

	err = mc.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("master_id = ?", masterUUID).Delete(&models.MasterService{}).Error; err != nil {
			return err
		}
		for _, serviceID := range input.ServiceIDs {
			link := models.MasterService{MasterID: masterUUID, ServiceID: serviceID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update master services")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Master services updated successfully"})
}
