// controllers/client.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"barbershop-backend/models"
	"barbershop-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClientController struct {
	db *gorm.DB
}

func NewClientController(db *gorm.DB) *ClientController {
	return &ClientController{db: db}
}

// GetClients lists all clients (admin)
func (cc *ClientController) GetClients(c *gin.Context) {
	var clients []models.User
	err := cc.db.Where("role = ?", models.RoleClient).Order("created_at DESC").Find(&clients).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GetClient retrieves a client by ID (admin)
func (cc *ClientController) GetClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var client models.User
	err = cc.db.Where("id = ? AND role = ?", clientUUID, models.RoleClient).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// CreateClientInput defines the admin payload for creating a client
type CreateClientInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

// CreateClient creates a new client account (admin)
func (cc *ClientController) CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	result := cc.db.Where("email = ?", email).First(&existing)
	if result.Error == nil {
		utils.RespondWithError(c, http.StatusConflict, "Email already registered")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	client := models.User{
		Email:     email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Role:      models.RoleClient,
		IsActive:  true,
	}

	if err := cc.db.Create(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"client":  client,
		"message": "Client created successfully",
	})
}

// UpdateClientInput defines the admin payload for editing a client
type UpdateClientInput struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
	Password  *string `json:"password" binding:"omitempty,min=8"`
}

// UpdateClient edits a client account (admin)
func (cc *ClientController) UpdateClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client models.User
	err = cc.db.Where("id = ? AND role = ?", clientUUID, models.RoleClient).First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if email != client.Email {
			var count int64
			if err := cc.db.Model(&models.User{}).
				Where("email = ? AND id != ?", email, clientUUID).
				Count(&count).Error; err != nil {
				utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
				return
			}
			if count > 0 {
				utils.RespondWithError(c, http.StatusConflict, "Email already registered")
				return
			}
			client.Email = email
		}
	}
	if input.FirstName != nil {
		client.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		client.LastName = *input.LastName
	}
	if input.Phone != nil {
		client.Phone = *input.Phone
	}
	if input.Password != nil {
		hashed, err := utils.HashPassword(*input.Password)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update password")
			return
		}
		client.Password = hashed
	}

	if err := cc.db.Save(&client).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client":  client,
		"message": "Client updated successfully",
	})
}

// DeleteClient removes a client without scheduled appointments (admin)
func (cc *ClientController) DeleteClient(c *gin.Context) {
	clientUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var count int64
	err = cc.db.Model(&models.Appointment{}).
		Where("client_id = ? AND status = ?", clientUUID, models.AppointmentScheduled).
		Count(&count).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Cannot delete a client with scheduled appointments. Cancel them first.")
		return
	}

	result := cc.db.Where("id = ? AND role = ?", clientUUID, models.RoleClient).Delete(&models.User{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

type clientStats struct {
	TotalAppointments     int64   `json:"totalAppointments"`
	CompletedAppointments int64   `json:"completedAppointments"`
	ScheduledAppointments int64   `json:"scheduledAppointments"`
	CancelledAppointments int64   `json:"cancelledAppointments"`
	TotalSpent            float64 `json:"totalSpent"`
}

// GetClientStats reports the authenticated client's booking statistics
func (cc *ClientController) GetClientStats(c *gin.Context) {
	clientID, ok := callerID(c)
	if !ok {
		return
	}

	var stats clientStats
	err := cc.db.
		Table("appointments").
		Select(`COUNT(*) as total_appointments,
			COUNT(CASE WHEN status = 'completed' THEN 1 END) as completed_appointments,
			COUNT(CASE WHEN status = 'scheduled' THEN 1 END) as scheduled_appointments,
			COUNT(CASE WHEN status = 'cancelled' THEN 1 END) as cancelled_appointments,
			COALESCE(SUM(CASE WHEN status = 'completed' THEN total_price ELSE 0 END), 0) as total_spent`).
		Where("client_id = ?", clientID).
		Scan(&stats).Error
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load statistics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"stats": stats})
}
