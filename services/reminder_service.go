// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"barbershop-backend/models"
	"barbershop-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService sends SMS reminders for tomorrow's scheduled
// appointments via Twilio, driven by a daily cron job.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
	cron   *cron.Cron
}

func NewReminderService(db *gorm.DB) *ReminderService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	s.cron = cron.New()

	// Run every day at 9 AM
	s.cron.AddFunc("0 9 * * *", s.SendUpcomingReminders)

	s.cron.Start()
	log.Println("Appointment reminder scheduler started")
}

func (s *ReminderService) StopScheduler() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

type reminderRow struct {
	AppointmentID string
	ClientName    string
	ClientPhone   string
	MasterName    string
	ServiceName   string
	StartTime     string
}

// SendUpcomingReminders notifies every client with a scheduled
// appointment tomorrow.
func (s *ReminderService) SendUpcomingReminders() {
	log.Println("Starting appointment reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now()).AddDate(0, 0, 1)

	var rows []reminderRow
	err := s.db.
		Table("appointments a").
		Select(`a.id as appointment_id,
			c.first_name || ' ' || c.last_name as client_name,
			c.phone as client_phone,
			m.first_name || ' ' || m.last_name as master_name,
			s.name as service_name,
			a.start_time`).
		Joins("JOIN users c ON a.client_id = c.id").
		Joins("JOIN users m ON a.master_id = m.id").
		Joins("JOIN services s ON a.service_id = s.id").
		Where("a.appointment_date = ? AND a.status = ?", tomorrow, models.AppointmentScheduled).
		Scan(&rows).Error
	if err != nil {
		log.Printf("Failed to fetch tomorrow's appointments: %v", err)
		return
	}

	for _, row := range rows {
		if !utils.ValidatePhone(row.ClientPhone) {
			log.Printf("Appointment %s: skipping reminder, invalid phone %q", row.AppointmentID, row.ClientPhone)
			continue
		}

		message := fmt.Sprintf("Hi %s! Reminder: your %s with %s is tomorrow at %s. See you there!",
			row.ClientName, row.ServiceName, row.MasterName, row.StartTime)

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(row.ClientPhone)
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		params.SetBody(message)

		resp, err := s.client.Api.CreateMessage(params)
		if err != nil {
			log.Printf("Failed to send reminder to %s: %v", row.ClientPhone, err)
			continue
		}
		if resp.Sid != nil {
			log.Printf("Reminder sent to %s, SID: %s", row.ClientPhone, *resp.Sid)
		} else {
			log.Printf("Reminder sent to %s, but no SID returned", row.ClientPhone)
		}
	}

	log.Println("Appointment reminder processing completed")
}
