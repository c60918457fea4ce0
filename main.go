package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"barbershop-backend/config"
	"barbershop-backend/models"
	"barbershop-backend/repository"
	"barbershop-backend/routes"
	"barbershop-backend/services"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.MasterService{},
		&models.ScheduleSlot{},
		&models.Appointment{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	repos := repository.NewRepositories(db)
	txManager := repository.NewGormTxManager(db)

	booking := services.NewBookingService(repos, txManager)
	schedule := services.NewScheduleService(repos, txManager)

	reminders := services.NewReminderService(db)
	reminders.StartScheduler()
	defer reminders.StopScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := routes.SetupRouter(db, booking, schedule)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Server listening on port %s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}
