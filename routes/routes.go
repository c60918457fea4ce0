package routes

import (
	"os"
	"strings"

	"barbershop-backend/config"
	"barbershop-backend/controllers"
	"barbershop-backend/services"
	"barbershop-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, booking *services.BookingService, schedule *services.ScheduleService) *gin.Engine {
	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if env := os.Getenv("FRONTEND_URL"); env != "" {
		allowedOrigins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.RequestTimer())

	authController := controllers.NewAuthController(db)
	serviceController := controllers.NewServiceController(db)
	masterController := controllers.NewMasterController(schedule, db)
	clientController := controllers.NewClientController(db)
	appointmentController := controllers.NewAppointmentController(booking, db)

	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/profile", authController.GetProfile)
		auth.PUT("/profile", authController.UpdateProfile)
	}

	// Service routes
	servicesGroup := api.Group("/services")
	{
		servicesGroup.GET("", serviceController.GetServices)
		servicesGroup.GET("/:id", serviceController.GetService)
		servicesGroup.GET("/:id/masters", serviceController.GetServiceMasters)

		admin := servicesGroup.Group("", utils.AuthMiddleware(), utils.RequireAdmin())
		{
			admin.POST("", serviceController.CreateService)
			admin.PUT("/:id", serviceController.UpdateService)
			admin.DELETE("/:id", serviceController.DeleteService)
			admin.GET("/admin/all", serviceController.GetAllServicesForAdmin)
		}
	}

	// Master routes
	masters := api.Group("/masters")
	{
		masters.GET("", masterController.GetMasters)
		masters.GET("/:masterId/schedule", masterController.GetMasterSchedule)
		masters.GET("/:masterId/services", masterController.GetMasterServices)

		masters.POST("/schedule", utils.AuthMiddleware(), utils.RequireMaster(), masterController.CreateSchedule)
		masters.GET("/stats/me", utils.AuthMiddleware(), utils.RequireMaster(), masterController.GetMasterStats)

		admin := masters.Group("", utils.AuthMiddleware(), utils.RequireAdmin())
		{
			admin.GET("/:masterId", masterController.GetMaster)
			admin.POST("", masterController.CreateMaster)
			admin.PUT("/:masterId", masterController.UpdateMaster)
			admin.DELETE("/:masterId", masterController.DeleteMaster)
			admin.PUT("/:masterId/services", masterController.UpdateMasterServices)
		}
	}

	// Client routes
	clients := api.Group("/clients", utils.AuthMiddleware())
	{
		clients.GET("/stats/me", utils.RequireClient(), clientController.GetClientStats)

		admin := clients.Group("", utils.RequireAdmin())
		{
			admin.GET("", clientController.GetClients)
			admin.GET("/:id", clientController.GetClient)
			admin.POST("", clientController.CreateClient)
			admin.PUT("/:id", clientController.UpdateClient)
			admin.DELETE("/:id", clientController.DeleteClient)
		}
	}

	// Appointment routes
	appointments := api.Group("/appointments", utils.AuthMiddleware())
	{
		appointments.POST("", utils.RequireClient(), appointmentController.CreateAppointment)
		appointments.GET("/client", utils.RequireClient(), appointmentController.GetClientAppointments)
		appointments.GET("/master", utils.RequireMaster(), appointmentController.GetMasterAppointments)
		appointments.GET("/all", utils.RequireAdmin(), appointmentController.GetAllAppointments)

		appointments.PATCH("/:id/cancel", appointmentController.CancelAppointment)
		appointments.PATCH("/:id/complete", appointmentController.CompleteAppointment)

		appointments.PUT("/:id", utils.RequireAdmin(), appointmentController.UpdateAppointment)
		appointments.DELETE("/:id", utils.RequireAdmin(), appointmentController.DeleteAppointment)
	}

	return r
}
