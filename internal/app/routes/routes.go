package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/salus-app/salus-backend/internal/app/controllers"
	"github.com/salus-app/salus-backend/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	symptomController *controllers.SymptomController,
	medicationController *controllers.MedicationController,
	wellnessController *controllers.WellnessController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.GET("/verify-email/:token", authController.VerifyEmail)
		auth.POST("/resend-verification", authController.ResendVerification)
		auth.POST("/forgot-password", authController.ForgotPassword)
		auth.POST("/reset-password", authController.ResetPassword)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authProtected := authenticated.Group("/auth")
		{
			authProtected.GET("/user", authController.GetProfile)
			authProtected.PUT("/user", authController.UpdateProfile)
			authProtected.PUT("/change-password", authController.ChangePassword)
		}

		users := authenticated.Group("/users")
		{
			users.GET("/:id", userController.GetUser)
			users.PUT("/:id", userController.UpdateUser)
			users.DELETE("/:id", userController.DeleteUser)
		}

		symptoms := authenticated.Group("/symptoms")
		{
			symptoms.POST("", symptomController.CreateSymptom)
			symptoms.GET("/:userId", symptomController.GetSymptoms)
			symptoms.GET("/:userId/:id", symptomController.GetSymptom)
			symptoms.PUT("/:id", symptomController.UpdateSymptom)
			symptoms.DELETE("/:id", symptomController.DeleteSymptom)
		}

		medications := authenticated.Group("/medications")
		{
			medications.POST("", medicationController.CreateMedication)
			medications.GET("/:userId", medicationController.GetMedications)
			medications.GET("/:userId/active", medicationController.GetActiveMedications)
			medications.GET("/:userId/:id", medicationController.GetMedication)
			medications.PUT("/:id", medicationController.UpdateMedication)
			medications.DELETE("/:id", medicationController.DeleteMedication)
		}

		wellness := authenticated.Group("/wellness")
		{
			wellness.POST("", wellnessController.CreateWellnessLog)
			wellness.GET("/:userId", wellnessController.GetWellnessLogs)
			wellness.GET("/:userId/stats", wellnessController.GetWellnessStats)
			wellness.GET("/:userId/:id", wellnessController.GetWellnessLog)
			wellness.PUT("/:id", wellnessController.UpdateWellnessLog)
			wellness.DELETE("/:id", wellnessController.DeleteWellnessLog)
		}
	}
}
