package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hms-backend/controllers"
	"hms-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires all controllers onto the /api surface.
func SetupRouter(
	rc *controllers.ReservationController,
	uc *controllers.UnitController,
	cc *controllers.CustomerController,
	pc *controllers.PaymentController,
	rfc *controllers.RefundController,
	fc *controllers.FeedbackController,
	sc *controllers.StaffController,
	stc *controllers.SettingsController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		units := api.Group("/units")
		{
			units.GET("", uc.GetUnits)

			// must stay ahead of /:id
			units.GET("/available", uc.GetAvailableUnits)

			units.GET("/:id", uc.GetUnitByID)
			units.GET("/:id/reservations", rc.ListUnitReservations)
			units.POST("", uc.CreateUnit)
			units.PATCH("/:id", uc.UpdateUnit)
			units.PUT("/:id", uc.UpdateUnit)
			units.DELETE("/:id", uc.DeleteUnit)
		}

		unitTypes := api.Group("/unit-types")
		{
			unitTypes.GET("", uc.GetUnitTypes)
			unitTypes.POST("", uc.CreateUnitType)
			unitTypes.DELETE("/:id", uc.DeleteUnitType)
		}

		reservations := api.Group("/reservations")
		{
			reservations.GET("", rc.GetReservations)
			reservations.POST("", rc.CreateReservation)
			reservations.GET("/:id", rc.GetReservationDetails)

			reservations.POST("/:id/confirm", rc.ConfirmReservation)
			reservations.POST("/:id/checkin", rc.CheckInReservation)
			reservations.POST("/:id/checkout", rc.CheckOutReservation)
			reservations.POST("/:id/cancel", rc.CancelReservation)
			reservations.POST("/:id/reschedule", rc.RescheduleReservation)
		}

		customers := api.Group("/customers")
		{
			customers.GET("", cc.GetCustomers)
			customers.POST("", cc.CreateCustomer)
			customers.GET("/:id", cc.GetCustomerByID)
			customers.GET("/:id/reservations", cc.GetCustomerReservations)
		}

		payments := api.Group("/payment-proofs")
		{
			payments.GET("/pending", pc.GetPendingProofs)
			payments.POST("", pc.SubmitProof)
			payments.POST("/:id/approve", pc.ApproveProof)
			payments.POST("/:id/reject", pc.RejectProof)
		}

		refunds := api.Group("/refunds")
		{
			refunds.GET("", rfc.GetRefundRequests)
			refunds.POST("", rfc.CreateRefundRequest)
			refunds.POST("/:id/review", rfc.ReviewRefundRequest)
		}

		feedback := api.Group("/feedback")
		{
			feedback.GET("", fc.GetFeedback)
			feedback.POST("", fc.CreateFeedback)
			feedback.DELETE("/:id", fc.DeleteFeedback)
		}

		admins := api.Group("/admins")
		{
			admins.GET("", sc.GetAdmins)
			admins.POST("", sc.CreateAdmin)
			admins.DELETE("/:id", sc.DeleteAdmin)
		}

		roles := api.Group("/roles")
		{
			roles.GET("", sc.GetRoles)
			roles.PUT("/:id/permissions", sc.UpdateRolePermissions)
		}

		settings := api.Group("/settings")
		{
			settings.GET("/hotel", stc.GetHotelSettings)
			settings.PUT("/hotel", stc.UpdateHotelSettings)
		}
	}

	return r
}
