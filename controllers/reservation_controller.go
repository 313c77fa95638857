package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"hms-backend/models"
	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

type CreateReservationRequest struct {
	UnitID         uint                     `json:"unit_id" binding:"required"`
	CustomerID     uint                     `json:"customer_id" binding:"required"`
	CheckIn        string                   `json:"check_in" binding:"required"`
	CheckOut       string                   `json:"check_out" binding:"required"`
	NumberOfGuests int                      `json:"number_of_guests"`
	Notes          string                   `json:"notes"`
	Occupants      []map[string]interface{} `json:"occupants,omitempty"`
}

type RescheduleRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}

type ReservationController struct {
	Admission *services.AdmissionService
	Lifecycle *services.LifecycleService
}

func NewReservationController(admission *services.AdmissionService, lifecycle *services.LifecycleService) *ReservationController {
	return &ReservationController{Admission: admission, Lifecycle: lifecycle}
}

// parseStayDate accepts plain dates or full RFC3339 timestamps.
func parseStayDate(s string) (time.Time, bool) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func parseStayInterval(c *gin.Context, checkIn, checkOut string) (models.Interval, bool) {
	start, ok := parseStayDate(checkIn)
	if !ok {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidInterval", "check_in must be YYYY-MM-DD or RFC3339")
		return models.Interval{}, false
	}
	end, ok := parseStayDate(checkOut)
	if !ok {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidInterval", "check_out must be YYYY-MM-DD or RFC3339")
		return models.Interval{}, false
	}
	return models.Interval{Start: start, End: end}, true
}

// ---------------------------
// 1) Request reservation (admission)
// ---------------------------

func (ctrl *ReservationController) CreateReservation(c *gin.Context) {
	var payload CreateReservationRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	iv, ok := parseStayInterval(c, payload.CheckIn, payload.CheckOut)
	if !ok {
		return
	}

	var occupants []byte
	if len(payload.Occupants) > 0 {
		occupants, _ = json.Marshal(payload.Occupants) // best-effort
	}

	reservation, err := ctrl.Admission.RequestReservation(services.AdmissionRequest{
		UnitID:         payload.UnitID,
		CustomerID:     payload.CustomerID,
		Interval:       iv,
		NumberOfGuests: payload.NumberOfGuests,
		Notes:          payload.Notes,
		Occupants:      occupants,
	})
	if err != nil {
		log.Printf("CreateReservation rejected (unit=%d): %v", payload.UnitID, err)
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": reservation})
}

// ---------------------------
// 2) Listings and details
// ---------------------------

func (ctrl *ReservationController) GetReservations(c *gin.Context) {
	list, err := ctrl.Lifecycle.GetAllWithRelations()
	if err != nil {
		log.Printf("GetReservations error: %v", err)
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchReservations", "could not fetch reservations")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *ReservationController) GetReservationDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	reservation, err := ctrl.Lifecycle.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, reservation)
}

// ListUnitReservations renders the blocking calendar of one unit.
func (ctrl *ReservationController) ListUnitReservations(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	list, err := ctrl.Admission.ListActiveReservations(id)
	if err != nil {
		log.Printf("ListUnitReservations error (unit=%d): %v", id, err)
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchReservations", "could not fetch unit reservations")
		return
	}
	utils.JSONOK(c, http.StatusOK, list)
}

// ---------------------------
// 3) Lifecycle transitions
// ---------------------------

func (ctrl *ReservationController) transitionHandler(apply func(uint) (*models.Reservation, error), what string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseIDParam(c)
		if !ok {
			return
		}

		reservation, err := apply(id)
		if err != nil {
			log.Printf("%s error (reservation=%d): %v", what, id, err)
			respondServiceError(c, err)
			return
		}
		utils.JSONOK(c, http.StatusOK, reservation)
	}
}

func (ctrl *ReservationController) ConfirmReservation(c *gin.Context) {
	ctrl.transitionHandler(ctrl.Lifecycle.Confirm, "ConfirmReservation")(c)
}

func (ctrl *ReservationController) CheckInReservation(c *gin.Context) {
	ctrl.transitionHandler(ctrl.Lifecycle.CheckIn, "CheckInReservation")(c)
}

func (ctrl *ReservationController) CheckOutReservation(c *gin.Context) {
	ctrl.transitionHandler(ctrl.Lifecycle.CheckOut, "CheckOutReservation")(c)
}

func (ctrl *ReservationController) CancelReservation(c *gin.Context) {
	ctrl.transitionHandler(ctrl.Lifecycle.Cancel, "CancelReservation")(c)
}

func (ctrl *ReservationController) RescheduleReservation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload RescheduleRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	iv, valid := parseStayInterval(c, payload.CheckIn, payload.CheckOut)
	if !valid {
		return
	}

	reservation, err := ctrl.Lifecycle.Reschedule(id, iv)
	if err != nil {
		log.Printf("RescheduleReservation error (reservation=%d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, reservation)
}
