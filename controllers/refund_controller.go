package controllers

import (
	"log"
	"net/http"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type RefundRequestPayload struct {
	ReservationID uint    `json:"reservation_id" binding:"required"`
	Reason        string  `json:"reason" binding:"required"`
	Amount        float64 `json:"amount"`
}

type RefundReviewPayload struct {
	ReviewerID uint `json:"reviewer_id" binding:"required"`
	Approve    bool `json:"approve"`
}

type RefundController struct {
	RefundSvc *services.RefundService
}

func NewRefundController(svc *services.RefundService) *RefundController {
	return &RefundController{RefundSvc: svc}
}

func (ctrl *RefundController) CreateRefundRequest(c *gin.Context) {
	var payload RefundRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	req, err := ctrl.RefundSvc.Request(payload.ReservationID, payload.Reason, payload.Amount)
	if err != nil {
		log.Printf("CreateRefundRequest error (reservation=%d): %v", payload.ReservationID, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": req})
}

func (ctrl *RefundController) ReviewRefundRequest(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload RefundReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	req, err := ctrl.RefundSvc.Review(id, payload.Approve, payload.ReviewerID)
	if err != nil {
		log.Printf("ReviewRefundRequest error (refund=%d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, req)
}

func (ctrl *RefundController) GetRefundRequests(c *gin.Context) {
	list, err := ctrl.RefundSvc.GetAll()
	if err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchRefunds", "could not fetch refund requests")
		return
	}
	utils.JSONOK(c, http.StatusOK, list)
}
