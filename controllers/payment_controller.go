package controllers

import (
	"log"
	"net/http"

	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type SubmitProofPayload struct {
	ReservationID uint    `json:"reservation_id" binding:"required"`
	Reference     string  `json:"reference" binding:"required"`
	Amount        float64 `json:"amount"`
}

type ReviewProofPayload struct {
	ReviewerID uint   `json:"reviewer_id" binding:"required"`
	Note       string `json:"note"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(svc *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: svc}
}

func (ctrl *PaymentController) SubmitProof(c *gin.Context) {
	var payload SubmitProofPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	proof, err := ctrl.PaymentSvc.Submit(payload.ReservationID, payload.Reference, payload.Amount)
	if err != nil {
		log.Printf("SubmitProof error (reservation=%d): %v", payload.ReservationID, err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": proof})
}

func (ctrl *PaymentController) ApproveProof(c *gin.Context) {
	ctrl.review(c, true)
}

func (ctrl *PaymentController) RejectProof(c *gin.Context) {
	ctrl.review(c, false)
}

func (ctrl *PaymentController) review(c *gin.Context, approve bool) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload ReviewProofPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	var err error
	var proof interface{}
	if approve {
		proof, err = ctrl.PaymentSvc.Approve(id, payload.ReviewerID, payload.Note)
	} else {
		proof, err = ctrl.PaymentSvc.Reject(id, payload.ReviewerID, payload.Note)
	}
	if err != nil {
		log.Printf("ReviewProof error (proof=%d approve=%v): %v", id, approve, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, proof)
}

func (ctrl *PaymentController) GetPendingProofs(c *gin.Context) {
	list, err := ctrl.PaymentSvc.ListPending()
	if err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchProofs", "could not fetch payment proofs")
		return
	}
	utils.JSONOK(c, http.StatusOK, list)
}
