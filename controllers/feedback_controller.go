package controllers

import (
	"log"
	"net/http"

	"hms-backend/models"
	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	FeedbackSvc *services.FeedbackService
}

func NewFeedbackController(svc *services.FeedbackService) *FeedbackController {
	return &FeedbackController{FeedbackSvc: svc}
}

func (ctrl *FeedbackController) CreateFeedback(c *gin.Context) {
	var fb models.Feedback
	if err := c.ShouldBindJSON(&fb); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.FeedbackSvc.Create(&fb); err != nil {
		log.Printf("CreateFeedback error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fb)
}

func (ctrl *FeedbackController) GetFeedback(c *gin.Context) {
	list, err := ctrl.FeedbackSvc.GetAll()
	if err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchFeedback", "could not fetch feedback")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *FeedbackController) DeleteFeedback(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.FeedbackSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"message": "feedback deleted"})
}
