package controllers

import (
	"log"
	"net/http"

	"hms-backend/models"
	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type CustomerController struct {
	CustomerSvc *services.CustomerService
}

func NewCustomerController(svc *services.CustomerService) *CustomerController {
	return &CustomerController{CustomerSvc: svc}
}

func (ctrl *CustomerController) CreateCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.CustomerSvc.Create(&customer); err != nil {
		log.Printf("CreateCustomer error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (ctrl *CustomerController) GetCustomers(c *gin.Context) {
	list, err := ctrl.CustomerSvc.GetAll()
	if err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchCustomers", "could not fetch customers")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *CustomerController) GetCustomerByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	customer, err := ctrl.CustomerSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// GetCustomerReservations lists one guest's booking history.
func (ctrl *CustomerController) GetCustomerReservations(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	list, err := ctrl.CustomerSvc.Reservations(id)
	if err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchReservations", "could not fetch customer reservations")
		return
	}
	utils.JSONOK(c, http.StatusOK, list)
}
