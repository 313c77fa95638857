package controllers

import (
	"log"
	"net/http"

	"hms-backend/models"
	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateAdminPayload struct {
	FullName string `json:"full_name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
}

type UpdatePermissionsPayload struct {
	Permissions []string `json:"permissions" binding:"required"`
}

type StaffController struct {
	StaffSvc *services.StaffService
}

func NewStaffController(svc *services.StaffService) *StaffController {
	return &StaffController{StaffSvc: svc}
}

func (ctrl *StaffController) GetAdmins(c *gin.Context) {
	list, err := ctrl.StaffSvc.GetAdmins()
	if err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchAdmins", "could not fetch staff records")
		return
	}
	c.JSON(http.StatusOK, list)
}

func (ctrl *StaffController) CreateAdmin(c *gin.Context) {
	var payload CreateAdminPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	admin := models.Admin{
		FullName: payload.FullName,
		Username: payload.Username,
		Position: payload.Position,
		Phone:    payload.Phone,
	}
	if err := ctrl.StaffSvc.CreateAdmin(&admin, payload.Password); err != nil {
		if isDuplicateEntryError(err) {
			utils.JSONErr(c, http.StatusConflict, "error.duplicateUsername", "username already exists")
			return
		}
		log.Printf("CreateAdmin error: %v", err)
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, admin)
}

func (ctrl *StaffController) DeleteAdmin(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.StaffSvc.DeleteAdmin(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"message": "admin deleted"})
}

func (ctrl *StaffController) GetRoles(c *gin.Context) {
	roles, err := ctrl.StaffSvc.GetRoles()
	if err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchRoles", "could not fetch roles")
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (ctrl *StaffController) UpdateRolePermissions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var payload UpdatePermissionsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.StaffSvc.ReplacePermissions(id, payload.Permissions); err != nil {
		log.Printf("UpdateRolePermissions error (role=%d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"message": "permissions updated"})
}
