package controllers

import (
	"errors"
	"net/http"

	"hms-backend/models"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SettingsController serves the single hotel-profile record.
type SettingsController struct {
	DB *gorm.DB
}

func NewSettingsController(db *gorm.DB) *SettingsController {
	return &SettingsController{DB: db}
}

func (ctrl *SettingsController) GetHotelSettings(c *gin.Context) {
	var setting models.HotelSetting
	if err := ctrl.DB.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, models.HotelSetting{})
			return
		}
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchSettings", "could not fetch settings")
		return
	}
	c.JSON(http.StatusOK, setting)
}

func (ctrl *SettingsController) UpdateHotelSettings(c *gin.Context) {
	var payload models.HotelSetting
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	var setting models.HotelSetting
	err := ctrl.DB.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := ctrl.DB.Create(&payload).Error; err != nil {
			utils.JSONErr(c, http.StatusInternalServerError, "error.saveSettings", err.Error())
			return
		}
		c.JSON(http.StatusOK, payload)
		return
	}
	if err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchSettings", err.Error())
		return
	}

	payload.ID = setting.ID
	if err := ctrl.DB.Model(&setting).Updates(payload).Error; err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.saveSettings", err.Error())
		return
	}
	c.JSON(http.StatusOK, setting)
}
