package controllers

import (
	"fmt"
	"log"
	"net/http"

	"hms-backend/models"
	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type UnitController struct {
	UnitSvc   *services.UnitService
	Admission *services.AdmissionService
}

func NewUnitController(unitSvc *services.UnitService, admission *services.AdmissionService) *UnitController {
	return &UnitController{UnitSvc: unitSvc, Admission: admission}
}

// GetUnits lists units, optionally filtered by ?kind=room|facility.
func (ctrl *UnitController) GetUnits(c *gin.Context) {
	kind := models.UnitKind(c.Query("kind"))
	units, err := ctrl.UnitSvc.GetAll(kind)
	if err != nil {
		log.Printf("GetUnits error: %v", err)
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchUnits", "could not fetch units")
		return
	}
	c.JSON(http.StatusOK, units)
}

func (ctrl *UnitController) GetUnitByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	unit, err := ctrl.UnitSvc.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (ctrl *UnitController) CreateUnit(c *gin.Context) {
	var unit models.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.UnitSvc.Create(&unit); err != nil {
		if isDuplicateEntryError(err) {
			utils.JSONErr(c, http.StatusConflict, "error.duplicateCode",
				fmt.Sprintf("unit code '%s' already exists", unit.Code))
			return
		}
		if isForeignKeyError(err) {
			utils.JSONErr(c, http.StatusBadRequest, "error.foreignKey", err.Error())
			return
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, unit)
}

func (ctrl *UnitController) UpdateUnit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.UnitSvc.Update(id, updates); err != nil {
		log.Printf("UpdateUnit error (unit=%d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"message": "unit updated"})
}

func (ctrl *UnitController) DeleteUnit(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := ctrl.UnitSvc.Delete(id); err != nil {
		log.Printf("DeleteUnit error (unit=%d): %v", id, err)
		respondServiceError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"message": "unit deleted"})
}

// GetAvailableUnits answers "what can I book for these dates" for the
// browse/booking screens. ?check_in & ?check_out required, ?kind optional.
func (ctrl *UnitController) GetAvailableUnits(c *gin.Context) {
	iv, ok := parseStayInterval(c, c.Query("check_in"), c.Query("check_out"))
	if !ok {
		return
	}

	units, err := ctrl.Admission.FindAvailableUnits(iv, models.UnitKind(c.Query("kind")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONOK(c, http.StatusOK, units)
}

// ---------------- unit types ----------------

func (ctrl *UnitController) GetUnitTypes(c *gin.Context) {
	types, err := ctrl.UnitSvc.GetAllTypes()
	if err != nil {
		utils.JSONErr(c, http.StatusInternalServerError, "error.fetchUnitTypes", "could not fetch unit types")
		return
	}
	c.JSON(http.StatusOK, types)
}

func (ctrl *UnitController) CreateUnitType(c *gin.Context) {
	var ut models.UnitType
	if err := c.ShouldBindJSON(&ut); err != nil {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidPayload", err.Error())
		return
	}

	if err := ctrl.UnitSvc.CreateType(&ut); err != nil {
		if isDuplicateEntryError(err) {
			utils.JSONErr(c, http.StatusConflict, "error.duplicateName",
				fmt.Sprintf("unit type '%s' already exists", ut.Name))
			return
		}
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ut)
}

func (ctrl *UnitController) DeleteUnitType(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ctrl.UnitSvc.DeleteType(id); err != nil {
		utils.JSONErr(c, http.StatusNotFound, "error.unitTypeNotFound", "unit type not found")
		return
	}
	utils.JSONOK(c, http.StatusOK, gin.H{"message": "unit type deleted"})
}
