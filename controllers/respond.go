package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hms-backend/services"
	"hms-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps the service error taxonomy onto HTTP statuses.
// Every rejection here is a correct business answer, not a fault, so nothing
// is retried at this layer.
func respondServiceError(c *gin.Context, err error) {
	var conflict *services.ConflictError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{
			"error": gin.H{
				"code":    "error.conflict",
				"message": "the requested dates are already reserved",
				"conflict": gin.H{
					"reservation_id": conflict.ReservationID,
					"reference_code": conflict.ReferenceCode,
					"check_in":       conflict.CheckIn,
					"check_out":      conflict.CheckOut,
				},
			},
		})
	case errors.Is(err, services.ErrInvalidInterval):
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidInterval", "check_in must be before check_out")
	case errors.Is(err, services.ErrUnitNotFound):
		utils.JSONErr(c, http.StatusNotFound, "error.unitNotFound", "unit not found")
	case errors.Is(err, services.ErrUnitUnavailable):
		utils.JSONErr(c, http.StatusConflict, "error.unitUnavailable", "unit is not bookable right now")
	case errors.Is(err, services.ErrUnitOccupied):
		utils.JSONErr(c, http.StatusConflict, "error.unitOccupied", "unit still has active reservations")
	case errors.Is(err, services.ErrNotFound):
		utils.JSONErr(c, http.StatusNotFound, "error.notFound", "record not found")
	case errors.Is(err, services.ErrTerminalState):
		utils.JSONErr(c, http.StatusGone, "error.terminalState", err.Error())
	case errors.Is(err, services.ErrInvalidState):
		utils.JSONErr(c, http.StatusConflict, "error.invalidState", err.Error())
	case strings.Contains(strings.ToLower(err.Error()), "validation"):
		utils.JSONErr(c, http.StatusBadRequest, "error.validation", err.Error())
	default:
		utils.JSONErr(c, http.StatusInternalServerError, "error.internal", err.Error())
	}
}

// parseIDParam reads the numeric :id path segment.
func parseIDParam(c *gin.Context) (uint, bool) {
	idStr := c.Param("id")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id == 0 {
		utils.JSONErr(c, http.StatusBadRequest, "error.invalidId", "id must be a positive integer")
		return 0, false
	}
	return uint(id), true
}

// isDuplicateEntryError recognizes a unique-index violation from MySQL
// (errno 1062) or, as a fallback, from the driver-agnostic message.
func isDuplicateEntryError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "duplicate entry") || strings.Contains(lc, "unique constraint")
}

// isForeignKeyError recognizes a failed FK reference (MySQL errno 1452).
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1452
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}
