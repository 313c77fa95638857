package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"hms-backend/config"
	"hms-backend/controllers"
	"hms-backend/models"
	"hms-backend/routes"
	"hms-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

type testEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:api_test_%d?mode=memory&cache=shared&_busy_timeout=5000", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	admission := services.NewAdmissionService(db)
	lifecycle := services.NewLifecycleService(db, admission)

	router := routes.SetupRouter(
		controllers.NewReservationController(admission, lifecycle),
		controllers.NewUnitController(services.NewUnitService(db), admission),
		controllers.NewCustomerController(services.NewCustomerService(db)),
		controllers.NewPaymentController(services.NewPaymentService(db, lifecycle)),
		controllers.NewRefundController(services.NewRefundService(db)),
		controllers.NewFeedbackController(services.NewFeedbackService(db)),
		controllers.NewStaffController(services.NewStaffService(db)),
		controllers.NewSettingsController(db),
	)

	return &testEnv{db: db, router: router}
}

func (e *testEnv) seed(t *testing.T) (*models.Unit, *models.Customer) {
	t.Helper()
	unit := models.Unit{Kind: models.UnitKindRoom, Code: "101", Name: "Room 101", Capacity: 2, NightlyPrice: 1200, Status: models.UnitAvailable}
	if err := e.db.Create(&unit).Error; err != nil {
		t.Fatalf("failed to seed unit: %v", err)
	}
	guest := models.Customer{FullName: "Alice", Email: "alice@example.com"}
	if err := e.db.Create(&guest).Error; err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return &unit, &guest
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	e.router.ServeHTTP(resp, req)
	return resp
}

func createPayload(unitID, customerID uint, checkIn, checkOut string) map[string]interface{} {
	return map[string]interface{}{
		"unit_id":     unitID,
		"customer_id": customerID,
		"check_in":    checkIn,
		"check_out":   checkOut,
	}
}

func TestCreateReservationEndpoint(t *testing.T) {
	env := newTestEnv(t)
	unit, guest := env.seed(t)

	resp := env.do(t, http.MethodPost, "/api/reservations", createPayload(unit.ID, guest.ID, "2024-06-01", "2024-06-05"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", resp.Code, resp.Body.String())
	}

	var out struct {
		Data models.Reservation `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if out.Data.Status != models.StatusProvisional {
		t.Errorf("status = %s, want Provisional", out.Data.Status)
	}

	// overlapping request -> 409 with conflict detail
	resp = env.do(t, http.MethodPost, "/api/reservations", createPayload(unit.ID, guest.ID, "2024-06-04", "2024-06-06"))
	if resp.Code != http.StatusConflict {
		t.Fatalf("overlap: status %d, want 409", resp.Code)
	}

	// shared boundary -> admitted
	resp = env.do(t, http.MethodPost, "/api/reservations", createPayload(unit.ID, guest.ID, "2024-06-05", "2024-06-08"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("back-to-back: status %d, want 201", resp.Code)
	}
}

func TestCreateReservationRejectsBadInput(t *testing.T) {
	env := newTestEnv(t)
	unit, guest := env.seed(t)

	// reversed interval
	resp := env.do(t, http.MethodPost, "/api/reservations", createPayload(unit.ID, guest.ID, "2024-06-05", "2024-06-01"))
	if resp.Code != http.StatusBadRequest {
		t.Errorf("reversed interval: status %d, want 400", resp.Code)
	}

	// unparseable date
	resp = env.do(t, http.MethodPost, "/api/reservations", createPayload(unit.ID, guest.ID, "soon", "later"))
	if resp.Code != http.StatusBadRequest {
		t.Errorf("bad dates: status %d, want 400", resp.Code)
	}

	// unknown unit
	resp = env.do(t, http.MethodPost, "/api/reservations", createPayload(4242, guest.ID, "2024-06-01", "2024-06-05"))
	if resp.Code != http.StatusNotFound {
		t.Errorf("unknown unit: status %d, want 404", resp.Code)
	}
}

func TestLifecycleEndpoints(t *testing.T) {
	env := newTestEnv(t)
	unit, guest := env.seed(t)

	resp := env.do(t, http.MethodPost, "/api/reservations", createPayload(unit.ID, guest.ID, "2024-06-01", "2024-06-05"))
	if resp.Code != http.StatusCreated {
		t.Fatalf("create failed: %s", resp.Body.String())
	}
	var out struct {
		Data models.Reservation `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &out)
	id := out.Data.ID

	// checkin while Provisional -> 409
	if resp := env.do(t, http.MethodPost, fmt.Sprintf("/api/reservations/%d/checkin", id), nil); resp.Code != http.StatusConflict {
		t.Errorf("premature checkin: status %d, want 409", resp.Code)
	}

	for _, step := range []string{"confirm", "checkin", "checkout"} {
		resp := env.do(t, http.MethodPost, fmt.Sprintf("/api/reservations/%d/%s", id, step), nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: status %d, body %s", step, resp.Code, resp.Body.String())
		}
	}

	// any transition on a checked-out reservation -> 410
	if resp := env.do(t, http.MethodPost, fmt.Sprintf("/api/reservations/%d/cancel", id), nil); resp.Code != http.StatusGone {
		t.Errorf("cancel after checkout: status %d, want 410", resp.Code)
	}

	// unknown id -> 404
	if resp := env.do(t, http.MethodPost, "/api/reservations/9999/confirm", nil); resp.Code != http.StatusNotFound {
		t.Errorf("unknown id: status %d, want 404", resp.Code)
	}
}

func TestCancelEndpointIdempotent(t *testing.T) {
	env := newTestEnv(t)
	unit, guest := env.seed(t)

	resp := env.do(t, http.MethodPost, "/api/reservations", createPayload(unit.ID, guest.ID, "2024-06-01", "2024-06-05"))
	var out struct {
		Data models.Reservation `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &out)

	path := fmt.Sprintf("/api/reservations/%d/cancel", out.Data.ID)
	if resp := env.do(t, http.MethodPost, path, nil); resp.Code != http.StatusOK {
		t.Fatalf("first cancel: status %d", resp.Code)
	}
	if resp := env.do(t, http.MethodPost, path, nil); resp.Code != http.StatusOK {
		t.Fatalf("second cancel: status %d, want 200", resp.Code)
	}
}

func TestAvailabilityEndpoint(t *testing.T) {
	env := newTestEnv(t)
	unit, guest := env.seed(t)

	env.do(t, http.MethodPost, "/api/reservations", createPayload(unit.ID, guest.ID, "2024-06-01", "2024-06-05"))

	resp := env.do(t, http.MethodGet, "/api/units/available?check_in=2024-06-03&check_out=2024-06-06", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("availability: status %d", resp.Code)
	}
	var avail struct {
		Data []models.Unit `json:"data"`
	}
	json.Unmarshal(resp.Body.Bytes(), &avail)
	if len(avail.Data) != 0 {
		t.Errorf("expected no available units, got %d", len(avail.Data))
	}

	resp = env.do(t, http.MethodGet, "/api/units/available?check_in=2024-06-05&check_out=2024-06-08", nil)
	json.Unmarshal(resp.Body.Bytes(), &avail)
	if len(avail.Data) != 1 {
		t.Errorf("expected the unit free after checkout day, got %d", len(avail.Data))
	}

	// missing dates -> 400
	if resp := env.do(t, http.MethodGet, "/api/units/available", nil); resp.Code != http.StatusBadRequest {
		t.Errorf("missing dates: status %d, want 400", resp.Code)
	}
}
