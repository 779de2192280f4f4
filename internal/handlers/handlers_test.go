package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"parkify/internal/models"
	"parkify/internal/repository"
	"parkify/internal/service"
	"parkify/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubSearcher struct {
	query, status string
}

func (s *stubSearcher) SearchBookings(_ context.Context, query, status string, _, _ int) ([]models.Booking, error) {
	s.query, s.status = query, status
	return []models.Booking{{ID: "booking-from-index"}}, nil
}

func (s *stubSearcher) Count(_ context.Context, _, _ string) (int64, error) {
	return 41, nil
}

func setupRouter(t *testing.T, searcher Searcher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, ConfigureBinding())

	repos, err := repository.NewRepositories(context.Background(), store.NewMemory())
	require.NoError(t, err)

	services, err := service.NewServices(repos, service.Options{
		Auth: service.AuthOptions{
			Secret:     []byte("handlers-test"),
			SessionTTL: time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
	})
	require.NoError(t, err)

	r := gin.New()
	h := NewHandlers(services, searcher, nil)
	h.RegisterRoutes(r, services.Auth)
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			_ = json.NewEncoder(&buf).Encode(b)
		}
	}

	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine, email, password string) string {
	t.Helper()
	w := doJSON(r, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: email, Password: password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

var downtownBooking = models.CreateBookingRequest{
	AreaID:     "area-1",
	SlotID:     "slot-area-1-1",
	TimeSlotID: "time-1",
	Date:       "2024-06-15",
}

func TestLogin(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: "admin@parkify.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := login(t, r, "admin@parkify.com", "admin123")
	w = doJSON(r, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[models.Actor](t, w)
	assert.Equal(t, "1", me.UserID)
	assert.Equal(t, models.RoleAdmin, me.Role)
}

func TestRegisterAndLogout(t *testing.T) {
	r := setupRouter(t, nil)
	req := models.RegisterRequest{Name: "Dana", Email: "dana@example.com", Password: "secret1"}

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", req)
	require.Equal(t, http.StatusCreated, w.Code)
	token := decode[models.AuthResponse](t, w).Token

	w = doJSON(r, http.MethodPost, "/api/auth/register", "", req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/api/areas", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	user := login(t, r, "user@example.com", "user123")
	w = doJSON(r, http.MethodGet, "/api/statistics", user, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDowntownBookingFlow(t *testing.T) {
	r := setupRouter(t, nil)
	user := login(t, r, "user@example.com", "user123")
	admin := login(t, r, "admin@parkify.com", "admin123")

	w := doJSON(r, http.MethodPost, "/api/bookings", user, downtownBooking)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booking := decode[models.Booking](t, w)
	assert.Equal(t, models.StatusPending, booking.Status)
	assert.Equal(t, "Downtown Parking", booking.AreaName)
	assert.Equal(t, 10.0, booking.TotalAmount)

	w = doJSON(r, http.MethodGet, "/api/slots/available?area_id=area-1&time_slot_id=time-1&date=2024-06-15", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	available := decode[[]models.ParkingSlot](t, w)
	assert.Len(t, available, 49)
	for _, s := range available {
		assert.NotEqual(t, "slot-area-1-1", s.ID)
	}

	w = doJSON(r, http.MethodPost, "/api/bookings", user, downtownBooking)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/bookings/"+booking.ID+"/status", user, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/bookings/"+booking.ID+"/status", admin, gin.H{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.StatusApproved, decode[models.Booking](t, w).Status)

	w = doJSON(r, http.MethodGet, "/api/bookings", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]models.Booking](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, models.StatusApproved, mine[0].Status)

	w = doJSON(r, http.MethodGet, "/api/statistics", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.Statistics](t, w)
	assert.Equal(t, 1, stats.Total)
	assert.Equal(t, 1, stats.Approved)
	assert.Len(t, stats.ByDay, 7)
	assert.Len(t, stats.ByMonth, 12)
}

func TestUpdateStatusUnknownBooking(t *testing.T) {
	r := setupRouter(t, nil)
	admin := login(t, r, "admin@parkify.com", "admin123")

	w := doJSON(r, http.MethodPatch, "/api/bookings/booking-404/status", admin, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPatch, "/api/bookings/booking-404/status", admin, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRequestValidation(t *testing.T) {
	r := setupRouter(t, nil)
	user := login(t, r, "user@example.com", "user123")
	admin := login(t, r, "admin@parkify.com", "admin123")

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   any
	}{
		{"unknown field", http.MethodPost, "/api/bookings", user, `{"areaId":"area-1","slotId":"slot-area-1-1","timeSlotId":"time-1","date":"2024-06-15","price":1}`},
		{"bad date", http.MethodPost, "/api/bookings", user, gin.H{"areaId": "area-1", "slotId": "slot-area-1-1", "timeSlotId": "time-1", "date": "15/06/2024"}},
		{"malformed time", http.MethodPost, "/api/timeslots", admin, gin.H{"startTime": "8am", "endTime": "10:00"}},
		{"end before start", http.MethodPost, "/api/timeslots", admin, gin.H{"startTime": "10:00", "endTime": "08:00"}},
		{"negative price", http.MethodPost, "/api/areas", admin, gin.H{"name": "X", "location": "Y", "totalSlots": 1, "pricePerHour": -1}},
		{"missing query", http.MethodGet, "/api/slots/available?area_id=area-1", user, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, tt.method, tt.path, tt.token, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestBookingVisibility(t *testing.T) {
	r := setupRouter(t, nil)
	user := login(t, r, "user@example.com", "user123")

	w := doJSON(r, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{Name: "Eve", Email: "eve@example.com", Password: "secret1"})
	require.Equal(t, http.StatusCreated, w.Code)
	eve := decode[models.AuthResponse](t, w).Token

	w = doJSON(r, http.MethodPost, "/api/bookings", user, downtownBooking)
	require.Equal(t, http.StatusCreated, w.Code)
	booking := decode[models.Booking](t, w)

	w = doJSON(r, http.MethodGet, "/api/bookings/"+booking.ID, eve, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/bookings/"+booking.ID+"/receipt", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestAdminEditBooking(t *testing.T) {
	r := setupRouter(t, nil)
	user := login(t, r, "user@example.com", "user123")
	admin := login(t, r, "admin@parkify.com", "admin123")

	w := doJSON(r, http.MethodPost, "/api/bookings", user, downtownBooking)
	require.Equal(t, http.StatusCreated, w.Code)
	first := decode[models.Booking](t, w)

	other := downtownBooking
	other.SlotID = "slot-area-1-2"
	w = doJSON(r, http.MethodPost, "/api/bookings", user, other)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPut, "/api/bookings/"+first.ID, admin, gin.H{"slotId": "slot-area-1-2"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(r, http.MethodPut, "/api/bookings/"+first.ID, admin, gin.H{"areaId": "area-2", "slotId": "slot-area-2-7"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	moved := decode[models.Booking](t, w)
	assert.Equal(t, "Airport Parking", moved.AreaName)
	assert.Equal(t, 7, moved.SlotNumber)
	assert.Equal(t, 16.0, moved.TotalAmount)

	w = doJSON(r, http.MethodPut, "/api/bookings/booking-404", admin, gin.H{"vehicleNumber": "A1"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminListFilters(t *testing.T) {
	r := setupRouter(t, nil)
	user := login(t, r, "user@example.com", "user123")
	admin := login(t, r, "admin@parkify.com", "admin123")

	w := doJSON(r, http.MethodPost, "/api/bookings", user, downtownBooking)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodGet, "/api/bookings?status=pending", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.Booking](t, w), 1)

	w = doJSON(r, http.MethodGet, "/api/bookings?status=approved", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]models.Booking](t, w))

	w = doJSON(r, http.MethodGet, "/api/bookings?status=cancelled", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "passwordHash")

	w = doJSON(r, http.MethodGet, "/api/reports/bookings", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
}

func TestAreaManagement(t *testing.T) {
	r := setupRouter(t, nil)
	user := login(t, r, "user@example.com", "user123")
	admin := login(t, r, "admin@parkify.com", "admin123")

	body := gin.H{"name": "Harbor", "location": "1 Pier Rd", "totalSlots": 3, "pricePerHour": 2.5}
	w := doJSON(r, http.MethodPost, "/api/areas", user, body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodPost, "/api/areas", admin, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	area := decode[models.ParkingArea](t, w)

	w = doJSON(r, http.MethodGet, "/api/areas/"+area.ID+"/slots", user, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.ParkingSlot](t, w), 3)

	w = doJSON(r, http.MethodPut, "/api/areas/area-404", admin, gin.H{"name": "Nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodGet, "/api/areas/area-404/slots", user, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchBookings(t *testing.T) {
	admin := func(r *gin.Engine) string { return login(t, r, "admin@parkify.com", "admin123") }

	r := setupRouter(t, nil)
	w := doJSON(r, http.MethodGet, "/api/search/bookings?q=airport", admin(r), nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	searcher := &stubSearcher{}
	r = setupRouter(t, searcher)
	w = doJSON(r, http.MethodGet, "/api/search/bookings?q=airport&status=pending", admin(r), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "airport", searcher.query)
	assert.Equal(t, "pending", searcher.status)
	assert.Equal(t, "41", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "booking-from-index", decode[[]models.Booking](t, w)[0].ID)
}
