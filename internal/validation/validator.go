package validation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"parkify/internal/models"
)

// Demo credentials seeded by the identity provider.
const (
	AdminEmail    = "admin@parkify.com"
	AdminPassword = "admin123"
	UserEmail     = "user@example.com"
	UserPassword  = "user123"
)

// SmokeValidator - дымовая проверка работающего API
type SmokeValidator struct {
	baseURL string
	client  *http.Client
	date    string
}

// NewSmokeValidator создает новый валидатор
func NewSmokeValidator(baseURL string) *SmokeValidator {
	return &SmokeValidator{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		date:    time.Now().UTC().AddDate(0, 0, 1).Format(time.DateOnly),
	}
}

// WithDate задает дату, на которую создается проверочное бронирование
func (v *SmokeValidator) WithDate(date string) *SmokeValidator {
	v.date = date
	return v
}

// ValidateAll проходит основной сценарий: вход, поиск места, бронь, одобрение
func (v *SmokeValidator) ValidateAll() error {
	slog.Info("Starting API validation", "url", v.baseURL)

	if err := v.expectStatus(http.MethodGet, "/health", "", nil, http.StatusOK, nil); err != nil {
		return fmt.Errorf("health validation failed: %w", err)
	}

	admin, err := v.login(AdminEmail, AdminPassword)
	if err != nil {
		return fmt.Errorf("admin login failed: %w", err)
	}
	user, err := v.login(UserEmail, UserPassword)
	if err != nil {
		return fmt.Errorf("user login failed: %w", err)
	}

	if err := v.expectStatus(http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: UserEmail, Password: "wrong"}, http.StatusUnauthorized, nil); err != nil {
		return fmt.Errorf("invalid credentials validation failed: %w", err)
	}
	if err := v.expectStatus(http.MethodGet, "/api/statistics", user, nil, http.StatusForbidden, nil); err != nil {
		return fmt.Errorf("role validation failed: %w", err)
	}

	booking, err := v.validateBooking(user)
	if err != nil {
		return fmt.Errorf("bookings validation failed: %w", err)
	}

	if err := v.validateApproval(admin, booking); err != nil {
		return fmt.Errorf("approval validation failed: %w", err)
	}

	slog.Info("API validation passed", "booking_id", booking.ID)
	return nil
}

func (v *SmokeValidator) validateBooking(token string) (*models.Booking, error) {
	var areas []models.ParkingArea
	if err := v.expectStatus(http.MethodGet, "/api/areas", token, nil, http.StatusOK, &areas); err != nil {
		return nil, err
	}
	var timeSlots []models.TimeSlot
	if err := v.expectStatus(http.MethodGet, "/api/timeslots", token, nil, http.StatusOK, &timeSlots); err != nil {
		return nil, err
	}
	if len(areas) == 0 || len(timeSlots) == 0 {
		return nil, fmt.Errorf("expected seeded areas and time slots, got %d and %d", len(areas), len(timeSlots))
	}

	// Ищем любое свободное место, чтобы проверку можно было запускать повторно
	for _, area := range areas {
		for _, ts := range timeSlots {
			path := fmt.Sprintf("/api/slots/available?area_id=%s&time_slot_id=%s&date=%s", area.ID, ts.ID, v.date)
			var free []models.ParkingSlot
			if err := v.expectStatus(http.MethodGet, path, token, nil, http.StatusOK, &free); err != nil {
				return nil, err
			}
			if len(free) == 0 {
				continue
			}

			req := models.CreateBookingRequest{AreaID: area.ID, SlotID: free[0].ID, TimeSlotID: ts.ID, Date: v.date}
			var booking models.Booking
			if err := v.expectStatus(http.MethodPost, "/api/bookings", token, req, http.StatusCreated, &booking); err != nil {
				return nil, err
			}
			if booking.Status != models.StatusPending {
				return nil, fmt.Errorf("POST /api/bookings: expected pending status, got %s", booking.Status)
			}

			// Повторная бронь того же места должна конфликтовать
			if err := v.expectStatus(http.MethodPost, "/api/bookings", token, req, http.StatusConflict, nil); err != nil {
				return nil, err
			}
			return &booking, nil
		}
	}

	return nil, fmt.Errorf("no free slot found for %s", v.date)
}

func (v *SmokeValidator) validateApproval(token string, booking *models.Booking) error {
	path := "/api/bookings/" + booking.ID + "/status"
	var approved models.Booking
	if err := v.expectStatus(http.MethodPatch, path, token, models.UpdateBookingStatusRequest{Status: models.StatusApproved}, http.StatusOK, &approved); err != nil {
		return err
	}
	if approved.Status != models.StatusApproved {
		return fmt.Errorf("PATCH %s: expected approved, got %s", path, approved.Status)
	}

	var stats models.Statistics
	if err := v.expectStatus(http.MethodGet, "/api/statistics", token, nil, http.StatusOK, &stats); err != nil {
		return err
	}
	if stats.Approved < 1 || len(stats.ByDay) != 7 || len(stats.ByMonth) != 12 {
		return fmt.Errorf("GET /api/statistics: unexpected shape %+v", stats)
	}
	return nil
}

func (v *SmokeValidator) login(email, password string) (string, error) {
	var resp models.AuthResponse
	if err := v.expectStatus(http.MethodPost, "/api/auth/login", "", models.LoginRequest{Email: email, Password: password}, http.StatusOK, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("POST /api/auth/login: empty token")
	}
	return resp.Token, nil
}

// expectStatus выполняет запрос, сверяет код ответа и при необходимости декодирует тело
func (v *SmokeValidator) expectStatus(method, path, token string, body interface{}, want int, out interface{}) error {
	resp, err := v.makeRequest(method, path, token, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: expected %d, got %d: %s", method, path, want, resp.StatusCode, bytes.TrimSpace(msg))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
		}
	}
	return nil
}

func (v *SmokeValidator) makeRequest(method, path, token string, body interface{}) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, v.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	return resp, nil
}

// RunValidation запускает валидацию API
func RunValidation(baseURL string) error {
	return NewSmokeValidator(baseURL).ValidateAll()
}
