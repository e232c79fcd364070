package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository/memory"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/realtime"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucUser "github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

const (
	adminEmail    = "admin@salon.test"
	adminPassword = "admin-secret"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope[T any] struct {
	Success   bool   `json:"success"`
	Data      T      `json:"data"`
	Total     int    `json:"total"`
	ErrorCode string `json:"error_code"`
}

type session struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type api struct {
	t *testing.T
	r *gin.Engine
}

func newAPI(t *testing.T, mutate ...func(*Deps)) *api {
	t.Helper()

	store := memory.New()
	tokens := auth.NewManager("test-secret-with-32-characters!!", time.Hour)
	blacklist := auth.NewMemoryBlacklist()
	log := zap.NewNop()

	seeder := ucUser.NewAuth(store.Users(), tokens, blacklist, nil, log)
	require.NoError(t, seeder.SeedAdmin(context.Background(), "", adminEmail, adminPassword))

	d := Deps{
		Appointments:      store.Appointments(),
		Reports:           store.Appointments(),
		Slots:             store.Slots(),
		Catalog:           store.Catalog(),
		Users:             store.Users(),
		Tokens:            tokens,
		Blacklist:         blacklist,
		Hub:               realtime.NewHub(nil, log),
		Location:          timezone.Location(timezone.DefaultTimezone),
		CatalogTTL:        time.Minute,
		AuthRatePerMinute: 100,
		Log:               log,
	}
	for _, m := range mutate {
		m(&d)
	}

	r := gin.New()
	RegisterRoutes(r, d)
	return &api{t: t, r: r}
}

func (a *api) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var out envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func (a *api) login(email, password string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[session](a.t, w).Data.Token
}

func (a *api) register(email string) session {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     "Lan",
		"email":    email,
		"password": "secret123",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[session](a.t, w).Data
}

// catalog creates one service, one stylist and a 09:00-10:00 slot on
// 2030-05-01 in the salon timezone.
func (a *api) catalog(admin string) (models.Service, models.Stylist, models.Slot) {
	a.t.Helper()

	w := a.do(http.MethodPost, "/api/services", admin, gin.H{
		"service_name": "Haircut",
		"price":        200000,
		"category":     "hair",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	svc := decode[models.Service](a.t, w).Data

	w = a.do(http.MethodPost, "/api/stylists", admin, gin.H{
		"name":  "Mai",
		"email": "mai@salon.test",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	st := decode[models.Stylist](a.t, w).Data

	w = a.do(http.MethodPost, "/api/slots", admin, gin.H{
		"stylist_id": st.ID,
		"start_time": "2030-05-01 09:00",
		"end_time":   "2030-05-01 10:00",
	})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	sl := decode[models.Slot](a.t, w).Data

	return svc, st, sl
}

func (a *api) available(stylistID uint) int {
	a.t.Helper()
	w := a.do(http.MethodGet, fmt.Sprintf("/api/slots/available?stylistId=%d&date=2030-05-01", stylistID), "", nil)
	require.Equal(a.t, http.StatusOK, w.Code, w.Body.String())
	return decode[[]models.Slot](a.t, w).Total
}

func TestBookingFlow(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	user := a.register("lan@example.com")

	svc, st, sl := a.catalog(admin)
	assert.Equal(t, 1, a.available(st.ID))

	w := a.do(http.MethodPost, "/api/appointments", user.Token, gin.H{
		"service_id": svc.ID,
		"stylist_id": st.ID,
		"slot_id":    sl.ID,
		"notes":      "short please",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ap := decode[models.Appointment](t, w).Data
	assert.Equal(t, string(apdomain.StatusPending), ap.Status)
	assert.Equal(t, "Haircut", ap.ServiceName)
	assert.Equal(t, "Mai", ap.StylistName)
	assert.Equal(t, 0, a.available(st.ID))

	w = a.do(http.MethodGet, "/api/slots/booked?stylist_id="+fmt.Sprint(st.ID)+"&date=2030-05-01", "", nil)
	assert.Equal(t, 1, decode[[]models.Slot](t, w).Total)

	// second booking of the same slot
	w = a.do(http.MethodPost, "/api/appointments", user.Token, gin.H{
		"service_id": svc.ID,
		"stylist_id": st.ID,
		"slot_id":    sl.ID,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_already_booked", decode[any](t, w).ErrorCode)

	path := fmt.Sprintf("/api/appointments/%d", ap.ID)

	w = a.do(http.MethodPut, path+"/confirm", user.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPut, path+"/confirm", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, string(apdomain.StatusConfirmed), decode[models.Appointment](t, w).Data.Status)

	w = a.do(http.MethodPut, path+"/cancel", user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, string(apdomain.StatusCancelled), decode[models.Appointment](t, w).Data.Status)
	assert.Equal(t, 1, a.available(st.ID))

	w = a.do(http.MethodPut, path+"/cancel", user.Token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_state", decode[any](t, w).ErrorCode)

	// the freed slot can be booked again
	w = a.do(http.MethodPost, "/api/appointments", user.Token, gin.H{
		"service_id":    svc.ID,
		"stylist_id":    st.ID,
		"selected_time": "2030-05-01 09:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, sl.ID, decode[models.Appointment](t, w).Data.SlotID)

	w = a.do(http.MethodGet, "/api/appointments", user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, decode[[]models.Appointment](t, w).Total)
}

func TestAppointmentsAreScopedToOwner(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	owner := a.register("owner@example.com")
	other := a.register("other@example.com")

	svc, st, sl := a.catalog(admin)
	w := a.do(http.MethodPost, "/api/appointments", owner.Token, gin.H{
		"service_id": svc.ID,
		"stylist_id": st.ID,
		"slot_id":    sl.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	ap := decode[models.Appointment](t, w).Data

	w = a.do(http.MethodGet, fmt.Sprintf("/api/appointments/%d", ap.ID), other.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPut, fmt.Sprintf("/api/appointments/%d/cancel", ap.ID), other.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodGet, "/api/appointments", other.Token, nil)
	assert.Equal(t, 0, decode[[]models.Appointment](t, w).Total)

	w = a.do(http.MethodGet, "/api/appointments", admin, nil)
	assert.Equal(t, 1, decode[[]models.Appointment](t, w).Total)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/appointments/%d/receipt", ap.ID), owner.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF")))
}

func TestAuthGuards(t *testing.T) {
	a := newAPI(t)
	user := a.register("lan@example.com")

	w := a.do(http.MethodGet, "/api/appointments", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthenticated", decode[any](t, w).ErrorCode)

	w = a.do(http.MethodGet, "/api/me", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodGet, "/api/me", user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lan@example.com", decode[models.User](t, w).Data.Email)
	assert.NotContains(t, w.Body.String(), "password")

	w = a.do(http.MethodPost, "/api/services", user.Token, gin.H{"service_name": "x", "price": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "admin_only", decode[any](t, w).ErrorCode)

	w = a.do(http.MethodGet, "/api/users", user.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPost, "/api/auth/logout", user.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/me", user.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_token", decode[any](t, w).ErrorCode)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": adminEmail, "password": "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode[any](t, w).ErrorCode)
}

func TestAuthRateLimit(t *testing.T) {
	a := newAPI(t, func(d *Deps) { d.AuthRatePerMinute = 2 })

	body := gin.H{"email": adminEmail, "password": "wrong-password"}
	for range 2 {
		w := a.do(http.MethodPost, "/api/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}

	w := a.do(http.MethodPost, "/api/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "rate_limited", decode[any](t, w).ErrorCode)
}

func TestSlotAdministration(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	_, st, sl := a.catalog(admin)

	w := a.do(http.MethodPost, "/api/slots", admin, gin.H{
		"stylist_id": st.ID,
		"start_time": "2030-05-01 09:30",
		"end_time":   "2030-05-01 10:30",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "slot_overlap", decode[any](t, w).ErrorCode)

	w = a.do(http.MethodPost, "/api/slots", admin, gin.H{
		"stylist_id": st.ID,
		"start_time": "2030-05-01 11:00",
		"end_time":   "2030-05-01 10:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_time_range", decode[any](t, w).ErrorCode)

	w = a.do(http.MethodPut, fmt.Sprintf("/api/slots/%d", sl.ID), admin, gin.H{"available": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, decode[models.Slot](t, w).Data.Available)
	assert.Equal(t, 0, a.available(st.ID))

	w = a.do(http.MethodGet, fmt.Sprintf("/api/slots?stylist_id=%d&date=2030-05-01&available=false", st.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, decode[[]models.Slot](t, w).Total)

	w = a.do(http.MethodDelete, fmt.Sprintf("/api/slots/%d", sl.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/slots/%d", sl.ID), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "slot_not_found", decode[any](t, w).ErrorCode)

	w = a.do(http.MethodGet, "/api/slots/available?date=2030-05-01", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMonthlyStats(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	user := a.register("lan@example.com")
	svc, st, sl := a.catalog(admin)

	w := a.do(http.MethodPost, "/api/appointments", user.Token, gin.H{
		"service_id": svc.ID,
		"stylist_id": st.ID,
		"slot_id":    sl.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	ap := decode[models.Appointment](t, w).Data

	w = a.do(http.MethodPut, fmt.Sprintf("/api/appointments/%d/complete", ap.ID), admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	type income struct {
		TotalIncome           float64 `json:"total_income"`
		CompletedAppointments int     `json:"completed_appointments"`
	}

	// no month or year means the current salon month
	w = a.do(http.MethodGet, "/api/appointments/stats/monthly-income", admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[income](t, w).Data
	assert.InDelta(t, 200000, got.TotalIncome, 0.001)
	assert.Equal(t, 1, got.CompletedAppointments)

	w = a.do(http.MethodGet, "/api/appointments/stats/monthly-income?month=13&year=2030", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_month", decode[any](t, w).ErrorCode)

	w = a.do(http.MethodGet, "/api/appointments/stats/monthly-income", user.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodGet, "/api/appointments/stats/monthly-export", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
}

func TestCatalogReadsArePublic(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	svc, st, _ := a.catalog(admin)

	w := a.do(http.MethodGet, "/api/services?category=hair", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[[]models.Service](t, w).Total)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/services/%d", svc.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.GenderUnisex, decode[models.Service](t, w).Data.Gender)

	w = a.do(http.MethodGet, fmt.Sprintf("/api/stylists/%d", st.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.DefaultStylistImage, decode[models.Stylist](t, w).Data.Image)

	w = a.do(http.MethodGet, "/api/services/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_id", decode[any](t, w).ErrorCode)

	// uploads need object storage
	w = a.do(http.MethodPut, fmt.Sprintf("/api/stylists/%d/image", st.ID), admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserAccounts(t *testing.T) {
	a := newAPI(t)
	admin := a.login(adminEmail, adminPassword)
	user := a.register("lan@example.com")
	other := a.register("other@example.com")

	path := fmt.Sprintf("/api/users/%d", user.User.ID)

	w := a.do(http.MethodGet, path, other.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPut, path, user.Token, gin.H{"phone": "0901234567"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "0901234567", decode[models.User](t, w).Data.Phone)

	w = a.do(http.MethodPut, path, user.Token, gin.H{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodPut, path+"/change-password", user.Token, gin.H{
		"current_password": "wrong-one",
		"new_password":     "another123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "wrong_password", decode[any](t, w).ErrorCode)

	w = a.do(http.MethodPut, path+"/change-password", user.Token, gin.H{
		"current_password": "secret123",
		"new_password":     "another123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	a.login("lan@example.com", "another123")

	w = a.do(http.MethodGet, "/api/users", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[[]models.User](t, w).Total)

	w = a.do(http.MethodDelete, path, admin, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// the token outlives the account
	w = a.do(http.MethodGet, "/api/me", user.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	a := newAPI(t, func(d *Deps) {
		d.Health = map[string]handlers.Pinger{
			"postgres": func(context.Context) error { return nil },
		}
	})
	w := a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	a = newAPI(t, func(d *Deps) {
		d.Health = map[string]handlers.Pinger{
			"redis": func(context.Context) error { return errors.New("connection refused") },
		}
	})
	w = a.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "connection refused")
}

func TestWebsocketRouteNeedsHub(t *testing.T) {
	a := newAPI(t, func(d *Deps) { d.Hub = nil })

	w := a.do(http.MethodGet, "/api/slots/ws", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
