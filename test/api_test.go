package test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/yourname/activitytracker/internal"
	"github.com/yourname/activitytracker/internal/api"
	"github.com/yourname/activitytracker/internal/service"
	"github.com/yourname/activitytracker/internal/storage"
)

type testApp struct {
	logger    internal.Logger
	analytics *service.Analytics
	status    *service.Status
}

func (a *testApp) Logger() internal.Logger       { return a.logger }
func (a *testApp) Analytics() *service.Analytics { return a.analytics }
func (a *testApp) Status() *service.Status       { return a.status }

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := internal.NewZapLogger(zap.NewNop().Sugar())
	store := storage.NewMemoryStorage(logger)
	cache, err := service.NewIntervalCache(16)
	assert.NoError(t, err)
	analytics := service.NewAnalytics(store, store, cache, logger)
	status := service.NewStatus(analytics, store)

	r := gin.New()
	r.Use(api.RequestIDMiddleware())
	api.RegisterRoutes(r, &testApp{logger: logger, analytics: analytics, status: status})
	return r
}

func do(r *gin.Engine, method, path string, params url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(method, path+"?"+params.Encode(), nil)
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, id, name string) {
	t.Helper()
	w := do(r, "POST", "/register", url.Values{"userId": {id}, "userName": {name}})
	assert.Equal(t, 200, w.Code)
}

func record(t *testing.T, r *gin.Engine, id string, login, logout time.Time) {
	t.Helper()
	w := do(r, "POST", "/recordSession", url.Values{
		"userId":     {id},
		"loginTime":  {login.Format("2006-01-02T15:04:05")},
		"logoutTime": {logout.Format("2006-01-02T15:04:05")},
	})
	assert.Equal(t, 200, w.Code)
}

func dataOf(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body struct {
		Data map[string]any `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Data
}

func TestRegister_DuplicateAndMissingParams(t *testing.T) {
	r := setupRouter(t)

	register(t, r, "u1", "Alice")

	w := do(r, "POST", "/register", url.Values{"userId": {"u1"}, "userName": {"Other Name"}})
	assert.Equal(t, 409, w.Code)

	w = do(r, "POST", "/register", url.Values{"userId": {"u2"}})
	assert.Equal(t, 400, w.Code)
}

func TestRecordSession_Errors(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "u1", "Alice")

	// Unknown user
	w := do(r, "POST", "/recordSession", url.Values{
		"userId":     {"ghost"},
		"loginTime":  {"2026-03-10T09:00:00"},
		"logoutTime": {"2026-03-10T10:00:00"},
	})
	assert.Equal(t, 404, w.Code)

	// Logout before login
	w = do(r, "POST", "/recordSession", url.Values{
		"userId":     {"u1"},
		"loginTime":  {"2026-03-10T10:00:00"},
		"logoutTime": {"2026-03-10T09:00:00"},
	})
	assert.Equal(t, 400, w.Code)

	// Unparseable timestamp
	w = do(r, "POST", "/recordSession", url.Values{
		"userId":     {"u1"},
		"loginTime":  {"not-a-time"},
		"logoutTime": {"2026-03-10T09:00:00"},
	})
	assert.Equal(t, 400, w.Code)
}

func TestTotalActivity(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "u1", "Alice")

	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	record(t, r, "u1", base, base.Add(2*time.Hour))
	record(t, r, "u1", base.Add(time.Hour), base.Add(3*time.Hour))

	w := do(r, "GET", "/totalActivity", url.Values{"userId": {"u1"}})
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, float64(180), dataOf(t, w)["total_minutes"])

	w = do(r, "GET", "/totalActivity", url.Values{"userId": {"ghost"}})
	assert.Equal(t, 404, w.Code)
}

func TestMonthlyActivity(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "u1", "Alice")

	login := time.Date(2026, time.March, 10, 23, 0, 0, 0, time.UTC)
	record(t, r, "u1", login, login.Add(2*time.Hour))

	w := do(r, "GET", "/monthlyActivity", url.Values{"userId": {"u1"}, "month": {"2026-03"}})
	assert.Equal(t, 200, w.Code)
	data := dataOf(t, w)
	assert.Equal(t, float64(60), data["2026-03-10"])
	assert.Equal(t, float64(60), data["2026-03-11"])

	w = do(r, "GET", "/monthlyActivity", url.Values{"userId": {"u1"}, "month": {"March"}})
	assert.Equal(t, 400, w.Code)

	w = do(r, "GET", "/monthlyActivity", url.Values{"userId": {"ghost"}, "month": {"2026-03"}})
	assert.Equal(t, 404, w.Code)
}

func TestInactiveUsers(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "old", "Old")
	register(t, r, "fresh", "Fresh")
	register(t, r, "never", "Never")

	record(t, r, "old", time.Now().AddDate(0, 0, -30), time.Now().AddDate(0, 0, -30).Add(time.Hour))
	record(t, r, "fresh", time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))

	w := do(r, "GET", "/inactiveUsers", url.Values{"days": {"5"}})
	assert.Equal(t, 200, w.Code)
	var body struct {
		Data []string `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []string{"old"}, body.Data)

	w = do(r, "GET", "/inactiveUsers", url.Values{"days": {"-1"}})
	assert.Equal(t, 400, w.Code)

	w = do(r, "GET", "/inactiveUsers", url.Values{"days": {"many"}})
	assert.Equal(t, 400, w.Code)
}

func TestStatusEndpoint(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "u1", "Alice")

	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	record(t, r, "u1", base, base.Add(2*time.Hour))

	w := do(r, "GET", "/status", url.Values{"userId": {"u1"}})
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "Highly active", dataOf(t, w)["status"])

	w = do(r, "GET", "/status", url.Values{"userId": {"ghost"}})
	assert.Equal(t, 404, w.Code)
}

func TestLastSessionEndpoint(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "u1", "Alice")

	// No sessions yet: empty date, not an error.
	w := do(r, "GET", "/lastSession", url.Values{"userId": {"u1"}})
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "", dataOf(t, w)["last_session_date"])

	base := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	record(t, r, "u1", base, base.Add(time.Hour))

	w = do(r, "GET", "/lastSession", url.Values{"userId": {"u1"}})
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "2026-03-10", dataOf(t, w)["last_session_date"])

	w = do(r, "GET", "/lastSession", url.Values{"userId": {"ghost"}})
	assert.Equal(t, 404, w.Code)
}

func TestHealthz(t *testing.T) {
	r := setupRouter(t)
	w := do(r, "GET", "/healthz", nil)
	assert.Equal(t, 200, w.Code)
}
