package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/TeloraVapi/telora-dashboard/internal/datasource"
	"github.com/TeloraVapi/telora-dashboard/internal/models"
	"github.com/TeloraVapi/telora-dashboard/internal/schedule"
)

// spyBackend counts mutating calls on its way through to the fixture store
type spyBackend struct {
	*datasource.FixtureStore
	scheduleCalls int
	deleteCalls   int
	scheduleErr   error
	deleteErr     error
}

func (s *spyBackend) ScheduleCall(req models.ScheduleCallRequest) (models.ScheduleCallResponse, error) {
	s.scheduleCalls++
	if s.scheduleErr != nil {
		return models.ScheduleCallResponse{}, s.scheduleErr
	}
	return s.FixtureStore.ScheduleCall(req)
}

func (s *spyBackend) DeleteSchedule(orderID string) error {
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	return s.FixtureStore.DeleteSchedule(orderID)
}

func newTestService() (*spyBackend, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	fixture := datasource.NewFixture()
	spy := &spyBackend{FixtureStore: fixture}

	dashboard = &DashboardService{
		source:  fixture,
		backend: spy,
		gate:    schedule.NewGate(),
	}

	router := gin.New()
	api := router.Group("/api/dashboard")
	api.GET("/orders", listOrders)
	api.POST("/orders/:orderId/schedule", scheduleCall)
	api.DELETE("/orders/:orderId/schedule", deleteSchedule)
	api.GET("/calls", listCalls)
	api.GET("/calls/analytics", callAnalytics)
	api.GET("/calls/:callId/audio", callAudio)
	api.GET("/assistants", listAssistants)
	api.POST("/assistants", createAssistant)
	api.DELETE("/assistants/:assistantId", deleteAssistant)

	return spy, router
}

func performJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func futureSchedule() ScheduleCallInput {
	tomorrow := time.Now().AddDate(0, 0, 1)
	return ScheduleCallInput{
		AssistantID: "follow-up",
		Date:        tomorrow.UTC().Format("2006-01-02"),
		Time:        "14:00",
	}
}

func TestListOrders(t *testing.T) {
	_, router := newTestService()

	rr := performJSON(router, "GET", "/api/dashboard/orders", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Orders []struct {
			ID         string       `json:"id"`
			CallStatus string       `json:"call_status"`
			Badge      models.Badge `json:"badge"`
		} `json:"orders"`
		Summary models.OrderSummary `json:"summary"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Orders), resp.Summary.Total)
	for _, o := range resp.Orders {
		assert.NotEmpty(t, o.Badge.Label, "every order renders a badge")
	}
}

func TestScheduleCallTransitionsOrder(t *testing.T) {
	spy, router := newTestService()

	// 61389 starts not_scheduled in the fixture set
	rr := performJSON(router, "POST", "/api/dashboard/orders/61389/schedule", futureSchedule())

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 1, spy.scheduleCalls, "exactly one backend submission")

	var resp struct {
		Order models.Order `json:"order"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, models.CallStatusScheduled, resp.Order.CallStatus)
}

func TestScheduleCallRejectsPastTimeLocally(t *testing.T) {
	spy, router := newTestService()

	input := ScheduleCallInput{
		AssistantID: "follow-up",
		Date:        time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02"),
		Time:        "14:00",
	}
	rr := performJSON(router, "POST", "/api/dashboard/orders/61389/schedule", input)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, spy.scheduleCalls, "no network call on local rejection")
	assert.Contains(t, rr.Body.String(), "5 minutes")
}

func TestScheduleCallRejectsMissingAssistant(t *testing.T) {
	spy, router := newTestService()

	input := futureSchedule()
	input.AssistantID = ""
	rr := performJSON(router, "POST", "/api/dashboard/orders/61389/schedule", input)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, spy.scheduleCalls)
}

func TestScheduleCallComposesTwelveHourTime(t *testing.T) {
	spy, router := newTestService()

	tomorrow := time.Now().AddDate(0, 0, 1)
	input := ScheduleCallInput{
		AssistantID: "follow-up",
		Date:        tomorrow.UTC().Format("2006-01-02"),
		Hour:        2,
		Minute:      30,
		Period:      "PM",
	}
	rr := performJSON(router, "POST", "/api/dashboard/orders/61389/schedule", input)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 1, spy.scheduleCalls)

	var resp struct {
		ScheduledTime string `json:"scheduled_time"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.ScheduledTime, "T14:30:00Z")
}

func TestScheduleCallRejectsConcurrentSubmission(t *testing.T) {
	spy, router := newTestService()

	// Simulate a submission already in flight for this order
	assert.True(t, dashboard.gate.Begin("61389"))
	defer dashboard.gate.End("61389")

	rr := performJSON(router, "POST", "/api/dashboard/orders/61389/schedule", futureSchedule())

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, 0, spy.scheduleCalls)
}

func TestScheduleCallBackendFailureSurfacesMessage(t *testing.T) {
	spy, router := newTestService()
	spy.scheduleErr = errors.New("boom")

	rr := performJSON(router, "POST", "/api/dashboard/orders/61389/schedule", futureSchedule())

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, 1, spy.scheduleCalls)

	// The order did not transition
	orders, _ := spy.Orders()
	for _, o := range orders {
		if o.ID == "61389" {
			assert.Equal(t, models.CallStatusNotScheduled, o.CallStatus)
		}
	}
}

func TestDeleteScheduleTransitionsOrder(t *testing.T) {
	spy, router := newTestService()

	// 61390 starts scheduled in the fixture set
	rr := performJSON(router, "DELETE", "/api/dashboard/orders/61390/schedule", nil)

	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, 1, spy.deleteCalls, "exactly one backend deletion")

	var resp struct {
		Order models.Order `json:"order"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, models.CallStatusNotScheduled, resp.Order.CallStatus)
}

func TestDeleteScheduleFailureKeepsOrderScheduled(t *testing.T) {
	spy, router := newTestService()
	spy.deleteErr = errors.New("backend down")

	rr := performJSON(router, "DELETE", "/api/dashboard/orders/61390/schedule", nil)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Equal(t, 1, spy.deleteCalls)

	orders, _ := spy.Orders()
	for _, o := range orders {
		if o.ID == "61390" {
			assert.Equal(t, models.CallStatusScheduled, o.CallStatus)
		}
	}
}

func TestDeleteScheduleRejectsUnscheduledOrder(t *testing.T) {
	spy, router := newTestService()

	// Populate the snapshot so the status check can run
	performJSON(router, "GET", "/api/dashboard/orders", nil)

	// 61391 is completed, not scheduled
	rr := performJSON(router, "DELETE", "/api/dashboard/orders/61391/schedule", nil)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, 0, spy.deleteCalls)
}

func TestListCalls(t *testing.T) {
	_, router := newTestService()

	rr := performJSON(router, "GET", "/api/dashboard/calls", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Calls []struct {
			Status string       `json:"status"`
			Badge  models.Badge `json:"badge"`
		} `json:"calls"`
		TotalCalls  int `json:"total_calls"`
		SuccessRate int `json:"success_rate"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Calls)
	assert.Greater(t, resp.TotalCalls, 0)
	for _, c := range resp.Calls {
		assert.NotEmpty(t, c.Badge.Label)
	}
}

func TestCallAnalytics(t *testing.T) {
	_, router := newTestService()

	rr := performJSON(router, "GET", "/api/dashboard/calls/analytics", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Analytics []models.AnalyticsPoint `json:"analytics"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Analytics)
}

func TestCallAudio(t *testing.T) {
	_, router := newTestService()

	rr := performJSON(router, "GET", "/api/dashboard/calls/1/audio", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "audio_url")

	rr = performJSON(router, "GET", "/api/dashboard/calls/999/audio", nil)
	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestCreateAssistant(t *testing.T) {
	_, router := newTestService()

	rr := performJSON(router, "POST", "/api/dashboard/assistants", CreateAssistantInput{
		Name:      "Warranty Check-in",
		Product:   "Appliances",
		Questions: []string{" Is everything working? ", "Need help?"},
	})

	assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var resp struct {
		Assistant models.Assistant `json:"assistant"`
	}
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Warranty Check-in", resp.Assistant.Name)
	assert.Equal(t, []string{"Is everything working?", "Need help?"}, resp.Assistant.Questions, "questions are trimmed")
}

func TestCreateAssistantRejectsTooManyQuestions(t *testing.T) {
	_, router := newTestService()

	rr := performJSON(router, "POST", "/api/dashboard/assistants", CreateAssistantInput{
		Name:      "Too Chatty",
		Product:   "Anything",
		Questions: []string{"1?", "2?", "3?", "4?"},
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCreateAssistantRejectsBlankQuestion(t *testing.T) {
	_, router := newTestService()

	rr := performJSON(router, "POST", "/api/dashboard/assistants", CreateAssistantInput{
		Name:      "Quiet",
		Product:   "Anything",
		Questions: []string{"Fine?", "   "},
	})

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestDeleteAssistant(t *testing.T) {
	_, router := newTestService()

	rr := performJSON(router, "DELETE", "/api/dashboard/assistants/follow-up", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	assistants, _ := dashboard.source.Assistants()
	for _, a := range assistants {
		assert.NotEqual(t, "follow-up", a.ID)
	}
}
