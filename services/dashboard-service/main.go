package main

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/TeloraVapi/telora-dashboard/internal/config"
	"github.com/TeloraVapi/telora-dashboard/internal/datasource"
	"github.com/TeloraVapi/telora-dashboard/internal/metrics"
	"github.com/TeloraVapi/telora-dashboard/internal/models"
	"github.com/TeloraVapi/telora-dashboard/internal/schedule"
	"github.com/TeloraVapi/telora-dashboard/internal/upstream"
)

// DashboardService owns the re-fetchable order snapshot and drives the
// schedule flow against the voice backend
type DashboardService struct {
	source  datasource.Source
	backend datasource.Backend
	gate    *schedule.Gate

	mutex  sync.RWMutex
	orders []models.Order
}

var dashboard *DashboardService

func init() {
	// Initialize logger
	log.SetFormatter(&log.JSONFormatter{})
	log.SetLevel(log.InfoLevel)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	fixture := datasource.NewFixture()

	var source datasource.Source
	var backend datasource.Backend
	if cfg.DataSource == config.SourceLive {
		client := upstream.New(cfg.BackendURL, cfg.APIToken)
		source = datasource.WithFallback(datasource.NewLive(client), fixture)
		backend = client
	} else {
		source = fixture
		backend = fixture
	}

	dashboard = &DashboardService{
		source:  source,
		backend: backend,
		gate:    schedule.NewGate(),
	}

	router := gin.Default()
	router.Use(metrics.PrometheusMiddleware("dashboard-service"))
	router.Use(corsMiddleware(cfg.AllowOrigin))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Dashboard endpoints
	api := router.Group("/api/dashboard")
	{
		api.GET("/orders", listOrders)
		api.POST("/orders/:orderId/schedule", scheduleCall)
		api.DELETE("/orders/:orderId/schedule", deleteSchedule)
		api.GET("/calls", listCalls)
		api.GET("/calls/analytics", callAnalytics)
		api.GET("/calls/:callId/audio", callAudio)
		api.GET("/assistants", listAssistants)
		api.POST("/assistants", createAssistant)
		api.DELETE("/assistants/:assistantId", deleteAssistant)
	}

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.WithFields(log.Fields{
		"backend_url": cfg.BackendURL,
		"data_source": cfg.DataSource,
	}).Info("Dashboard service starting on port " + cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func corsMiddleware(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "*" {
		return cors.Default()
	}
	cfg := cors.DefaultConfig()
	cfg.AllowOrigins = strings.Split(allowOrigin, ",")
	return cors.New(cfg)
}

// listOrders refreshes the order snapshot and returns it with per-status
// counts and badges
func listOrders(c *gin.Context) {
	orders, err := dashboard.source.Orders()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	dashboard.mutex.Lock()
	dashboard.orders = orders
	dashboard.mutex.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"orders":  withOrderBadges(orders),
		"summary": models.SummarizeOrders(orders),
	})
}

// ScheduleCallInput is the operator's schedule submission
type ScheduleCallInput struct {
	AssistantID string `json:"assistant_id"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Hour        int    `json:"hour,omitempty"`
	Minute      int    `json:"minute,omitempty"`
	Period      string `json:"period,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
}

// scheduleCall runs the full flow: local validation, one backend submission,
// then snapshot reconciliation on success
func scheduleCall(c *gin.Context) {
	orderID := c.Param("orderId")

	var input ScheduleCallInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	// One submission per order at a time, duplicates are rejected outright
	if !dashboard.gate.Begin(orderID) {
		c.JSON(http.StatusConflict, gin.H{"error": "A submission for this order is already in progress"})
		return
	}
	defer dashboard.gate.End(orderID)

	wallTime := input.Time
	if wallTime == "" && input.Period != "" {
		composed, err := schedule.ComposeTime(input.Hour, input.Minute, input.Period)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		wallTime = composed
	}

	req := schedule.Request{
		OrderID:     orderID,
		AssistantID: input.AssistantID,
		Date:        input.Date,
		Time:        wallTime,
		Timezone:    input.Timezone,
	}

	// Local validation happens before any network call
	payload, err := req.ToPayload(time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := dashboard.backend.ScheduleCall(payload)
	if err != nil {
		log.WithFields(log.Fields{
			"order_id": orderID,
			"error":    err.Error(),
		}).Error("Failed to schedule call")
		respondUpstreamError(c, err)
		return
	}

	order := dashboard.reconcileOrder(orderID, models.CallStatusScheduled)

	c.JSON(http.StatusOK, gin.H{
		"message":        resp.Message,
		"call_id":        resp.CallID,
		"scheduled_time": payload.ScheduledTimeUtc,
		"order":          order,
	})
}

// deleteSchedule cancels a scheduled call. The order keeps its scheduled
// status when the backend refuses, so the operator can retry.
func deleteSchedule(c *gin.Context) {
	orderID := schedule.StripOrderID(c.Param("orderId"))

	if !dashboard.gate.Begin(orderID) {
		c.JSON(http.StatusConflict, gin.H{"error": "A submission for this order is already in progress"})
		return
	}
	defer dashboard.gate.End(orderID)

	if status, known := dashboard.orderStatus(orderID); known && status != models.CallStatusScheduled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Order has no scheduled call to delete"})
		return
	}

	if err := dashboard.backend.DeleteSchedule(orderID); err != nil {
		log.WithFields(log.Fields{
			"order_id": orderID,
			"error":    err.Error(),
		}).Error("Failed to delete call schedule")
		respondUpstreamError(c, err)
		return
	}

	order := dashboard.reconcileOrder(orderID, models.CallStatusNotScheduled)

	c.JSON(http.StatusOK, gin.H{
		"message": "Schedule deleted successfully",
		"order":   order,
	})
}

func listCalls(c *gin.Context) {
	stats, err := dashboard.source.Calls()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"calls":            withCallBadges(stats.Calls),
		"total_calls":      stats.TotalCalls,
		"successful_calls": stats.SuccessfulCalls,
		"success_rate":     stats.SuccessRate,
		"avg_duration":     stats.AvgDuration,
	})
}

func callAnalytics(c *gin.Context) {
	points, err := dashboard.source.CallAnalytics()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"analytics": points})
}

func callAudio(c *gin.Context) {
	url, err := dashboard.backend.FetchAudioURL(c.Param("callId"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audio_url": url})
}

func listAssistants(c *gin.Context) {
	assistants, err := dashboard.source.Assistants()
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assistants": withAssistantBadges(assistants)})
}

// CreateAssistantInput is the creation form's payload
type CreateAssistantInput struct {
	Name      string   `json:"name" binding:"required"`
	Product   string   `json:"product" binding:"required"`
	Questions []string `json:"questions" binding:"required"`
}

// createAssistant validates the question list and registers the assistant.
// Failures propagate so the caller's form stays open for correction.
func createAssistant(c *gin.Context) {
	var input CreateAssistantInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	questions := make([]string, 0, len(input.Questions))
	for _, q := range input.Questions {
		q = strings.TrimSpace(q)
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Questions must not be blank"})
			return
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 || len(questions) > models.MaxAssistantQuestions {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Assistants take between 1 and 3 questions"})
		return
	}

	assistant, err := dashboard.backend.CreateAssistant(models.CreateAssistantRequest{
		Name:        input.Name,
		ProductName: input.Product,
		Questions:   questions,
	})
	if err != nil {
		respondUpstreamError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assistant": assistant})
}

func deleteAssistant(c *gin.Context) {
	assistantID := c.Param("assistantId")
	if err := dashboard.backend.DeleteAssistant(assistantID); err != nil {
		respondUpstreamError(c, err)
		return
	}

	log.WithField("assistant_id", assistantID).Info("Deleted assistant")
	c.JSON(http.StatusOK, gin.H{"message": "Assistant deleted successfully"})
}

// reconcileOrder brings the order snapshot in line with a status transition.
// A full re-fetch is preferred because it picks up any other server-side
// changes; when the source cannot re-fetch, the order is mutated in place.
func (d *DashboardService) reconcileOrder(orderID, status string) *models.Order {
	if orders, err := d.source.Orders(); err == nil {
		d.mutex.Lock()
		d.orders = orders
		d.mutex.Unlock()
	} else {
		log.WithField("error", err.Error()).Warn("Re-fetch after status transition failed, mutating snapshot locally")
		d.mutex.Lock()
		for i := range d.orders {
			if d.orders[i].ID == orderID {
				d.orders[i].CallStatus = status
				break
			}
		}
		d.mutex.Unlock()
	}

	d.mutex.RLock()
	defer d.mutex.RUnlock()
	for i := range d.orders {
		if d.orders[i].ID == orderID {
			order := d.orders[i]
			return &order
		}
	}
	return nil
}

func (d *DashboardService) orderStatus(orderID string) (string, bool) {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	for _, o := range d.orders {
		if o.ID == orderID {
			return o.CallStatus, true
		}
	}
	return "", false
}

// OrderView pairs an order with its rendered badge
type OrderView struct {
	models.Order
	Badge models.Badge `json:"badge"`
}

// CallView pairs a call with its rendered badge
type CallView struct {
	models.Call
	Badge models.Badge `json:"badge"`
}

// AssistantView pairs an assistant with its rendered badge
type AssistantView struct {
	models.Assistant
	Badge models.Badge `json:"badge"`
}

func withOrderBadges(orders []models.Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, OrderView{Order: o, Badge: models.OrderCallBadge(o.CallStatus)})
	}
	return views
}

func withCallBadges(calls []models.Call) []CallView {
	views := make([]CallView, 0, len(calls))
	for _, c := range calls {
		views = append(views, CallView{Call: c, Badge: models.CallBadge(c.Status)})
	}
	return views
}

func withAssistantBadges(assistants []models.Assistant) []AssistantView {
	views := make([]AssistantView, 0, len(assistants))
	for _, a := range assistants {
		views = append(views, AssistantView{Assistant: a, Badge: models.AssistantBadge(a.Status)})
	}
	return views
}

// respondUpstreamError surfaces the server's own message when the backend
// answered, a generic connection hint otherwise
func respondUpstreamError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500 {
		status = apiErr.StatusCode
	}
	c.JSON(status, gin.H{"error": upstream.UserMessage(err)})
}
