package datasource

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/TeloraVapi/telora-dashboard/internal/models"
	"github.com/TeloraVapi/telora-dashboard/internal/schedule"
)

// FixtureStore serves a canned dataset and applies mutations to it in
// memory, so the dashboard stays fully explorable without a backend. It
// implements both Source and Backend.
type FixtureStore struct {
	mu         sync.RWMutex
	orders     []models.Order
	calls      []models.Call
	assistants []models.Assistant
	analytics  []models.AnalyticsPoint
}

// NewFixture creates a store populated with the demo dataset
func NewFixture() *FixtureStore {
	return &FixtureStore{
		orders:     fixtureOrders(),
		calls:      fixtureCalls(),
		assistants: fixtureAssistants(),
		analytics:  fixtureAnalytics(),
	}
}

func (s *FixtureStore) Orders() ([]models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Order, len(s.orders))
	copy(out, s.orders)
	return out, nil
}

func (s *FixtureStore) Calls() (models.CallStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	calls := make([]models.Call, len(s.calls))
	copy(calls, s.calls)
	return models.BuildCallStats(calls, len(calls)), nil
}

func (s *FixtureStore) CallAnalytics() ([]models.AnalyticsPoint, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.AnalyticsPoint, len(s.analytics))
	copy(out, s.analytics)
	return out, nil
}

func (s *FixtureStore) Assistants() ([]models.Assistant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Assistant, len(s.assistants))
	copy(out, s.assistants)
	models.SortAssistantsNewestFirst(out)
	return out, nil
}

// ScheduleCall marks the order as scheduled so a re-fetch observes the
// transition, the same way the real backend would
func (s *FixtureStore) ScheduleCall(req models.ScheduleCallRequest) (models.ScheduleCallResponse, error) {
	id := schedule.StripOrderID(req.OrderID)

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == id {
			s.orders[i].CallStatus = models.CallStatusScheduled
			return models.ScheduleCallResponse{
				CallID:        id,
				Message:       "Call scheduled successfully",
				ScheduledTime: req.ScheduledTimeUtc,
			}, nil
		}
	}
	return models.ScheduleCallResponse{}, fmt.Errorf("order %s not found", id)
}

// DeleteSchedule reverts a scheduled order to not_scheduled
func (s *FixtureStore) DeleteSchedule(orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.orders {
		if s.orders[i].ID == orderID {
			s.orders[i].CallStatus = models.CallStatusNotScheduled
			return nil
		}
	}
	return fmt.Errorf("order %s not found", orderID)
}

// CreateAssistant appends a new assistant to the fixture set
func (s *FixtureStore) CreateAssistant(req models.CreateAssistantRequest) (models.Assistant, error) {
	assistant := models.Assistant{
		ID:             "assistant-" + uuid.NewString(),
		Name:           req.Name,
		Product:        req.ProductName,
		QuestionsCount: len(req.Questions),
		Questions:      req.Questions,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		IsActive:       true,
		LastUsed:       "Never",
		Status:         models.AssistantStatusActive,
	}

	s.mu.Lock()
	s.assistants = append(s.assistants, assistant)
	s.mu.Unlock()

	return assistant, nil
}

// DeleteAssistant removes an assistant from the fixture set
func (s *FixtureStore) DeleteAssistant(assistantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.assistants {
		if s.assistants[i].ID == assistantID {
			s.assistants = append(s.assistants[:i], s.assistants[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("assistant %s not found", assistantID)
}

// FetchAudioURL returns the canned recording URL for a call
func (s *FixtureStore) FetchAudioURL(callID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.calls {
		if c.ID == callID && c.AudioURL != "" {
			return c.AudioURL, nil
		}
	}
	return "", fmt.Errorf("no audio recording for call %s", callID)
}

func fixtureOrders() []models.Order {
	return []models.Order{
		{ID: "61391", CustomerName: "Sarah Johnson", Phone: "+1 (555) 123-4567", Products: "Wireless Headphones", OrderDate: "2024-03-27", DeliveryDate: "2024-03-24", CallStatus: models.CallStatusCompleted, Total: "$199", ShippingState: "CA"},
		{ID: "61390", CustomerName: "Mike Chen", Phone: "+1 (555) 987-6543", Products: "Smart Watch Pro, Charging Cable", OrderDate: "2024-03-27", DeliveryDate: "2024-03-24", CallStatus: models.CallStatusScheduled, Total: "$449", ShippingState: "NY"},
		{ID: "61389", CustomerName: "Emily Davis", Phone: "+1 (555) 456-7890", Products: "Bluetooth Speaker", OrderDate: "2024-03-26", DeliveryDate: "2024-03-23", CallStatus: models.CallStatusNotScheduled, Total: "$89", ShippingState: "TX"},
		{ID: "61388", CustomerName: "David Wilson", Phone: "+1 (555) 321-0987", Products: "Laptop Stand", OrderDate: "2024-03-24", DeliveryDate: "2024-03-21", CallStatus: models.CallStatusCompleted, Total: "$79", ShippingState: "WA"},
		{ID: "61387", CustomerName: "Lisa Thompson", Phone: "+1 (555) 654-3210", Products: "Phone Case, Screen Protector", OrderDate: "2024-03-24", DeliveryDate: "2024-03-21", CallStatus: models.CallStatusScheduled, Total: "$34", ShippingState: "FL"},
	}
}

func fixtureCalls() []models.Call {
	return []models.Call{
		{ID: "1", CustomerName: "Sarah Johnson", OrderID: "61391", AssistantName: "Alex Thompson", PhoneNumber: "+1 (555) 123-4567", ProductName: "Wireless Headphones Pro", Status: models.CallStateCompleted, Transcript: "Customer was very satisfied with the product quality and delivery speed. Asked about warranty coverage and was provided with detailed information.", Summary: "Positive feedback on product quality and delivery experience. Customer likely to recommend.", AudioURL: "https://example.com/audio/call-001.mp3", Duration: "3m 24s", CallDate: "2024-01-15T10:30:00Z"},
		{ID: "2", CustomerName: "Mike Chen", OrderID: "61390", AssistantName: "Emma Rodriguez", PhoneNumber: "+1 (555) 987-6543", ProductName: "Smart Watch Pro", Status: models.CallStateInProgress, Transcript: "Call currently in progress. Customer discussing setup issues with the watch connectivity.", Summary: "Technical support call in progress regarding device setup.", AudioURL: "https://example.com/audio/call-002.mp3", Duration: "2m 15s", CallDate: "2024-01-15T14:45:00Z"},
		{ID: "3", CustomerName: "Emily Davis", OrderID: "61389", AssistantName: "James Wilson", PhoneNumber: "+1 (555) 456-7890", ProductName: "Bluetooth Speaker", Status: models.CallStateScheduled, Transcript: "Call scheduled for tomorrow at 2:00 PM EST.", Summary: "Follow-up call scheduled to gather product feedback.", AudioURL: "https://example.com/audio/call-003.mp3", Duration: "N/A", CallDate: "2024-01-16T14:00:00Z"},
		{ID: "4", CustomerName: "David Wilson", OrderID: "61388", AssistantName: "Sophie Martinez", PhoneNumber: "+1 (555) 321-0987", ProductName: "Laptop Stand Deluxe", Status: models.CallStateFailed, Transcript: "Customer was not available. Left voicemail requesting callback.", Summary: "Unsuccessful contact attempt. Retry scheduled.", AudioURL: "https://example.com/audio/call-004.mp3", Duration: "0m 45s", CallDate: "2024-01-15T16:20:00Z"},
		{ID: "5", CustomerName: "Lisa Thompson", OrderID: "61387", AssistantName: "Marcus Johnson", PhoneNumber: "+1 (555) 654-3210", ProductName: "Phone Case Bundle", Status: models.CallStateCompleted, Transcript: "Customer reported minor issue with case fit but overall satisfied.", Summary: "Minor product concern addressed. Customer satisfied with resolution.", AudioURL: "https://example.com/audio/call-005.mp3", Duration: "4m 12s", CallDate: "2024-01-15T11:15:00Z"},
	}
}

func fixtureAssistants() []models.Assistant {
	return []models.Assistant{
		{ID: "post-purchase-feedback", Name: "Post-Purchase Feedback", Product: "General Products", QuestionsCount: 3, Questions: []string{"How was your experience?", "Any issues?", "Would you recommend?"}, CreatedAt: "2024-01-15T10:00:00Z", IsActive: true, LastUsed: "Never", Status: models.AssistantStatusActive},
		{ID: "product-review", Name: "Product Review Assistant", Product: "Electronics", QuestionsCount: 2, Questions: []string{"Rate the product", "Leave a review"}, CreatedAt: "2024-01-10T10:00:00Z", IsActive: true, LastUsed: "Never", Status: models.AssistantStatusActive},
		{ID: "customer-satisfaction", Name: "Customer Satisfaction Survey", Product: "Services", QuestionsCount: 3, Questions: []string{"Overall satisfaction?", "Service quality?", "Improvements?"}, CreatedAt: "2024-01-05T10:00:00Z", IsActive: true, LastUsed: "Never", Status: models.AssistantStatusActive},
		{ID: "follow-up", Name: "Follow-up Assistant", Product: "All Products", QuestionsCount: 2, Questions: []string{"How are things going?", "Any concerns?"}, CreatedAt: "2024-01-01T10:00:00Z", IsActive: true, LastUsed: "Never", Status: models.AssistantStatusActive},
	}
}

func fixtureAnalytics() []models.AnalyticsPoint {
	return []models.AnalyticsPoint{
		{Name: "Jan 1", TotalCalls: 7, SuccessfulCalls: 5},
		{Name: "Jan 8", TotalCalls: 34, SuccessfulCalls: 31},
		{Name: "Jan 15", TotalCalls: 12, SuccessfulCalls: 8},
		{Name: "Jan 22", TotalCalls: 45, SuccessfulCalls: 37},
		{Name: "Jan 29", TotalCalls: 8, SuccessfulCalls: 7},
		{Name: "Feb 5", TotalCalls: 22, SuccessfulCalls: 14},
		{Name: "Feb 12", TotalCalls: 56, SuccessfulCalls: 52},
		{Name: "Feb 19", TotalCalls: 13, SuccessfulCalls: 11},
		{Name: "Feb 26", TotalCalls: 67, SuccessfulCalls: 49},
	}
}
