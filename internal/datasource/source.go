// Package datasource abstracts where the dashboard's data comes from: the
// live voice backend or a local fixture set. The implementation is selected
// by configuration instead of silently falling back inside each fetch, so
// failure behavior is testable and the degradation is observable.
package datasource

import (
	log "github.com/sirupsen/logrus"

	"github.com/TeloraVapi/telora-dashboard/internal/metrics"
	"github.com/TeloraVapi/telora-dashboard/internal/models"
)

// Source provides the dashboard's list data
type Source interface {
	Orders() ([]models.Order, error)
	Calls() (models.CallStats, error)
	CallAnalytics() ([]models.AnalyticsPoint, error)
	Assistants() ([]models.Assistant, error)
}

// Backend performs the mutating operations and one-off lookups
type Backend interface {
	ScheduleCall(req models.ScheduleCallRequest) (models.ScheduleCallResponse, error)
	DeleteSchedule(orderID string) error
	CreateAssistant(req models.CreateAssistantRequest) (models.Assistant, error)
	DeleteAssistant(assistantID string) error
	FetchAudioURL(callID string) (string, error)
}

// fallbackSource serves fixture data when the live source fails, keeping the
// dashboard populated while the backend is unreachable. Every degradation is
// counted and logged.
type fallbackSource struct {
	live    Source
	fixture Source
}

// WithFallback wraps a live source so list fetches degrade to fixture data
// instead of erroring
func WithFallback(live, fixture Source) Source {
	return &fallbackSource{live: live, fixture: fixture}
}

func (f *fallbackSource) Orders() ([]models.Order, error) {
	orders, err := f.live.Orders()
	if err != nil {
		f.degrade("orders", err)
		return f.fixture.Orders()
	}
	return orders, nil
}

func (f *fallbackSource) Calls() (models.CallStats, error) {
	stats, err := f.live.Calls()
	if err != nil {
		f.degrade("calls", err)
		return f.fixture.Calls()
	}
	return stats, nil
}

func (f *fallbackSource) CallAnalytics() ([]models.AnalyticsPoint, error) {
	points, err := f.live.CallAnalytics()
	if err != nil {
		f.degrade("analytics", err)
		return f.fixture.CallAnalytics()
	}
	return points, nil
}

func (f *fallbackSource) Assistants() ([]models.Assistant, error) {
	assistants, err := f.live.Assistants()
	if err != nil {
		f.degrade("assistants", err)
		return f.fixture.Assistants()
	}
	return assistants, nil
}

func (f *fallbackSource) degrade(resource string, err error) {
	metrics.FixtureFallbacks.WithLabelValues(resource).Inc()
	log.WithFields(log.Fields{
		"resource": resource,
		"error":    err.Error(),
	}).Warn("Live fetch failed, serving fixture data")
}
