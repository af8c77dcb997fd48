package datasource

import (
	"github.com/TeloraVapi/telora-dashboard/internal/models"
	"github.com/TeloraVapi/telora-dashboard/internal/upstream"
)

// liveSource reads from the voice backend through the upstream client
type liveSource struct {
	client *upstream.Client
}

// NewLive creates a Source backed by the voice backend
func NewLive(client *upstream.Client) Source {
	return &liveSource{client: client}
}

func (l *liveSource) Orders() ([]models.Order, error) {
	return l.client.FetchOrders()
}

func (l *liveSource) Calls() (models.CallStats, error) {
	return l.client.FetchCalls()
}

func (l *liveSource) CallAnalytics() ([]models.AnalyticsPoint, error) {
	return l.client.FetchCallAnalytics()
}

func (l *liveSource) Assistants() ([]models.Assistant, error) {
	return l.client.FetchAssistants()
}
