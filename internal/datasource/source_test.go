package datasource

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TeloraVapi/telora-dashboard/internal/models"
)

// failingSource simulates an unreachable backend
type failingSource struct{}

var errDown = errors.New("backend unreachable")

func (failingSource) Orders() ([]models.Order, error)                 { return nil, errDown }
func (failingSource) Calls() (models.CallStats, error)                { return models.CallStats{}, errDown }
func (failingSource) CallAnalytics() ([]models.AnalyticsPoint, error) { return nil, errDown }
func (failingSource) Assistants() ([]models.Assistant, error)         { return nil, errDown }

func TestFallbackServesFixtureWhenLiveFails(t *testing.T) {
	source := WithFallback(failingSource{}, NewFixture())

	orders, err := source.Orders()
	assert.NoError(t, err)
	assert.NotEmpty(t, orders)

	stats, err := source.Calls()
	assert.NoError(t, err)
	assert.NotEmpty(t, stats.Calls)

	points, err := source.CallAnalytics()
	assert.NoError(t, err)
	assert.NotEmpty(t, points)

	assistants, err := source.Assistants()
	assert.NoError(t, err)
	assert.NotEmpty(t, assistants)
}

func TestFallbackPrefersLiveData(t *testing.T) {
	live := NewFixture()
	// Distinguish the two stores by mutating the live one
	_, err := live.ScheduleCall(models.ScheduleCallRequest{OrderID: "#61389"})
	assert.NoError(t, err)

	source := WithFallback(live, NewFixture())
	orders, err := source.Orders()
	assert.NoError(t, err)

	var got models.Order
	for _, o := range orders {
		if o.ID == "61389" {
			got = o
		}
	}
	assert.Equal(t, models.CallStatusScheduled, got.CallStatus)
}

func TestFixtureScheduleTransition(t *testing.T) {
	store := NewFixture()

	resp, err := store.ScheduleCall(models.ScheduleCallRequest{
		OrderID:          "#61389",
		ScheduledTimeUtc: "2025-06-13T05:35:00Z",
		AssistantID:      "follow-up",
	})
	assert.NoError(t, err)
	assert.Equal(t, "61389", resp.CallID)

	orders, _ := store.Orders()
	for _, o := range orders {
		if o.ID == "61389" {
			assert.Equal(t, models.CallStatusScheduled, o.CallStatus)
		}
	}

	assert.NoError(t, store.DeleteSchedule("61389"))
	orders, _ = store.Orders()
	for _, o := range orders {
		if o.ID == "61389" {
			assert.Equal(t, models.CallStatusNotScheduled, o.CallStatus)
		}
	}
}

func TestFixtureScheduleUnknownOrder(t *testing.T) {
	store := NewFixture()

	_, err := store.ScheduleCall(models.ScheduleCallRequest{OrderID: "#99999"})
	assert.Error(t, err)
	assert.Error(t, store.DeleteSchedule("99999"))
}

func TestFixtureAssistantLifecycle(t *testing.T) {
	store := NewFixture()

	created, err := store.CreateAssistant(models.CreateAssistantRequest{
		Name:        "Warranty Check-in",
		ProductName: "Appliances",
		Questions:   []string{"Is everything working?"},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	assistants, _ := store.Assistants()
	found := false
	for _, a := range assistants {
		if a.ID == created.ID {
			found = true
		}
	}
	assert.True(t, found)

	assert.NoError(t, store.DeleteAssistant(created.ID))
	assert.Error(t, store.DeleteAssistant(created.ID), "second delete fails")
}

func TestFixtureAudioURL(t *testing.T) {
	store := NewFixture()

	url, err := store.FetchAudioURL("1")
	assert.NoError(t, err)
	assert.NotEmpty(t, url)

	_, err = store.FetchAudioURL("999")
	assert.Error(t, err)
}

func TestFixtureOrdersAreCopies(t *testing.T) {
	store := NewFixture()

	orders, _ := store.Orders()
	orders[0].CallStatus = "mutated"

	again, _ := store.Orders()
	assert.NotEqual(t, "mutated", again[0].CallStatus)
}
