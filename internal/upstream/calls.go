package upstream

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/TeloraVapi/telora-dashboard/internal/models"
)

// FetchCalls pulls the call list, translates it, and computes the stats
// block the dashboard header shows.
func (c *Client) FetchCalls() (models.CallStats, error) {
	result, err := c.execute("calls", func() (interface{}, error) {
		resp, err := c.http.R().Get("/calls")
		if err != nil {
			return nil, fmt.Errorf("fetch calls: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		var payload models.ApiCallsResponse
		if err := unmarshalBody(resp, &payload); err != nil {
			return nil, fmt.Errorf("parse calls response: %w", err)
		}
		return payload, nil
	})
	if err != nil {
		return models.CallStats{}, err
	}

	payload := result.(models.ApiCallsResponse)
	calls := make([]models.Call, 0, len(payload.Calls))
	for _, api := range payload.Calls {
		calls = append(calls, models.TransformApiCall(api))
	}

	log.WithField("count", len(calls)).Info("Fetched calls from backend")

	return models.BuildCallStats(calls, payload.Total), nil
}

// FetchCallAnalytics pulls the call volume chart data. The backend has
// returned both a bare array and an {analytics: [...]} wrapper over time, so
// both shapes are accepted.
func (c *Client) FetchCallAnalytics() ([]models.AnalyticsPoint, error) {
	result, err := c.execute("analytics", func() (interface{}, error) {
		resp, err := c.http.R().Get("/calls/analytics")
		if err != nil {
			return nil, fmt.Errorf("fetch call analytics: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		var points []models.AnalyticsPoint
		if err := unmarshalBody(resp, &points); err == nil {
			return points, nil
		}

		var wrapped struct {
			Analytics []models.AnalyticsPoint `json:"analytics"`
		}
		if err := unmarshalBody(resp, &wrapped); err != nil {
			return nil, fmt.Errorf("parse analytics response: %w", err)
		}
		return wrapped.Analytics, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]models.AnalyticsPoint), nil
}

// FetchAudioURL resolves the playable stereo recording URL for a call
func (c *Client) FetchAudioURL(callID string) (string, error) {
	result, err := c.execute("audio", func() (interface{}, error) {
		resp, err := c.audio.R().Get("/calls/" + callID + "/audio")
		if err != nil {
			return nil, fmt.Errorf("fetch audio url: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		var payload models.AudioURLResponse
		if err := unmarshalBody(resp, &payload); err != nil {
			return nil, fmt.Errorf("parse audio response: %w", err)
		}
		if payload.AudioURLs.Stereo == "" {
			return nil, fmt.Errorf("no stereo audio URL in backend response for call %s", callID)
		}
		return payload.AudioURLs.Stereo, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}
