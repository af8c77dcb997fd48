package upstream

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/TeloraVapi/telora-dashboard/internal/metrics"
	"github.com/TeloraVapi/telora-dashboard/internal/models"
)

// ScheduleCall submits a validated schedule request. The request's order id
// must already carry its "#" prefix; validation happens before this call.
func (c *Client) ScheduleCall(req models.ScheduleCallRequest) (models.ScheduleCallResponse, error) {
	result, err := c.execute("schedule", func() (interface{}, error) {
		resp, err := c.http.R().
			SetBody(req).
			Post("/calls/schedule")
		if err != nil {
			return nil, fmt.Errorf("schedule call: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		// The backend may answer 2xx with an empty or non-JSON body; a
		// successful status is what matters.
		var payload models.ScheduleCallResponse
		_ = unmarshalBody(resp, &payload)
		return payload, nil
	})
	if err != nil {
		metrics.SchedulesTotal.WithLabelValues("error").Inc()
		return models.ScheduleCallResponse{}, err
	}
	metrics.SchedulesTotal.WithLabelValues("success").Inc()

	payload := result.(models.ScheduleCallResponse)
	if payload.CallID == "" {
		payload.CallID = "scheduled"
	}
	if payload.Message == "" {
		payload.Message = "Call scheduled successfully"
	}

	log.WithFields(log.Fields{
		"order_id":       req.OrderID,
		"assistant_id":   req.AssistantID,
		"scheduled_time": req.ScheduledTimeUtc,
	}).Info("Scheduled call")

	return payload, nil
}

// DeleteSchedule cancels the scheduled call for an order. The id is sent
// without any "#" prefix.
func (c *Client) DeleteSchedule(orderID string) error {
	_, err := c.execute("schedule", func() (interface{}, error) {
		resp, err := c.http.R().Delete("/calls/" + orderID)
		if err != nil {
			return nil, fmt.Errorf("delete schedule: %w", err)
		}
		return nil, checkStatus(resp)
	})
	if err != nil {
		metrics.ScheduleDeletesTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.ScheduleDeletesTotal.WithLabelValues("success").Inc()

	log.WithField("order_id", orderID).Info("Deleted call schedule")
	return nil
}
