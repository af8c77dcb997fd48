package upstream

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/TeloraVapi/telora-dashboard/internal/models"
)

// FetchOrders pulls the synced order list and translates it to the
// dashboard shape.
func (c *Client) FetchOrders() ([]models.Order, error) {
	result, err := c.execute("orders", func() (interface{}, error) {
		resp, err := c.http.R().Get("/api/orders/sync")
		if err != nil {
			return nil, fmt.Errorf("fetch orders: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		var payload models.ApiOrderResponse
		if err := unmarshalBody(resp, &payload); err != nil {
			return nil, fmt.Errorf("parse orders response: %w", err)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	payload := result.(models.ApiOrderResponse)
	orders := make([]models.Order, 0, len(payload.Orders))
	for _, api := range payload.Orders {
		orders = append(orders, models.TransformApiOrder(api))
	}

	log.WithFields(log.Fields{
		"count":      len(orders),
		"synced_new": payload.SyncedNew,
	}).Info("Fetched orders from backend")

	return orders, nil
}

// UpdateOrderCallStatus pushes a call status change for one order. The
// backend expects its own enumeration, so the dashboard status is widened
// back to the wire form.
func (c *Client) UpdateOrderCallStatus(orderID, status string) error {
	wireStatus := "Unscheduled"
	if status == models.CallStatusScheduled {
		wireStatus = "Scheduled"
	}

	_, err := c.execute("orders", func() (interface{}, error) {
		resp, err := c.http.R().
			SetBody(map[string]string{"callStatus": wireStatus}).
			Patch("/api/orders/" + orderID + "/status")
		if err != nil {
			return nil, fmt.Errorf("update order status: %w", err)
		}
		return nil, checkStatus(resp)
	})
	return err
}
