package upstream

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/TeloraVapi/telora-dashboard/internal/models"
)

// FetchAssistants pulls the assistant list, newest first
func (c *Client) FetchAssistants() ([]models.Assistant, error) {
	result, err := c.execute("assistants", func() (interface{}, error) {
		resp, err := c.http.R().Get("/api/assistants")
		if err != nil {
			return nil, fmt.Errorf("fetch assistants: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		var payload []models.ApiAssistant
		if err := unmarshalBody(resp, &payload); err != nil {
			return nil, fmt.Errorf("parse assistants response: %w", err)
		}
		return payload, nil
	})
	if err != nil {
		return nil, err
	}

	payload := result.([]models.ApiAssistant)
	assistants := make([]models.Assistant, 0, len(payload))
	for _, api := range payload {
		assistants = append(assistants, models.TransformApiAssistant(api))
	}
	models.SortAssistantsNewestFirst(assistants)

	return assistants, nil
}

// CreateAssistant registers a new assistant and returns its dashboard
// representation. The backend may answer with only a message, so missing
// fields are filled from the request and a generated id.
func (c *Client) CreateAssistant(req models.CreateAssistantRequest) (models.Assistant, error) {
	result, err := c.execute("assistants", func() (interface{}, error) {
		resp, err := c.http.R().
			SetBody(req).
			Post("/api/assistants/create")
		if err != nil {
			return nil, fmt.Errorf("create assistant: %w", err)
		}
		if err := checkStatus(resp); err != nil {
			return nil, err
		}

		var payload models.CreateAssistantResponse
		if err := unmarshalBody(resp, &payload); err != nil {
			return nil, fmt.Errorf("parse create assistant response: %w", err)
		}
		return payload, nil
	})
	if err != nil {
		return models.Assistant{}, err
	}

	payload := result.(models.CreateAssistantResponse)

	id := payload.ID
	if id == "" {
		id = "assistant-" + uuid.NewString()
	}
	name := payload.Name
	if name == "" {
		name = req.Name
	}
	product := payload.ProductName
	if product == "" {
		product = req.ProductName
	}

	log.WithFields(log.Fields{
		"assistant_id": id,
		"name":         name,
	}).Info("Created assistant")

	return models.Assistant{
		ID:             id,
		Name:           name,
		Product:        product,
		QuestionsCount: len(req.Questions),
		Questions:      req.Questions,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		IsActive:       true,
		LastUsed:       "Never",
		Status:         models.AssistantStatusActive,
	}, nil
}

// DeleteAssistant removes an assistant by id
func (c *Client) DeleteAssistant(assistantID string) error {
	_, err := c.execute("assistants", func() (interface{}, error) {
		resp, err := c.http.R().Delete("/api/assistants/" + assistantID)
		if err != nil {
			return nil, fmt.Errorf("delete assistant: %w", err)
		}
		return nil, checkStatus(resp)
	})
	return err
}
