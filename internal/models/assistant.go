package models

import "sort"

// Assistant status values
const (
	AssistantStatusActive   = "active"
	AssistantStatusInactive = "inactive"
	AssistantStatusDraft    = "draft"
)

// MaxAssistantQuestions caps the creation form's question list
const MaxAssistantQuestions = 3

// ApiAssistant is the wire shape returned by the backend's assistants endpoint
type ApiAssistant struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	ProductName string   `json:"product_name"`
	Questions   []string `json:"questions"`
	CreatedAt   string   `json:"created_at"`
}

// Assistant is the dashboard-facing shape
type Assistant struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Product        string   `json:"product"`
	QuestionsCount int      `json:"questions_count"`
	Questions      []string `json:"questions"`
	CreatedAt      string   `json:"created_at"`
	IsActive       bool     `json:"is_active"`
	TotalCalls     int      `json:"total_calls"`
	SuccessRate    int      `json:"success_rate"`
	LastUsed       string   `json:"last_used"`
	Status         string   `json:"status"` // active | inactive | draft
}

// CreateAssistantRequest is the backend's creation payload
type CreateAssistantRequest struct {
	Name        string   `json:"name" binding:"required"`
	ProductName string   `json:"product_name" binding:"required"`
	Questions   []string `json:"questions" binding:"required"`
}

// CreateAssistantResponse is the backend's creation reply; only the message is
// guaranteed, the rest echoes the created record when the backend provides it
type CreateAssistantResponse struct {
	Message     string   `json:"message"`
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name,omitempty"`
	ProductName string   `json:"product_name,omitempty"`
	Questions   []string `json:"questions,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// TransformApiAssistant converts the backend wire shape to the dashboard shape.
// Usage stats are not provided by the backend yet, so they default to zero.
func TransformApiAssistant(api ApiAssistant) Assistant {
	questions := api.Questions
	if questions == nil {
		questions = []string{}
	}

	return Assistant{
		ID:             api.ID,
		Name:           api.Name,
		Product:        api.ProductName,
		QuestionsCount: len(questions),
		Questions:      questions,
		CreatedAt:      api.CreatedAt,
		IsActive:       true,
		TotalCalls:     0,
		SuccessRate:    0,
		LastUsed:       "Never",
		Status:         AssistantStatusActive,
	}
}

// AssistantStatus derives the display status from the activity flag and usage
func AssistantStatus(isActive bool, totalCalls int) string {
	if !isActive {
		return AssistantStatusInactive
	}
	if totalCalls == 0 {
		return AssistantStatusDraft
	}
	return AssistantStatusActive
}

// SortAssistantsNewestFirst orders assistants by creation date, newest first.
// CreatedAt is an RFC 3339 string, so lexicographic comparison is enough.
func SortAssistantsNewestFirst(assistants []Assistant) {
	sort.SliceStable(assistants, func(i, j int) bool {
		return assistants[i].CreatedAt > assistants[j].CreatedAt
	})
}
