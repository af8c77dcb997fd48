package models

import (
	"strconv"
	"strings"
)

// Call status values
const (
	CallStateCompleted  = "completed"
	CallStateInProgress = "in_progress"
	CallStateScheduled  = "scheduled"
	CallStateFailed     = "failed"
)

// ApiCall is the wire shape returned by the backend's calls endpoint
type ApiCall struct {
	ID            int    `json:"id"`
	OrderID       string `json:"orderId"`
	AssistantID   string `json:"assistantId"`
	AssistantName string `json:"assistantName"`
	CustomerName  string `json:"customerName"`
	PhoneNumber   string `json:"phoneNumber"`
	Product       string `json:"product"`
	ScheduledTime string `json:"scheduledTime"`
	Status        string `json:"status"`
	Transcript    string `json:"transcript"`
	Summary       string `json:"summary"`
	AudioURL      string `json:"audioUrl"`
	CreatedAt     string `json:"createdAt"`
}

// ApiCallsResponse wraps the calls list payload
type ApiCallsResponse struct {
	Calls []ApiCall `json:"calls"`
	Total int       `json:"total"`
}

// Call is the dashboard-facing shape
type Call struct {
	ID            string `json:"id"`
	CustomerName  string `json:"customer_name"`
	OrderID       string `json:"order_id"`
	AssistantName string `json:"assistant_name"`
	PhoneNumber   string `json:"phone_number"`
	ProductName   string `json:"product_name"`
	Status        string `json:"status"` // completed | in_progress | scheduled | failed
	Transcript    string `json:"transcript"`
	Summary       string `json:"summary"`
	AudioURL      string `json:"audio_url"`
	Duration      string `json:"duration,omitempty"`
	CallDate      string `json:"call_date,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
}

// CallStats aggregates the calls view's headline numbers
type CallStats struct {
	Calls           []Call `json:"calls"`
	TotalCalls      int    `json:"total_calls"`
	SuccessfulCalls int    `json:"successful_calls"`
	SuccessRate     int    `json:"success_rate"`
	AvgDuration     string `json:"avg_duration"`
}

// AnalyticsPoint is one bucket of the call volume chart
type AnalyticsPoint struct {
	Name            string `json:"name"`
	TotalCalls      int    `json:"totalCalls"`
	SuccessfulCalls int    `json:"successfulCalls"`
}

// AudioURLResponse is the backend's audio lookup payload
type AudioURLResponse struct {
	CallID     int       `json:"call_id"`
	VapiCallID string    `json:"vapi_call_id"`
	AudioURLs  AudioURLs `json:"audio_urls"`
}

// AudioURLs lists the recording variants the backend exposes
type AudioURLs struct {
	Stereo     string `json:"stereo"`
	Main       string `json:"main"`
	StereoMain string `json:"stereo_main"`
	Combined   string `json:"combined"`
	Assistant  string `json:"assistant"`
	Customer   string `json:"customer"`
}

// TransformApiCall converts the backend wire shape to the dashboard shape.
// Status strings are lowercase-normalized; unknown values fall back to scheduled.
func TransformApiCall(api ApiCall) Call {
	var status string
	switch strings.ToLower(api.Status) {
	case "completed":
		status = CallStateCompleted
	case "in_progress", "in progress":
		status = CallStateInProgress
	case "scheduled":
		status = CallStateScheduled
	case "failed":
		status = CallStateFailed
	default:
		status = CallStateScheduled
	}

	callDate := api.ScheduledTime
	if callDate == "" {
		callDate = api.CreatedAt
	}
	if callDate == "" {
		callDate = "N/A"
	}

	product := "N/A"
	if api.Product != "" {
		product = strings.TrimSpace(quantitySuffix.ReplaceAllString(api.Product, ""))
	}

	return Call{
		ID:            strconv.Itoa(api.ID),
		CustomerName:  orDefault(api.CustomerName),
		OrderID:       orDefault(api.OrderID),
		AssistantName: orDefault(api.AssistantName),
		PhoneNumber:   orDefault(api.PhoneNumber),
		ProductName:   product,
		Status:        status,
		Transcript:    orDefaultText(api.Transcript, "No transcript available"),
		Summary:       orDefaultText(api.Summary, "No summary available"),
		AudioURL:      api.AudioURL,
		Duration:      "N/A",
		CallDate:      callDate,
		CreatedAt:     api.CreatedAt,
	}
}

// BuildCallStats computes the stats block the dashboard header shows.
// The backend's total wins when present; the success rate comes from the
// transformed list either way.
func BuildCallStats(calls []Call, backendTotal int) CallStats {
	total := backendTotal
	if total == 0 {
		total = len(calls)
	}

	successful := 0
	for _, c := range calls {
		if c.Status == CallStateCompleted {
			successful++
		}
	}

	rate := 0
	if total > 0 {
		rate = int(float64(successful)/float64(total)*100 + 0.5)
	}

	return CallStats{
		Calls:           calls,
		TotalCalls:      total,
		SuccessfulCalls: successful,
		SuccessRate:     rate,
		AvgDuration:     "2m 45s",
	}
}

func orDefaultText(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
